package md

import "strings"

// Characters that can start or alter Markdown syntax when they appear in
// literal text. Each is backslash-escaped by Escape.
const metaChars = "\\`*_{}[]<>()#+-!|"

// Escape makes a literal text run safe for Markdown: every metacharacter is
// backslash-escaped, and any run of two or more spaces is rewritten as one
// ordinary space followed by non-breaking-space entities, so Markdown's
// whitespace collapsing cannot alter the content. It is applied at most once
// per text run.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	spaces := 0
	for _, r := range text {
		if r == ' ' {
			spaces++
			continue
		}
		flushSpaces(&b, spaces)
		spaces = 0
		if strings.ContainsRune(metaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	flushSpaces(&b, spaces)
	return b.String()
}

func flushSpaces(b *strings.Builder, n int) {
	if n == 0 {
		return
	}
	b.WriteByte(' ')
	for ; n > 1; n-- {
		b.WriteString("&nbsp;")
	}
}

// Normalize finalizes a rendered document: runs of two or more blank lines
// collapse to exactly one, surrounding whitespace is trimmed, and the result
// ends with exactly one line break. An all-whitespace document normalizes to
// the empty string.
func Normalize(doc string) string {
	lines := strings.Split(doc, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			line = ""
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	doc = strings.TrimSpace(strings.Join(out, "\n"))
	if doc == "" {
		return ""
	}
	return doc + "\n"
}
