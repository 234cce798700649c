// Package md provides the low-level Markdown construct builders consumed by
// the rendering engine. Every function is a pure string formatter; no state
// is retained between calls.
//
// Indentation is expressed as a nesting level. One level is four spaces,
// which is a valid continuation indent under both bullet and numbered list
// markers.
package md

import (
	"fmt"
	"strings"
)

// indentWidth is the number of spaces per indentation level.
const indentWidth = 4

func indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*indentWidth)
}

// Heading formats an ATX heading of the given level (clamped to 1..6).
func Heading(text string, level, indentLevel int) string {
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	return indent(indentLevel) + strings.Repeat("#", level) + " " + text
}

// Paragraph formats a paragraph line at the given indentation level.
func Paragraph(text string, indentLevel int) string {
	return indent(indentLevel) + text
}

// BlockQuote formats text as a block quote, prefixing every line.
func BlockQuote(text string, indentLevel int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent(indentLevel) + "> " + line
	}
	return strings.Join(lines, "\n")
}

// BulletListItem formats a bullet list marker line.
func BulletListItem(text string, indentLevel int) string {
	return strings.TrimRight(indent(indentLevel)+"- "+text, " ")
}

// NumberListItem formats a numbered list marker line.
func NumberListItem(text string, number, indentLevel int) string {
	return strings.TrimRight(fmt.Sprintf("%s%d. %s", indent(indentLevel), number, text), " ")
}

// FencedCode wraps code in a backtick fence, with an optional info string.
// The fence is one backtick longer than the longest backtick run inside the
// code, and never shorter than three.
func FencedCode(code, lang string) string {
	n := longestBacktickRun(code) + 1
	if n < 3 {
		n = 3
	}
	fence := strings.Repeat("`", n)
	code = strings.TrimRight(code, "\n")
	return fence + lang + "\n" + code + "\n" + fence
}

// IndentedCode formats code as an indented code block (four leading spaces
// per line).
func IndentedCode(code string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}

// TableHeading formats a table header row followed by its separator row.
func TableHeading(cells []string) string {
	seps := make([]string, len(cells))
	for i := range seps {
		seps[i] = "---"
	}
	return TableRow(cells) + "\n" + TableRow(seps)
}

// TableRow formats one table row.
func TableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// Rule formats a thematic break.
func Rule() string {
	return "---"
}

// InlineCode wraps text in an inline code span. The delimiter is one backtick
// longer than the longest backtick run anywhere inside the text, so the span
// cannot terminate early. Callers must pad text that starts or ends with a
// backtick with a space; this function does not.
func InlineCode(text string) string {
	delim := strings.Repeat("`", longestBacktickRun(text)+1)
	return delim + text + delim
}

// WeakEmphasis wraps text in emphasis markers.
func WeakEmphasis(text string) string {
	return "*" + text + "*"
}

// StrongEmphasis wraps text in strong-emphasis markers.
func StrongEmphasis(text string) string {
	return "**" + text + "**"
}

// Link formats a standard Markdown link.
func Link(text, url string) string {
	return "[" + text + "](" + url + ")"
}

// BareURL formats an autolink.
func BareURL(url string) string {
	return "<" + url + ">"
}

// longestBacktickRun returns the length of the longest run of consecutive
// backticks in text. It scans the whole text, not just line starts.
func longestBacktickRun(text string) int {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
