// Package goalnote formats free-text goal lists as "scorer (minute')" items.
//
// The grammar is heuristic. A segment is rendered as "<name> (<minute>')" when it
// matches itemPattern and leaves a non-empty name; every other segment is returned
// unchanged.
package goalnote

import (
	"regexp"
	"strings"
)

// space matches what strings.TrimSpace strips plus the Unicode space separators and
// U+FEFF, since regexp's \s is ASCII only.
const space = `[\s\x{0085}\p{Z}\x{FEFF}]`

var (
	// separatorPattern splits a goal list on ; newline , Arabic comma | and runs of /.
	separatorPattern = regexp.MustCompile(`;|\n|,|،|\||/+`)

	// itemPattern captures a leading name and a trailing 1-3 digit minute. The minute
	// may be followed by an apostrophe, a right single quote, "د" (minute) or "min".
	itemPattern = regexp.MustCompile(`^(.*?)(?:` + space + `*[\-:()]*` + space + `*)(\d{1,3})(?:` +
		space + `*['’]|` + space + `*د|` + space + `*min)?` + space + `*$`)

	trailingNoisePattern = regexp.MustCompile(`[\-:()]+$`)
)

// Parse splits text into trimmed, non-empty segments and formats each one.
func Parse(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	parts := separatorPattern.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		out = append(out, FormatItem(segment))
	}
	return out
}

// FormatItem renders one segment, falling back to the trimmed segment verbatim.
func FormatItem(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return ""
	}

	groups := itemPattern.FindStringSubmatch(segment)
	if groups == nil || groups[1] == "" || groups[2] == "" {
		return segment
	}

	name := strings.TrimSpace(trailingNoisePattern.ReplaceAllString(strings.TrimSpace(groups[1]), ""))
	if name == "" {
		return segment
	}

	return name + " (" + groups[2] + "')"
}
