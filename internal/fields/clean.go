// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fields extracts the client name, agent name and case status from
// case documents.
package fields

import (
	"strings"
	"unicode"
)

// Clean normalizes raw cell text. Tabs, line breaks and paragraph
// separators become spaces; every other control character, including cell
// end markers and form feeds, is dropped. Whitespace runs collapse to one
// space and the result is trimmed.
func Clean(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\u2028', '\u2029':
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

// agentSeparator precedes the agent name in the agent cell, as in
// "Comissão 10% Carlos Lima".
const agentSeparator = "% "

// AgentName returns the text after the first "% " in raw, or the whole
// cleaned text when there is none.
func AgentName(raw string) string {
	cleaned := Clean(raw)
	if _, after, ok := strings.Cut(cleaned, agentSeparator); ok {
		return strings.TrimSpace(after)
	}
	return cleaned
}
