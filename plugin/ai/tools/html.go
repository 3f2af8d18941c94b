// Package tools implements the external retrieval tools the travel agents
// may call: live web search, restaurant lookup and attraction lookup. All
// tool output is normalized to plain text and clipped so prompts stay
// bounded.
package tools

import (
	"strings"

	"golang.org/x/net/html"
)

// stripHTML extracts the visible text of an HTML fragment, joining text
// nodes with single spaces. Non-HTML input passes through unchanged.
func stripHTML(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return strings.TrimSpace(fragment)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// clip truncates s to at most n bytes on a rune boundary.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
