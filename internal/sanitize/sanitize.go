// Package sanitize normalizes user-supplied text before it is validated and
// stored. All functions are pure and never fail; malformed input degrades to
// the empty string.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plainPolicy = newPlainPolicy()
	richPolicy  = newRichPolicy()
)

func newPlainPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.SkipElementsContent("script", "style")
	return p
}

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "a", "p", "br", "ul", "ol", "li")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.SkipElementsContent("script", "style")
	return p
}

// PlainText strips all markup (dropping script/style bodies entirely),
// decodes common HTML entities, removes null bytes and trims. Already-clean
// text passes through unchanged.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	clean := html.UnescapeString(plainPolicy.Sanitize(s))
	return strings.TrimSpace(strings.ReplaceAll(clean, "\x00", ""))
}

// RichText keeps a fixed allow-list of inline and structural tags
// (b,i,em,strong,a,p,br,ul,ol,li) with href/target/rel permitted on links
// only. Event-handler attributes and javascript:/data: URLs are removed.
func RichText(s string) string {
	if s == "" {
		return ""
	}
	clean := richPolicy.Sanitize(s)
	return strings.TrimSpace(strings.ReplaceAll(clean, "\x00", ""))
}

// Email lowercases and removes all whitespace and null bytes.
func Email(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f', 0:
			return -1
		}
		return r
	}, s)
}

// Phone keeps only digits, spaces, hyphens, parentheses and the plus sign.
func Phone(s string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+':
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(kept)
}

// Input trims whitespace and removes null bytes, nothing more.
func Input(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
