// Package render holds what the report renderers share: the markdown
// function injected into docblock formatting.
package render

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"rsc.io/markdown"
)

// MarkdownFunc converts free text to markup.
type MarkdownFunc func(text string) string

var policy = bluemonday.UGCPolicy()

// Markdown renders text as HTML and sanitizes the result, so the output can
// be inserted into a page without further escaping.
func Markdown(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	p := markdown.Parser{
		Table:         true,
		Strikethrough: true,
		AutoLinkText:  true,
	}
	doc := p.Parse(text)
	var buf bytes.Buffer
	doc.PrintHTML(&buf)
	return policy.Sanitize(buf.String())
}

// Plain returns text unchanged. It is the markdown function for renderers
// that do their own formatting.
func Plain(text string) string { return text }
