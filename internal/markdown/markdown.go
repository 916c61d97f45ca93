// Package markdown renders post text into sanitized HTML for detail views.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type TextProcessor struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func New() *TextProcessor {
	// Posts are plain text with light markup. Only a small subset of
	// markdown is enabled: paragraphs, fenced code, code spans, emphasis
	// and strikethrough.
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough),
	)

	sanitizer := bluemonday.UGCPolicy()
	sanitizer.AllowRelativeURLs(true)

	return &TextProcessor{md: md, sanitizer: sanitizer}
}

// Render converts post text to HTML and sanitizes the result.
// On conversion failure the escaped source text is returned.
func (tp *TextProcessor) Render(text string) string {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return tp.sanitizer.Sanitize(text)
	}
	return tp.sanitizer.Sanitize(strings.TrimSpace(buf.String()))
}
