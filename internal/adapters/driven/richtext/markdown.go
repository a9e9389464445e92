// Package richtext renders option and sub-option bodies to HTML.
package richtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
)

// Ensure MarkdownRenderer implements the interface.
var _ driven.RichTextRenderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer treats bodies as GitHub-flavoured Markdown.
// Raw HTML in a body is dropped, not passed through.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a renderer with GFM tables, strikethrough,
// autolinks and emoji shortcodes enabled.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				emoji.Emoji,
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
	}
}

// RenderHTML converts body to HTML. An empty body renders as "".
func (r *MarkdownRenderer) RenderHTML(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", nil
	}
	var b bytes.Buffer
	if err := r.md.Convert([]byte(body), &b); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
