package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer_RenderHTML(t *testing.T) {
	r := NewMarkdownRenderer()

	tests := []struct {
		name     string
		body     string
		contains []string
		exact    string
	}{
		{name: "empty", body: "   ", exact: ""},
		{name: "paragraph", body: "Option text", exact: "<p>Option text</p>"},
		{name: "emphasis", body: "The **licensee** may *not* resell.", contains: []string{"<strong>licensee</strong>", "<em>not</em>"}},
		{name: "hard wraps", body: "line one\nline two", contains: []string{"<br>"}},
		{name: "strikethrough", body: "~~void~~", contains: []string{"<del>void</del>"}},
		{name: "table", body: "| a | b |\n|---|---|\n| 1 | 2 |", contains: []string{"<table>", "<td>1</td>"}},
		{name: "list", body: "- one\n- two", contains: []string{"<ul>", "<li>one</li>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderHTML(tt.body)
			require.NoError(t, err)
			if tt.contains == nil {
				assert.Equal(t, tt.exact, got)
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestMarkdownRenderer_DropsRawHTML(t *testing.T) {
	got, err := NewMarkdownRenderer().RenderHTML(`<script>alert(1)</script>`)
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")
}

func TestMarkdownRenderer_MatchesPlaceholder(t *testing.T) {
	got, err := NewMarkdownRenderer().RenderHTML("Sub-option text")
	require.NoError(t, err)
	assert.Equal(t, "<p>Sub-option text</p>", got)
}
