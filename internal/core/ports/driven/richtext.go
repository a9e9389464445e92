package driven

// RichTextRenderer is the rich-text collaborator. It turns an option or
// sub-option body into the HTML cached alongside it.
type RichTextRenderer interface {
	// RenderHTML returns the HTML rendering of body.
	RenderHTML(body string) (string, error)
}
