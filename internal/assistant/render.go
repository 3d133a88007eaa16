package assistant

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer turns reply markdown into sanitised HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with hard line breaks and the UGC policy.
func NewRenderer() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithRendererOptions(gmhtml.WithHardWraps())),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts src to HTML. On conversion failure the escaped text is returned.
func (r *Renderer) Render(src string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return html.EscapeString(src)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes()))
}
