package render

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// inlinePolicy keeps the inline formatting extractors produce and nothing
// else.
func inlinePolicy() *bluemonday.Policy {
	return bluemonday.NewPolicy().AllowElements("p", "b", "strong", "i", "em", "u", "br", "span")
}

// MarkdownRenderer converts laid-out lines to Markdown. It is safe for
// concurrent use.
type MarkdownRenderer struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		policy: inlinePolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Render returns lines as Markdown. Bold lines become strong text and
// underlined lines emphasis, Markdown having no underline. Plain lines keep
// the sanitized inline markup of the source paragraph.
func (m *MarkdownRenderer) Render(lines []Line) (string, error) {
	var doc strings.Builder
	for _, l := range lines {
		if l.Blank {
			continue
		}
		switch l.Style {
		case Bold:
			doc.WriteString("<p><strong>" + html.EscapeString(l.Text) + "</strong></p>\n")
		case Underline:
			doc.WriteString("<p><em>" + html.EscapeString(l.Text) + "</em></p>\n")
		default:
			doc.WriteString(m.paragraph(l))
		}
	}
	md, err := m.conv.ConvertString(doc.String())
	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}

func (m *MarkdownRenderer) paragraph(l Line) string {
	if l.HTML != "" {
		if clean := strings.TrimSpace(m.policy.Sanitize(l.HTML)); clean != "" {
			if !strings.HasPrefix(clean, "<p") {
				clean = "<p>" + clean + "</p>"
			}
			return clean + "\n"
		}
	}
	return "<p>" + html.EscapeString(l.Text) + "</p>\n"
}

// Markdown renders lines with a fresh MarkdownRenderer.
func Markdown(lines []Line) (string, error) {
	return NewMarkdownRenderer().Render(lines)
}
