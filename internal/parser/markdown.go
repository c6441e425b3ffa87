package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MarkdownParser handles Markdown files using goldmark. Top-level blocks
// become paragraphs; each list item is a paragraph of its own, and ordered
// items keep their number ("3. ") so points survive the conversion.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]doctree.Paragraph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var out []doctree.Paragraph
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.ThematicBreak:
			continue
		case *ast.List:
			out = appendList(out, node, src)
		default:
			t := extractText(n, src)
			if t == "" {
				continue
			}
			var buf bytes.Buffer
			if err := md.Renderer().Render(&buf, src, n); err != nil {
				return nil, fmt.Errorf("render markdown: %w", err)
			}
			out = append(out, doctree.Paragraph{
				Text: t,
				HTML: strings.TrimSpace(buf.String()),
			})
		}
	}
	return out, nil
}

// appendList emits one paragraph per list item. Nested lists follow their
// parent item.
func appendList(out []doctree.Paragraph, list *ast.List, src []byte) []doctree.Paragraph {
	i := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		var nested []*ast.List
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if l, ok := c.(*ast.List); ok {
				nested = append(nested, l)
				continue
			}
			if t := extractText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
		if t := strings.Join(parts, "\n"); t != "" {
			if list.IsOrdered() {
				t = fmt.Sprintf("%d. %s", list.Start+i, t)
			}
			out = append(out, plainParagraph(t))
		}
		for _, l := range nested {
			out = appendList(out, l, src)
		}
		i++
	}
	return out
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(util.UnescapePunctuations(t.Segment.Value(src)))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
