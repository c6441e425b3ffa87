package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
)

// DOCXParser handles .docx files. Each non-empty Word paragraph becomes one
// Paragraph; table cells are read row by row.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]doctree.Paragraph, error) {
	// go-docx needs a ReaderAt+size; uploads are already size-capped.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var out []doctree.Paragraph
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			out = appendDocxParagraph(out, it)
		case *docx.Table:
			out = appendDocxTable(out, it)
		}
	}
	return out, nil
}

func appendDocxTable(out []doctree.Paragraph, t *docx.Table) []doctree.Paragraph {
	for _, row := range t.TableRows {
		for _, cell := range row.TableCells {
			for _, para := range cell.Paragraphs {
				out = appendDocxParagraph(out, para)
			}
			for _, nested := range cell.Tables {
				out = appendDocxTable(out, nested)
			}
		}
	}
	return out
}

func appendDocxParagraph(out []doctree.Paragraph, para *docx.Paragraph) []doctree.Paragraph {
	var text, markup strings.Builder
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRun(&text, &markup, c)
		case *docx.Hyperlink:
			writeRun(&text, &markup, &c.Run)
		}
	}
	t := strings.TrimSpace(text.String())
	if t == "" {
		return out
	}
	return append(out, doctree.Paragraph{
		Text: t,
		HTML: "<p>" + markup.String() + "</p>",
	})
}

// writeRun appends the run's text to text and its escaped text, wrapped in
// <b>, <i> and <u> as the run is formatted, to markup.
func writeRun(text, markup *strings.Builder, run *docx.Run) {
	var buf strings.Builder
	for _, rc := range run.Children {
		switch c := rc.(type) {
		case *docx.Text:
			buf.WriteString(c.Text)
		case *docx.Tab:
			buf.WriteByte('\t')
		case *docx.BarterRabbet:
			buf.WriteByte('\n')
		}
	}
	s := buf.String()
	if s == "" {
		return
	}
	text.WriteString(s)

	pre, post := runTags(run.RunProperties)
	markup.WriteString(pre)
	markup.WriteString(strings.ReplaceAll(html.EscapeString(s), "\n", "<br>"))
	markup.WriteString(post)
}

func runTags(props *docx.RunProperties) (pre, post string) {
	if props == nil {
		return "", ""
	}
	if props.Bold != nil {
		pre += "<b>"
		post = "</b>" + post
	}
	if props.Italic != nil {
		pre += "<i>"
		post = "</i>" + post
	}
	if props.Underline != nil && props.Underline.Val != "none" {
		pre += "<u>"
		post = "</u>" + post
	}
	return pre, post
}
