package render

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// WriteDocx writes lines as an A4 Word document, one paragraph per line.
func WriteDocx(w io.Writer, lines []Line) error {
	f := docx.New().WithDefaultTheme().WithA4Page()
	for _, l := range lines {
		p := f.AddParagraph()
		if l.Blank || l.Text == "" {
			continue
		}
		p.Justification("both")
		run := p.AddText(l.Text)
		switch l.Style {
		case Bold:
			run.Bold()
		case Underline:
			run.Underline("single")
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
