package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
)

// TextParser handles plain text files. Paragraphs are separated by blank
// lines; lines inside a paragraph are kept joined by newlines.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]doctree.Paragraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []doctree.Paragraph
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			out = append(out, plainParagraph(current.String()))
			current.Reset()
		}
	}

	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return out, nil
}
