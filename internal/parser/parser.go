package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
	"golang.org/x/net/html"
)

// Parser converts raw document bytes into the paragraph stream of an order,
// in document order.
type Parser interface {
	Parse(r io.Reader, filename string) ([]doctree.Paragraph, error)
}

// ErrUnsupportedFormat is returned for file extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractError reports a document that could not be read at all.
type ExtractError struct {
	Filename string
	Err      error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
}

// Options tune individual parsers.
type Options struct {
	// PDFFallback runs pdftotext when the Go PDF reader fails.
	PDFFallback bool
}

// DefaultOptions are used by the package-level ForFile and Extract.
var DefaultOptions = Options{PDFFallback: true}

// ForFile returns the appropriate parser for a filename.
func (o Options) ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DOCXParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: o.PDFFallback}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Extract parses r with the parser for filename. Parse failures come back as
// *ExtractError.
func (o Options) Extract(r io.Reader, filename string) ([]doctree.Paragraph, error) {
	p, err := o.ForFile(filename)
	if err != nil {
		return nil, err
	}
	paras, err := p.Parse(r, filename)
	if err != nil {
		return nil, &ExtractError{Filename: filename, Err: err}
	}
	return paras, nil
}

// ForFile returns the parser for filename with DefaultOptions.
func ForFile(filename string) (Parser, error) {
	return DefaultOptions.ForFile(filename)
}

// Extract parses r with DefaultOptions.
func Extract(r io.Reader, filename string) ([]doctree.Paragraph, error) {
	return DefaultOptions.Extract(r, filename)
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Text joins paragraph texts with blank lines, the layout order-mode search
// splits on.
func Text(paras []doctree.Paragraph) string {
	texts := make([]string, 0, len(paras))
	for _, p := range paras {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n\n")
}

// plainParagraph wraps text that has no markup of its own.
func plainParagraph(text string) doctree.Paragraph {
	return doctree.Paragraph{
		Text: text,
		HTML: "<p>" + html.EscapeString(text) + "</p>",
	}
}
