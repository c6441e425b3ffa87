// Package render lays out search results as formatted lines and writes them
// as .docx or Markdown.
package render

import (
	"github.com/dgallion1/orderscan/internal/doctree"
	"github.com/dgallion1/orderscan/internal/ordermode"
)

// Style is the run formatting of a line.
type Style int

const (
	Plain Style = iota
	Bold
	Underline
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Underline:
		return "underline"
	}
	return "plain"
}

// Line is one output paragraph. A blank line has Blank set and no text.
type Line struct {
	Text  string `json:"text,omitempty"`
	HTML  string `json:"html,omitempty"`
	Style Style  `json:"style"`
	Blank bool   `json:"blank,omitempty"`
}

// Layout maps found items to lines. Points and subpoints are bold with a
// blank line before and after, except that one whose next item is its own
// subpoint or dash-point is kept directly above it. Dash-points are underlined and
// never followed by a blank. Runs of blanks collapse to one, and the output
// neither starts nor ends with a blank.
func Layout(items []doctree.Item) []Line {
	var b lineBuilder
	glued := false
	for i, it := range items {
		switch it.Kind {
		case doctree.KindPoint, doctree.KindSubpoint:
			if !glued {
				b.blank()
			}
			b.add(Line{Text: it.Text, HTML: it.HTML, Style: Bold})
			if i+1 < len(items) && opensUnder(items[i+1], it) {
				glued = true
				continue
			}
			b.blank()
		case doctree.KindDashPoint:
			b.add(Line{Text: it.Text, HTML: it.HTML, Style: Underline})
		default:
			b.add(Line{Text: it.Text, HTML: it.HTML, Style: Plain})
		}
		glued = false
	}
	return b.done()
}

// opensUnder reports whether next is a subpoint or dash-point directly below
// parent.
func opensUnder(next, parent doctree.Item) bool {
	if next.Parent != parent.Index {
		return false
	}
	return next.Kind == doctree.KindSubpoint || next.Kind == doctree.KindDashPoint
}

// Paragraphs lays out order-mode matches as plain lines separated by blanks.
func Paragraphs(matches []ordermode.Match) []Line {
	var b lineBuilder
	for _, m := range matches {
		b.add(Line{Text: m.Paragraph, Style: Plain})
		b.blank()
	}
	return b.done()
}

type lineBuilder struct {
	lines []Line
}

func (b *lineBuilder) add(l Line) {
	b.lines = append(b.lines, l)
}

func (b *lineBuilder) blank() {
	if len(b.lines) == 0 || b.lines[len(b.lines)-1].Blank {
		return
	}
	b.lines = append(b.lines, Line{Blank: true})
}

func (b *lineBuilder) done() []Line {
	for len(b.lines) > 0 && b.lines[len(b.lines)-1].Blank {
		b.lines = b.lines[:len(b.lines)-1]
	}
	return b.lines
}
