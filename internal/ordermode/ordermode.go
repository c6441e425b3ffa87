// Package ordermode selects the paragraphs of a document that both cite the
// directive ("в наказі") and mention at least one roster member.
package ordermode

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/orderscan/internal/declension"
)

// DefaultKeyword is the directive phrase a paragraph must contain.
const DefaultKeyword = "в наказі"

var blankLine = regexp.MustCompile(`\n[ \t\r\f\v\x{00A0}]*\n`)

// Match is one selected paragraph.
type Match struct {
	Paragraph     string   `json:"paragraph"`
	MatchedNames  []string `json:"matched_names"`
	StartPosition int      `json:"start_position"` // rune offset in the source text
}

// Finder holds the keyword and dictionary used for selection.
type Finder struct {
	Keyword    string
	Dictionary *declension.Dictionary
}

// NewFinder returns a Finder; an empty keyword selects DefaultKeyword and a
// nil dictionary the built-in one.
func NewFinder(keyword string, dict *declension.Dictionary) *Finder {
	if keyword == "" {
		keyword = DefaultKeyword
	}
	if dict == nil {
		dict = declension.Default()
	}
	return &Finder{Keyword: keyword, Dictionary: dict}
}

// FindOrderParagraphs splits documentText on blank lines and keeps each
// paragraph that contains the keyword (case-insensitive) and at least one
// roster name. Both conditions are required.
func (f *Finder) FindOrderParagraphs(documentText string, rosterNames []string) []Match {
	keyword := strings.ToLower(f.Keyword)
	if keyword == "" || len(rosterNames) == 0 {
		return nil
	}
	matchers := make([]*declension.NameMatcher, 0, len(rosterNames))
	for _, n := range rosterNames {
		if strings.TrimSpace(n) == "" {
			continue
		}
		matchers = append(matchers, f.Dictionary.Matcher(n))
	}

	var out []Match
	for _, p := range splitParagraphs(documentText) {
		if !strings.Contains(strings.ToLower(p.text), keyword) {
			continue
		}
		names := declension.MatchNames(p.text, matchers)
		if len(names) == 0 {
			continue
		}
		out = append(out, Match{
			Paragraph:     p.text,
			MatchedNames:  names,
			StartPosition: p.start,
		})
	}
	return out
}

// FindOrderParagraphs runs the default Finder.
func FindOrderParagraphs(documentText string, rosterNames []string) []Match {
	return NewFinder("", nil).FindOrderParagraphs(documentText, rosterNames)
}

type paragraph struct {
	text  string
	start int
}

// splitParagraphs cuts text at blank lines, trims each piece and records the
// rune offset where the trimmed piece starts.
func splitParagraphs(text string) []paragraph {
	var out []paragraph
	pos := 0
	emit := func(chunk string, at int) {
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			return
		}
		lead := strings.Index(chunk, trimmed)
		out = append(out, paragraph{
			text:  trimmed,
			start: utf8.RuneCountInString(text[:at+lead]),
		})
	}
	for _, loc := range blankLine.FindAllStringIndex(text, -1) {
		emit(text[pos:loc[0]], pos)
		pos = loc[1]
	}
	emit(text[pos:], pos)
	return out
}
