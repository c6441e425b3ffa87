package declension

import (
	"strings"
	"unicode/utf8"
)

// AllForms returns every surface form fullName may take in running text:
// the literal input, then each combination of surname, first name and
// patronymic forms in the orders "Surname First Patronymic" and
// "First Patronymic Surname", then the two-part variants without the
// patronymic. Duplicates are dropped.
func (d *Dictionary) AllForms(fullName string) []string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return nil
	}
	out := newOrderedSet(strings.Join(parts, " "))

	surnames := d.SurnameForms(parts[0])
	if len(parts) == 1 {
		for _, s := range surnames {
			out.add(s)
		}
		return out.list()
	}

	firsts := d.FirstNameForms(parts[1])
	if len(parts) >= 3 {
		patronymics := d.PatronymicForms(parts[2])
		for _, s := range surnames {
			for _, f := range firsts {
				for _, p := range patronymics {
					out.add(s + " " + f + " " + p)
					out.add(f + " " + p + " " + s)
				}
			}
		}
	}
	for _, s := range surnames {
		for _, f := range firsts {
			out.add(s + " " + f)
			out.add(f + " " + s)
		}
	}
	return out.list()
}

// NameMatcher tests text for any form of one name. Build it once per name
// and reuse it across paragraphs.
type NameMatcher struct {
	name  string
	forms [][]string
}

// Matcher prepares the word sets of every form of fullName.
//
// The literal name is kept whole. Other forms of three or more words keep
// words of at least two letters; shorter forms keep words of at least three
// letters, so a two-part form cannot be satisfied by stray syllables alone.
// A shortened form must still contain a surname.
func (d *Dictionary) Matcher(fullName string) *NameMatcher {
	parts := strings.Fields(fullName)
	m := &NameMatcher{name: strings.Join(parts, " ")}
	if len(parts) == 0 {
		return m
	}
	surnames := make(map[string]bool)
	for _, s := range d.SurnameForms(parts[0]) {
		surnames[fold(s)] = true
	}

	for i, form := range d.AllForms(fullName) {
		words := strings.Fields(fold(form))
		if i == 0 {
			m.forms = append(m.forms, words)
			continue
		}
		minLen := 3
		if len(words) >= 3 {
			minLen = 2
		}
		var kept []string
		hasSurname := false
		for _, w := range words {
			if utf8.RuneCountInString(w) >= minLen {
				kept = append(kept, w)
				hasSurname = hasSurname || surnames[w]
			}
		}
		if len(kept) == 0 || (len(kept) < len(words) && !hasSurname) {
			continue
		}
		m.forms = append(m.forms, kept)
	}
	return m
}

// Name returns the whitespace-normalised name the matcher was built for.
func (m *NameMatcher) Name() string {
	return m.name
}

// Match reports whether every word of some form occurs in text. Word order
// and adjacency are not checked, so text that mentions the surname of one
// person and the first name of another can match.
func (m *NameMatcher) Match(text string) bool {
	return m.matchFolded(fold(text))
}

func (m *NameMatcher) matchFolded(text string) bool {
	for _, words := range m.forms {
		if containsAll(text, words) {
			return true
		}
	}
	return false
}

func containsAll(text string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

// FindNameMatch reports whether any form of targetName occurs in text.
func (d *Dictionary) FindNameMatch(text, targetName string) bool {
	return d.Matcher(targetName).Match(text)
}

// MatchNames returns the matchers that match text, in the given order.
func MatchNames(text string, matchers []*NameMatcher) []string {
	folded := fold(text)
	var names []string
	seen := make(map[string]bool)
	for _, m := range matchers {
		if seen[m.name] || !m.matchFolded(folded) {
			continue
		}
		seen[m.name] = true
		names = append(names, m.name)
	}
	return names
}

// AllForms expands fullName with the built-in dictionary.
func AllForms(fullName string) []string {
	return defaultDictionary.AllForms(fullName)
}

// FindNameMatch matches targetName against text with the built-in dictionary.
func FindNameMatch(text, targetName string) bool {
	return defaultDictionary.FindNameMatch(text, targetName)
}

// fold lower-cases s and unifies apostrophe variants.
func fold(s string) string {
	return foldApostrophes(strings.ToLower(s))
}

var apostrophes = strings.NewReplacer("’", "'", "ʼ", "'", "`", "'", "‘", "'")

func foldApostrophes(s string) string {
	return apostrophes.Replace(s)
}
