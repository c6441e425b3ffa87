// Package declension generates the inflected surface forms of Ukrainian
// personal names and matches them against free text.
//
// Names are read positionally as Surname [Firstname [Patronymic]]. First
// names and patronymics are looked up in closed tables, surnames are declined
// by suffix rules; anything unknown is kept as written.
package declension

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// SuffixRule declines surnames ending in Suffix: Strip is cut from the end of
// the surname and each of Endings is appended to the remaining stem.
type SuffixRule struct {
	Suffix  string   `yaml:"suffix"`
	Strip   string   `yaml:"strip"`
	Endings []string `yaml:"endings"`
}

// Dictionary is an immutable set of declension tables. It is safe for
// concurrent use.
type Dictionary struct {
	firstNames   map[string]Forms
	patronymics  map[string]Forms
	surnameRules []SuffixRule
}

var defaultDictionary = build(defaultFirstNames(), defaultPatronymics(), defaultSurnameRules())

// Default returns the built-in dictionary.
func Default() *Dictionary {
	return defaultDictionary
}

func build(first, patronymics []Forms, rules []SuffixRule) *Dictionary {
	d := &Dictionary{
		firstNames:  make(map[string]Forms, len(first)),
		patronymics: make(map[string]Forms, len(patronymics)),
	}
	for _, f := range first {
		d.firstNames[key(f[Nominative])] = f
	}
	for _, f := range patronymics {
		d.patronymics[key(f[Nominative])] = f
	}
	d.surnameRules = sortRules(rules)
	return d
}

// sortRules orders rules longest suffix first so that "енко" wins over "ко".
func sortRules(rules []SuffixRule) []SuffixRule {
	out := make([]SuffixRule, 0, len(rules))
	for _, r := range rules {
		r.Suffix = strings.ToLower(r.Suffix)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i].Suffix) > utf8.RuneCountInString(out[j].Suffix)
	})
	return out
}

// FileFormat is the YAML layout accepted by LoadDictionary. Each name maps to
// its six case forms: nominative, genitive, dative, accusative, instrumental,
// locative.
type FileFormat struct {
	FirstNames   map[string][]string `yaml:"first_names"`
	Patronymics  map[string][]string `yaml:"patronymics"`
	SurnameRules []SuffixRule        `yaml:"surname_rules"`
}

// LoadDictionary reads a YAML extension file and merges it over the built-in
// tables. Entries in the file replace built-in entries with the same
// nominative form.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	d, err := ParseDictionary(data)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return d, nil
}

// ParseDictionary merges YAML dictionary data over the built-in tables.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var ff FileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	first, err := mergeForms(defaultFirstNames(), ff.FirstNames)
	if err != nil {
		return nil, fmt.Errorf("first_names: %w", err)
	}
	patronymics, err := mergeForms(defaultPatronymics(), ff.Patronymics)
	if err != nil {
		return nil, fmt.Errorf("patronymics: %w", err)
	}
	rules := defaultSurnameRules()
	for i, r := range ff.SurnameRules {
		if r.Suffix == "" || len(r.Endings) == 0 {
			return nil, fmt.Errorf("surname_rules[%d]: suffix and endings are required", i)
		}
		if !strings.HasSuffix(strings.ToLower(r.Suffix), strings.ToLower(r.Strip)) {
			return nil, fmt.Errorf("surname_rules[%d]: strip %q is not a suffix of %q", i, r.Strip, r.Suffix)
		}
	}
	// File rules go first so they win ties against built-ins of equal length.
	rules = append(append([]SuffixRule{}, ff.SurnameRules...), rules...)

	return build(first, patronymics, rules), nil
}

func mergeForms(base []Forms, extra map[string][]string) ([]Forms, error) {
	names := make([]string, 0, len(extra))
	for n := range extra {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		forms := extra[n]
		if len(forms) != len(Forms{}) {
			return nil, fmt.Errorf("%s: want %d case forms, got %d", n, len(Forms{}), len(forms))
		}
		var f Forms
		copy(f[:], forms)
		f[Nominative] = n
		base = append(base, f)
	}
	return base, nil
}

// FirstNameForms returns the case forms of a first name, or the name alone
// when it is not in the table.
func (d *Dictionary) FirstNameForms(name string) []string {
	return lookup(d.firstNames, name)
}

// PatronymicForms returns the case forms of a patronymic, or the patronymic
// alone when it is not in the table.
func (d *Dictionary) PatronymicForms(name string) []string {
	return lookup(d.patronymics, name)
}

// SurnameForms declines a surname by the first suffix rule that matches. An
// unmatched surname is returned unchanged.
func (d *Dictionary) SurnameForms(surname string) []string {
	lower := strings.ToLower(surname)
	runes := []rune(surname)
	for _, r := range d.surnameRules {
		if !strings.HasSuffix(lower, r.Suffix) || len(runes) <= utf8.RuneCountInString(r.Suffix) {
			continue
		}
		stem := string(runes[:len(runes)-utf8.RuneCountInString(r.Strip)])
		out := newOrderedSet(surname)
		for _, e := range r.Endings {
			out.add(stem + matchCase(surname, e))
		}
		return out.list()
	}
	return []string{surname}
}

func lookup(table map[string]Forms, name string) []string {
	f, ok := table[key(name)]
	if !ok {
		return []string{name}
	}
	out := newOrderedSet(name)
	for _, form := range f {
		out.add(matchCase(name, form))
	}
	return out.list()
}

func key(s string) string {
	return foldApostrophes(strings.ToLower(strings.TrimSpace(s)))
}

// matchCase upper-cases s when src is written in capitals, as surnames often
// are in orders and rosters.
func matchCase(src, s string) string {
	if isUpper(src) {
		return strings.ToUpper(s)
	}
	return s
}

func isUpper(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters > 1
}

// orderedSet keeps the first occurrence of each string in insertion order.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet(first ...string) *orderedSet {
	s := &orderedSet{seen: make(map[string]bool)}
	for _, f := range first {
		s.add(f)
	}
	return s
}

func (s *orderedSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

func (s *orderedSet) list() []string {
	return s.items
}
