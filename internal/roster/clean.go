package roster

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Ranks that may prefix a roster entry. Stripping tries the longest first so
// "молодший сержант" is not cut down to "молодший".
var ranks = func() []string {
	r := []string{
		"солдат", "старший солдат",
		"капрал", "молодший капрал",
		"молодший сержант", "сержант", "старший сержант", "головний сержант",
		"майстер-сержант", "штаб-сержант", "головний майстер-сержант",
		"старший майстер-сержант", "прапорщик", "старший прапорщик",
		"молодший лейтенант", "лейтенант", "старший лейтенант", "капітан",
		"майор", "підполковник", "полковник",
		"генерал-майор", "генерал-лейтенант", "генерал-полковник", "генерал армії україни",
	}
	sort.SliceStable(r, func(i, j int) bool {
		return utf8.RuneCountInString(r[i]) > utf8.RuneCountInString(r[j])
	})
	return r
}()

var junk = strings.NewReplacer(
	"\uFEFF", "", // BOM
	"\u200B", "", // zero-width space
	"\u202F", "", // narrow no-break space
	"\u00A0", " ",
	"\r", " ",
	"\n", " ",
	"\t", " ",
	"\u2011", "-",
	"\u2013", "-",
	"\u2014", "-",
	"\u2212", "-",
)

// CleanString removes invisible characters, unifies dashes and collapses
// whitespace.
func CleanString(s string) string {
	s = norm.NFC.String(junk.Replace(s))
	return strings.Join(strings.Fields(s), " ")
}

// StripRank removes one leading rank title, matched case-insensitively and
// only as whole words.
func StripRank(s string) string {
	rs := []rune(s)
	for _, r := range ranks {
		n := utf8.RuneCountInString(r)
		if len(rs) < n || !strings.EqualFold(string(rs[:n]), r) {
			continue
		}
		if len(rs) > n && rs[n] != ' ' {
			continue
		}
		return strings.TrimSpace(string(rs[n:]))
	}
	return s
}

// CleanName normalises one roster cell: junk characters, a leading rank and
// all-capitals words ("ШОСТАК" becomes "Шостак") are dealt with.
func CleanName(s string) string {
	s = StripRank(CleanString(s))
	if s == "" {
		return ""
	}
	// cases.Caser is not safe for concurrent use.
	title := cases.Title(language.Ukrainian)
	words := strings.Fields(s)
	for i, w := range words {
		if isAllUpper(w) {
			words[i] = title.String(w)
		}
	}
	return strings.Join(words, " ")
}

func isAllUpper(w string) bool {
	letters := 0
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters > 1
}

// looksLikeName reports whether a cell reads as a personal name: two to six
// words made of letters.
func looksLikeName(s string) bool {
	words := strings.Fields(CleanString(s))
	if len(words) < 2 || len(words) > 6 {
		return false
	}
	for _, w := range words {
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != '’' && r != 'ʼ' && r != '.' {
				return false
			}
		}
	}
	return true
}
