// Package order rebuilds the point/subpoint/rank-line structure of an order
// document from its flat paragraph stream and searches the resulting tree.
package order

import "strings"

// rankTitles are the bare rank labels that open a dash-point.
var rankTitles = []string{
	"солдат",
	"старший солдат",
	"молодший сержант",
	"сержант",
	"старший сержант",
	"майстер-сержант",
	"штаб-сержант",
	"капітан",
	"майор",
	"молодший лейтенант",
	"лейтенант",
	"старший лейтенант",
}

// rankLines holds every accepted spelling: the bare title, and the title
// followed by an optional space and a hyphen or colon.
var rankLines = func() map[string]struct{} {
	m := make(map[string]struct{}, len(rankTitles)*5)
	for _, r := range rankTitles {
		for _, suffix := range []string{"", "-", " -", ":", " :"} {
			m[r+suffix] = struct{}{}
		}
	}
	return m
}()

// IsDashPointByPattern reports whether text is a bare rank label such as
// "старший лейтенант" or "сержант:". Any trailing content, a surname for
// instance, disqualifies the line.
func IsDashPointByPattern(text string) bool {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return false
	}
	_, ok := rankLines[norm]
	return ok
}

// RankTitles returns a copy of the recognised rank labels.
func RankTitles() []string {
	out := make([]string, len(rankTitles))
	copy(out, rankTitles)
	return out
}
