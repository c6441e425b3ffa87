package order

import (
	"github.com/dgallion1/orderscan/internal/declension"
	"github.com/dgallion1/orderscan/internal/doctree"
)

// FindNames is the roster counterpart of Find: an item matches when any of
// names occurs in its text in some declined form. Matching items carry the
// names they matched in MatchedNames; their ancestors are included as
// context without names.
func FindNames(tree *doctree.Tree, names []string, dict *declension.Dictionary) []doctree.Item {
	if tree.Len() == 0 || len(names) == 0 {
		return nil
	}
	if dict == nil {
		dict = declension.Default()
	}
	matchers := make([]*declension.NameMatcher, 0, len(names))
	for _, n := range names {
		matchers = append(matchers, dict.Matcher(n))
	}

	c := newCollector(tree)
	matched := make(map[int][]string)
	tree.Walk(func(it *doctree.Item) {
		if found := declension.MatchNames(it.Text, matchers); len(found) > 0 {
			matched[it.Index] = found
			c.add(it.Index)
		}
	})
	if len(c.found) == 0 {
		return nil
	}

	items := c.items()
	for i := range items {
		items[i].MatchedNames = matched[items[i].Index]
	}
	return items
}
