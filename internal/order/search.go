package order

import (
	"sort"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
)

// collector accumulates matches with their ancestor chains, each item once.
type collector struct {
	tree  *doctree.Tree
	seen  map[int]bool
	found []int
}

func newCollector(t *doctree.Tree) *collector {
	return &collector{tree: t, seen: make(map[int]bool)}
}

// add records item i and every ancestor up to the root.
func (c *collector) add(i int) {
	if !c.seen[i] {
		c.seen[i] = true
		c.found = append(c.found, i)
	}
	for _, a := range c.tree.Ancestors(i) {
		if c.seen[a] {
			// The rest of the chain was added together with a.
			return
		}
		c.seen[a] = true
		c.found = append(c.found, a)
	}
}

// items returns copies of the collected items in document order.
func (c *collector) items() []doctree.Item {
	sort.Ints(c.found)
	out := make([]doctree.Item, 0, len(c.found))
	for _, i := range c.found {
		out = append(out, *c.tree.Item(i))
	}
	return out
}

// Find returns every item whose text contains keyword (case-insensitive
// substring), together with all of its ancestors, deduplicated and sorted by
// document index. An empty keyword or tree yields nil.
func Find(tree *doctree.Tree, keyword string) []doctree.Item {
	return FindAny(tree, []string{keyword})
}

// FindAny is Find over several keywords; an item matches when any keyword
// occurs in it. Empty keywords are ignored.
func FindAny(tree *doctree.Tree, keywords []string) []doctree.Item {
	var needles []string
	for _, k := range keywords {
		if k == "" {
			continue
		}
		needles = append(needles, strings.ToLower(k))
	}
	if tree.Len() == 0 || len(needles) == 0 {
		return nil
	}

	c := newCollector(tree)
	tree.Walk(func(it *doctree.Item) {
		text := strings.ToLower(it.Text)
		for _, n := range needles {
			if strings.Contains(text, n) {
				c.add(it.Index)
				return
			}
		}
	})
	if len(c.found) == 0 {
		return nil
	}
	return c.items()
}
