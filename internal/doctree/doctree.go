package doctree

import "fmt"

// Paragraph is one extracted document paragraph in document order.
type Paragraph struct {
	Text string `json:"text"` // Plain text, markup stripped
	HTML string `json:"html"` // Original markup wrapped in <p>
}

// Kind is the structural role of an order item.
type Kind int

const (
	KindParagraph Kind = iota
	KindPoint
	KindSubpoint
	KindDashPoint
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSubpoint:
		return "subpoint"
	case KindDashPoint:
		return "dash-point"
	case KindParagraph:
		return "paragraph"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "point":
		*k = KindPoint
	case "subpoint":
		*k = KindSubpoint
	case "dash-point":
		*k = KindDashPoint
	case "paragraph":
		*k = KindParagraph
	default:
		return fmt.Errorf("unknown item kind %q", b)
	}
	return nil
}

// NoParent marks a root-level item.
const NoParent = -1

// Item is one structural unit of an order document.
//
// Items live in a Tree arena; Parent and Children hold arena indexes, which are
// also the item's position in the source paragraph sequence. Number is set only
// for points ("7") and subpoints ("8.3").
type Item struct {
	Kind         Kind     `json:"type"`
	Number       string   `json:"number,omitempty"`
	Text         string   `json:"text"`
	HTML         string   `json:"html"`
	Index        int      `json:"index"`
	Parent       int      `json:"parent"`
	Children     []int    `json:"children,omitempty"`
	MatchedNames []string `json:"matched_names,omitempty"`
}

// HasParent reports whether the item hangs under another item.
func (it Item) HasParent() bool {
	return it.Parent != NoParent
}

// AnomalyKind names a structural oddity the builder tolerated.
type AnomalyKind string

const (
	AnomalyOrphanSubpoint  AnomalyKind = "subpoint_without_point"
	AnomalyOrphanDashPoint AnomalyKind = "dash_point_without_parent"
)

// Anomaly records an item that became root-level because no parent was open.
type Anomaly struct {
	Kind  AnomalyKind `json:"kind"`
	Index int         `json:"index"`
}

// Tree is an arena of order items. Items[i].Index == i for trees produced by
// the builder, and Roots lists root-level items in document order.
type Tree struct {
	Items     []Item    `json:"items"`
	Roots     []int     `json:"roots"`
	Anomalies []Anomaly `json:"anomalies,omitempty"`
}

// Len returns the number of items in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Items)
}

// Item returns the item at arena position i.
func (t *Tree) Item(i int) *Item {
	return &t.Items[i]
}

// Ancestors returns the parent chain of item i, nearest first.
func (t *Tree) Ancestors(i int) []int {
	var chain []int
	for p := t.Item(i).Parent; p != NoParent; p = t.Item(p).Parent {
		chain = append(chain, p)
	}
	return chain
}

// Walk visits items in pre-order (node, then children) starting from the roots.
func (t *Tree) Walk(fn func(it *Item)) {
	if t == nil {
		return
	}
	var visit func(i int)
	visit = func(i int) {
		it := t.Item(i)
		fn(it)
		for _, c := range it.Children {
			visit(c)
		}
	}
	for _, r := range t.Roots {
		visit(r)
	}
}
