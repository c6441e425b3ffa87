package order

import (
	"regexp"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
)

// Word exports often separate the number from the text with a no-break space,
// so the separator class covers every Unicode space, not only ASCII.
var (
	pointPattern    = regexp.MustCompile(`^(\d+)\.?[\s\p{Zs}]+\S`)
	subpointPattern = regexp.MustCompile(`^(\d+\.\d+)\.?[\s\p{Zs}]+\S`)
	decimalPattern  = regexp.MustCompile(`^\d+\.\d+`)
)

// builder is the single-pass fold state: the open point, subpoint and
// dash-point, as arena indexes (NoParent when closed).
type builder struct {
	tree      *doctree.Tree
	point     int
	subpoint  int
	dashPoint int
}

// ParseStructure folds paragraphs into an order tree. Classification is tried
// in the fixed order point, subpoint, dash-point, plain paragraph; the first
// rule that matches wins. It never fails: anything unrecognised becomes a
// plain paragraph, and a subpoint or dash-point with nothing open above it
// becomes a root item recorded in Tree.Anomalies.
func ParseStructure(paragraphs []doctree.Paragraph) *doctree.Tree {
	b := &builder{
		tree: &doctree.Tree{
			Items: make([]doctree.Item, 0, len(paragraphs)),
		},
		point:     doctree.NoParent,
		subpoint:  doctree.NoParent,
		dashPoint: doctree.NoParent,
	}
	for i, p := range paragraphs {
		b.add(i, p)
	}
	return b.tree
}

func (b *builder) add(index int, p doctree.Paragraph) {
	text := strings.TrimSpace(p.Text)
	item := doctree.Item{
		Text:   p.Text,
		HTML:   p.HTML,
		Index:  index,
		Parent: doctree.NoParent,
	}

	switch {
	case pointPattern.MatchString(text) && !decimalPattern.MatchString(text):
		item.Kind = doctree.KindPoint
		item.Number = pointPattern.FindStringSubmatch(text)[1]
		b.attach(item, doctree.NoParent)
		b.point = index
		b.subpoint = doctree.NoParent
		b.dashPoint = doctree.NoParent

	case subpointPattern.MatchString(text):
		item.Kind = doctree.KindSubpoint
		item.Number = subpointPattern.FindStringSubmatch(text)[1]
		if b.point == doctree.NoParent {
			b.anomaly(doctree.AnomalyOrphanSubpoint, index)
		}
		b.attach(item, b.point)
		b.subpoint = index
		b.dashPoint = doctree.NoParent

	case IsDashPointByPattern(text):
		item.Kind = doctree.KindDashPoint
		parent := firstOpen(b.subpoint, b.point)
		if parent == doctree.NoParent {
			b.anomaly(doctree.AnomalyOrphanDashPoint, index)
		}
		b.attach(item, parent)
		b.dashPoint = index

	default:
		item.Kind = doctree.KindParagraph
		b.attach(item, firstOpen(b.dashPoint, b.subpoint, b.point))
	}
}

// attach appends item to the arena and links it under parent, or to the root
// list when parent is NoParent.
func (b *builder) attach(item doctree.Item, parent int) {
	item.Parent = parent
	b.tree.Items = append(b.tree.Items, item)
	if parent == doctree.NoParent {
		b.tree.Roots = append(b.tree.Roots, item.Index)
		return
	}
	p := b.tree.Item(parent)
	p.Children = append(p.Children, item.Index)
}

func (b *builder) anomaly(kind doctree.AnomalyKind, index int) {
	b.tree.Anomalies = append(b.tree.Anomalies, doctree.Anomaly{Kind: kind, Index: index})
}

// firstOpen returns the first cursor that is not NoParent.
func firstOpen(cursors ...int) int {
	for _, c := range cursors {
		if c != doctree.NoParent {
			return c
		}
	}
	return doctree.NoParent
}
