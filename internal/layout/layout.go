// Package layout projects a sample into the quadrant arrangement the
// renderers consume: one central view plus four ordered card lists.
package layout

import "github.com/sprite-ai/daf/internal/model"

// Position is one of the four quadrants around the central panel.
type Position int

const (
	Top Position = iota
	Right
	Bottom
	Left
)

func (p Position) String() string {
	switch p {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// positions is the fixed round-robin order for card placement.
var positions = [4]Position{Top, Right, Bottom, Left}

// Quadrants holds the distributed cards, in placement order per side.
type Quadrants struct {
	Top    []model.DisplayItem
	Right  []model.DisplayItem
	Bottom []model.DisplayItem
	Left   []model.DisplayItem
}

// At returns the card list for a position.
func (q *Quadrants) At(p Position) []model.DisplayItem {
	switch p {
	case Top:
		return q.Top
	case Right:
		return q.Right
	case Bottom:
		return q.Bottom
	default:
		return q.Left
	}
}

// Count returns the total number of distributed cards.
func (q *Quadrants) Count() int {
	return len(q.Top) + len(q.Right) + len(q.Bottom) + len(q.Left)
}

// Distribute assigns cards to quadrants round-robin in input order: the
// item at index i lands in positions[i mod 4]. The same input sequence
// always produces the same layout.
func Distribute(items []model.DisplayItem) Quadrants {
	var q Quadrants
	for i, item := range items {
		switch positions[i%4] {
		case Top:
			q.Top = append(q.Top, item)
		case Right:
			q.Right = append(q.Right, item)
		case Bottom:
			q.Bottom = append(q.Bottom, item)
		case Left:
			q.Left = append(q.Left, item)
		}
	}
	return q
}

// SurroundingItems builds the ordered card sequence for a sample:
// generations, then snippets, then commentaries, then metric blocks.
// The central item and any card whose display id is in hidden are
// excluded. Commentary cards use the type-scoped display id so they
// cannot collide with snippet ids in the unioned namespace.
func SurroundingItems(sample *model.Sample, hidden map[string]bool) []model.DisplayItem {
	var items []model.DisplayItem
	skip := func(displayID string) bool {
		return hidden != nil && hidden[displayID]
	}

	for i := range sample.Generations {
		g := &sample.Generations[i]
		if g.ID == sample.CentralBlockID || skip(g.ID) {
			continue
		}
		items = append(items, model.DisplayItem{Kind: model.KindGeneration, ID: g.ID, Generation: g})
	}
	for i := range sample.Snippets {
		sn := &sample.Snippets[i]
		if sn.ID == sample.CentralBlockID || skip(sn.ID) {
			continue
		}
		items = append(items, model.DisplayItem{Kind: model.KindSnippet, ID: sn.ID, Snippet: sn})
	}
	for i := range sample.Commentaries {
		c := &sample.Commentaries[i]
		id := model.CommentaryDisplayID(c.ID)
		if c.ID == sample.CentralBlockID || skip(id) {
			continue
		}
		items = append(items, model.DisplayItem{Kind: model.KindCommentary, ID: id, Commentary: c})
	}
	for i := range sample.MetricsBlocks {
		m := &sample.MetricsBlocks[i]
		if m.ID == sample.CentralBlockID || skip(m.ID) {
			continue
		}
		items = append(items, model.DisplayItem{Kind: model.KindMetrics, ID: m.ID, Metrics: m})
	}
	return items
}

// CentralView resolves the card the central panel shows. The id is
// matched against the union of the sample's collections in the same
// order SurroundingItems emits them. A dangling central_block_id yields
// ok=false; callers render an explicit empty state instead of failing.
func CentralView(sample *model.Sample) (model.DisplayItem, bool) {
	id := sample.CentralBlockID
	if id == "" {
		return model.DisplayItem{}, false
	}
	if i := sample.GenerationIndex(id); i >= 0 {
		g := &sample.Generations[i]
		return model.DisplayItem{Kind: model.KindGeneration, ID: g.ID, Generation: g}, true
	}
	if i := sample.SnippetIndex(id); i >= 0 {
		sn := &sample.Snippets[i]
		return model.DisplayItem{Kind: model.KindSnippet, ID: sn.ID, Snippet: sn}, true
	}
	if i := sample.CommentaryIndex(id); i >= 0 {
		c := &sample.Commentaries[i]
		return model.DisplayItem{Kind: model.KindCommentary, ID: model.CommentaryDisplayID(c.ID), Commentary: c}, true
	}
	for i := range sample.MetricsBlocks {
		if sample.MetricsBlocks[i].ID == id {
			m := &sample.MetricsBlocks[i]
			return model.DisplayItem{Kind: model.KindMetrics, ID: m.ID, Metrics: m}, true
		}
	}
	return model.DisplayItem{}, false
}

// Arrange is the full projection for one sample: the central view plus
// the quadrant distribution of everything else.
func Arrange(sample *model.Sample, hidden map[string]bool) (model.DisplayItem, bool, Quadrants) {
	central, ok := CentralView(sample)
	return central, ok, Distribute(SurroundingItems(sample, hidden))
}
