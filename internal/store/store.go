// Package store owns the working batch, the selected sample, and the
// per-card view state. Every operation is total: missing ids and
// unknown paths degrade to no-ops, never panics.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sprite-ai/daf/internal/model"
)

const (
	// DefaultRegenerateDelay simulates model latency on regenerate.
	DefaultRegenerateDelay = 2000 * time.Millisecond

	// DefaultHighlightWindow is how long regenerated metrics stay
	// highlighted for the renderer.
	DefaultHighlightWindow = 3000 * time.Millisecond
)

// Store holds a working copy of a loaded batch. Mutations are
// copy-on-write: samples are cloned and swapped, so samples handed out
// earlier stay stable snapshots.
type Store struct {
	mu sync.Mutex

	samples  []model.Sample
	pool     []model.PoolEntry
	source   string
	warnings []string

	selected string
	hidden   map[string]bool
	expanded map[string]bool

	regenerating bool
	highlight    bool
	regenSeq     int
	highlightSeq int

	delay        time.Duration
	highlightFor time.Duration
	rand         func() float64
	newID        func() string
	notify       func()
}

// Option configures a Store.
type Option func(*Store)

// WithDelay overrides the simulated regenerate latency.
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithHighlightWindow overrides the metric-highlight window.
func WithHighlightWindow(d time.Duration) Option {
	return func(s *Store) { s.highlightFor = d }
}

// WithRandom injects the random source used for metric perturbation.
func WithRandom(fn func() float64) Option {
	return func(s *Store) { s.rand = fn }
}

// WithIDGenerator injects the generator for fresh snippet ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithNotify registers a callback invoked after asynchronous state
// changes (regenerate completion, highlight expiry).
func WithNotify(fn func()) Option {
	return func(s *Store) { s.notify = fn }
}

// New derives a store from a loaded batch. The first sample is selected.
func New(batch *model.Batch, opts ...Option) *Store {
	s := &Store{
		delay:        DefaultRegenerateDelay,
		highlightFor: DefaultHighlightWindow,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(batch)
	return s
}

// Reload replaces the working copy with a freshly loaded batch and
// resets all view state.
func (s *Store) Reload(batch *model.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(batch)
}

func (s *Store) reset(batch *model.Batch) {
	s.samples = append([]model.Sample(nil), batch.Samples...)
	s.pool = batch.ReferencePool
	s.source = batch.Source
	s.warnings = batch.Warnings
	s.hidden = make(map[string]bool)
	s.expanded = make(map[string]bool)
	s.selected = ""
	if len(s.samples) > 0 {
		s.selected = s.samples[0].ID
	}
	s.regenSeq++
	s.highlightSeq++
	s.regenerating = false
	s.highlight = false
}

// --- queries ---

// Samples returns a copy of the sample list in batch order.
func (s *Store) Samples() []model.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Sample(nil), s.samples...)
}

// Sample returns the sample with the given id.
func (s *Store) Sample(id string) (model.Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.samples[i], true
	}
	return model.Sample{}, false
}

// Selected returns the currently selected sample.
func (s *Store) Selected() (model.Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(s.selected); i >= 0 {
		return s.samples[i], true
	}
	return model.Sample{}, false
}

// SelectedID returns the id of the selected sample.
func (s *Store) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Source returns the locator the batch was loaded from.
func (s *Store) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Warnings returns line-level warnings recorded at load time.
func (s *Store) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// ReferencePool returns the shared pool. The pool is read-only; adds
// copy out of it and never remove.
func (s *Store) ReferencePool() []model.PoolEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool
}

// IsHidden reports whether a card id is hidden.
func (s *Store) IsHidden(cardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden[cardID]
}

// IsExpanded reports whether a card id is expanded.
func (s *Store) IsExpanded(cardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[cardID]
}

// HiddenIDs returns the set of hidden card ids.
func (s *Store) HiddenIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.hidden))
	for k, v := range s.hidden {
		if v {
			out[k] = true
		}
	}
	return out
}

// HiddenCount returns how many cards are hidden.
func (s *Store) HiddenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hidden {
		if v {
			n++
		}
	}
	return n
}

// IsRegenerating reports whether an answer regeneration is in flight.
func (s *Store) IsRegenerating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerating
}

// HighlightMetrics reports whether metrics should render highlighted.
func (s *Store) HighlightMetrics() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlight
}

// --- mutations ---

// SelectSample switches the active sample. Unknown ids are a no-op.
// View state resets except the selection itself.
func (s *Store) SelectSample(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(id) < 0 || id == s.selected {
		return
	}
	s.selected = id
	s.hidden = make(map[string]bool)
	s.expanded = make(map[string]bool)
}

// ToggleExpanded flips the expanded state of a card. Toggling twice
// restores the original state.
func (s *Store) ToggleExpanded(cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expanded[cardID] {
		delete(s.expanded, cardID)
	} else {
		s.expanded[cardID] = true
	}
}

// ToggleHidden flips the hidden state of a card.
func (s *Store) ToggleHidden(cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hidden[cardID] {
		delete(s.hidden, cardID)
	} else {
		s.hidden[cardID] = true
	}
}

// ShowAllHidden clears the hidden set.
func (s *Store) ShowAllHidden() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = make(map[string]bool)
}

// DeleteSnippet removes a snippet from a sample. Absent ids are
// treated as already deleted.
func (s *Store) DeleteSnippet(sampleID, refID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(sampleID)
	if i < 0 {
		return
	}
	j := s.samples[i].SnippetIndex(refID)
	if j < 0 {
		return
	}
	next := s.samples[i].Clone()
	next.Snippets = append(next.Snippets[:j], next.Snippets[j+1:]...)
	s.samples[i] = next
}

// DeleteCommentary removes a commentary from a sample.
func (s *Store) DeleteCommentary(sampleID, evalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(sampleID)
	if i < 0 {
		return
	}
	j := s.samples[i].CommentaryIndex(evalID)
	if j < 0 {
		return
	}
	next := s.samples[i].Clone()
	next.Commentaries = append(next.Commentaries[:j], next.Commentaries[j+1:]...)
	s.samples[i] = next
}

// EditField replaces a scalar leaf field on a copy of the sample.
// Supported paths: "query", "answer", "snippets/<id>/text",
// "snippets/<id>/source", "snippets/<id>/page". Unknown paths report
// false and change nothing.
func (s *Store) EditField(sampleID, path, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(sampleID)
	if i < 0 {
		return false
	}

	next := s.samples[i].Clone()
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 1 && (parts[0] == "query" || parts[0] == "answer"):
		g := centralGenerationIndex(&next)
		if g < 0 {
			return false
		}
		if parts[0] == "query" {
			next.Generations[g].Query = value
		} else {
			next.Generations[g].Answer = value
		}

	case len(parts) == 3 && parts[0] == "snippets":
		j := next.SnippetIndex(parts[1])
		if j < 0 {
			return false
		}
		switch parts[2] {
		case "text":
			next.Snippets[j].Text = value
		case "source":
			next.Snippets[j].Source = value
		case "page":
			next.Snippets[j].Page = value
		default:
			return false
		}

	default:
		return false
	}

	s.samples[i] = next
	return true
}

// AddReferenceFromPool copies a pool entry into a sample's snippets
// under a freshly generated id. The pool itself is never changed, so
// the same entry can be added to several samples.
func (s *Store) AddReferenceFromPool(sampleID, poolRefID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(sampleID)
	if i < 0 {
		return "", false
	}

	var entry *model.PoolEntry
	for k := range s.pool {
		if s.pool[k].ID == poolRefID {
			entry = &s.pool[k]
			break
		}
	}
	if entry == nil {
		return "", false
	}

	id := "ref_added_" + s.newID()
	for s.samples[i].SnippetIndex(id) >= 0 {
		id = "ref_added_" + s.newID()
	}

	next := s.samples[i].Clone()
	next.Snippets = append(next.Snippets, model.Snippet{
		ID:     id,
		Text:   entry.Text,
		Source: entry.Source,
		Page:   entry.Page,
	})
	s.samples[i] = next
	return id, true
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.samples {
		if s.samples[i].ID == id {
			return i
		}
	}
	return -1
}

// centralGenerationIndex resolves the generation the central panel
// shows: the one named by central_block_id, else the first.
func centralGenerationIndex(sample *model.Sample) int {
	if i := sample.GenerationIndex(sample.CentralBlockID); i >= 0 {
		return i
	}
	if len(sample.Generations) > 0 {
		return 0
	}
	return -1
}
