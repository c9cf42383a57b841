// Package tui implements the Bubble Tea terminal viewer for daf.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprite-ai/daf/internal/layout"
	"github.com/sprite-ai/daf/internal/model"
	"github.com/sprite-ai/daf/internal/pool"
	"github.com/sprite-ai/daf/internal/store"
)

type mode int

const (
	modeCards mode = iota
	modeSamples
	modePool
	modeHelp
)

// regenDoneMsg fires when the simulated model call completes. The seq
// guards against a superseded regenerate applying its result.
type regenDoneMsg struct{ seq int }

// highlightOffMsg ends the metric-highlight window.
type highlightOffMsg struct{ seq int }

// Model is the top-level Bubble Tea model for daf.
type Model struct {
	store        *store.Store
	delay        time.Duration
	highlightFor time.Duration

	// UI state
	width  int
	height int
	mode   mode

	// Card cursor over the surround, in distribution order.
	cardIndex int

	// Sample selector
	sampleIndex int

	// Reference-pool picker
	poolInput textinput.Model
	poolIndex int
	poolSort  pool.SortBy

	// Regenerate state. The TUI drives the timing itself through tick
	// commands and applies the transition synchronously on expiry.
	spin         spinner.Model
	regenerating bool
	highlight    bool
	regenSeq     int
	highlightSeq int
}

// New creates a TUI model over a store.
func New(st *store.Store, delay, highlightFor time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "search text or source"
	input.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		store:        st,
		delay:        delay,
		highlightFor: highlightFor,
		poolInput:    input,
		poolSort:     pool.SortRelevance,
		spin:         sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// cards returns the selected sample's surround in distribution order.
func (m *Model) cards() []model.DisplayItem {
	sample, ok := m.store.Selected()
	if !ok {
		return nil
	}
	return layout.SurroundingItems(&sample, m.store.HiddenIDs())
}

func (m *Model) clampCardIndex(cards []model.DisplayItem) {
	if m.cardIndex >= len(cards) {
		m.cardIndex = len(cards) - 1
	}
	if m.cardIndex < 0 {
		m.cardIndex = 0
	}
}

// poolResults applies the picker's current filter and sort.
func (m *Model) poolResults() []model.PoolEntry {
	return pool.Search(m.store.ReferencePool(), pool.Query{
		Text:   m.poolInput.Value(),
		SortBy: m.poolSort,
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.regenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case regenDoneMsg:
		if msg.seq != m.regenSeq {
			return m, nil // superseded
		}
		m.store.ApplyRegenerate(m.store.SelectedID())
		m.regenerating = false
		m.highlight = true
		m.highlightSeq++
		seq := m.highlightSeq
		return m, tea.Tick(m.highlightFor, func(time.Time) tea.Msg {
			return highlightOffMsg{seq: seq}
		})

	case highlightOffMsg:
		if msg.seq == m.highlightSeq {
			m.highlight = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeHelp:
			return m.updateHelp(msg)
		case modeSamples:
			return m.updateSamples(msg)
		case modePool:
			return m.updatePool(msg)
		default:
			return m.updateCards(msg)
		}
	}

	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help), key.Matches(msg, keys.Back):
		m.mode = modeCards
	}
	return m, nil
}

func (m Model) updateSamples(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	samples := m.store.Samples()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.mode = modeCards

	case key.Matches(msg, keys.Down):
		if m.sampleIndex < len(samples)-1 {
			m.sampleIndex++
		}

	case key.Matches(msg, keys.Up):
		if m.sampleIndex > 0 {
			m.sampleIndex--
		}

	case key.Matches(msg, keys.Confirm):
		if m.sampleIndex < len(samples) {
			m.store.SelectSample(samples[m.sampleIndex].ID)
			m.cardIndex = 0
		}
		m.mode = modeCards
	}
	return m, nil
}

func (m Model) updatePool(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.mode = modeCards
		m.poolInput.Blur()
		return m, nil

	// Only the arrow keys navigate here; j/k stay typeable in the
	// search input.
	case msg.String() == "down":
		if m.poolIndex < len(m.poolResults())-1 {
			m.poolIndex++
		}
		return m, nil

	case msg.String() == "up":
		if m.poolIndex > 0 {
			m.poolIndex--
		}
		return m, nil

	case key.Matches(msg, keys.Sort):
		switch m.poolSort {
		case pool.SortRelevance:
			m.poolSort = pool.SortSource
		case pool.SortSource:
			m.poolSort = pool.SortRecent
		default:
			m.poolSort = pool.SortRelevance
		}
		m.poolIndex = 0
		return m, nil

	case key.Matches(msg, keys.Confirm):
		results := m.poolResults()
		if m.poolIndex < len(results) {
			m.store.AddReferenceFromPool(m.store.SelectedID(), results[m.poolIndex].ID)
		}
		m.mode = modeCards
		m.poolInput.Blur()
		return m, nil
	}

	// Everything else edits the search input.
	var cmd tea.Cmd
	m.poolInput, cmd = m.poolInput.Update(msg)
	m.poolIndex = 0
	return m, cmd
}

func (m Model) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.cards()
	m.clampCardIndex(cards)

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = modeHelp

	case key.Matches(msg, keys.Samples):
		m.mode = modeSamples
		m.sampleIndex = 0

	case key.Matches(msg, keys.Pool):
		if len(m.store.ReferencePool()) > 0 {
			m.mode = modePool
			m.poolIndex = 0
			m.poolInput.SetValue("")
			m.poolInput.Focus()
		}

	case key.Matches(msg, keys.NextCard):
		if m.cardIndex < len(cards)-1 {
			m.cardIndex++
		}

	case key.Matches(msg, keys.PrevCard):
		if m.cardIndex > 0 {
			m.cardIndex--
		}

	case key.Matches(msg, keys.Expand):
		if m.cardIndex < len(cards) {
			m.store.ToggleExpanded(cards[m.cardIndex].ID)
		}

	case key.Matches(msg, keys.Hide):
		if m.cardIndex < len(cards) {
			m.store.ToggleHidden(cards[m.cardIndex].ID)
		}

	case key.Matches(msg, keys.ShowAll):
		m.store.ShowAllHidden()

	case key.Matches(msg, keys.Delete):
		if m.cardIndex < len(cards) {
			m.deleteCard(cards[m.cardIndex])
		}

	case key.Matches(msg, keys.Regenerate):
		if m.store.SelectedID() == "" {
			break
		}
		m.regenerating = true
		m.regenSeq++
		seq := m.regenSeq
		return m, tea.Batch(
			m.spin.Tick,
			tea.Tick(m.delay, func(time.Time) tea.Msg {
				return regenDoneMsg{seq: seq}
			}),
		)
	}

	return m, nil
}

// deleteCard removes a snippet or commentary card. Other kinds only
// support hiding.
func (m *Model) deleteCard(card model.DisplayItem) {
	switch card.Kind {
	case model.KindSnippet:
		m.store.DeleteSnippet(m.store.SelectedID(), card.Snippet.ID)
	case model.KindCommentary:
		m.store.DeleteCommentary(m.store.SelectedID(), card.Commentary.ID)
	}
}

// Run starts the TUI application.
func Run(st *store.Store, delay, highlightFor time.Duration) error {
	m := New(st, delay, highlightFor)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
