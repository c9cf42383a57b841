package api

import (
	"errors"
	"net/http"

	"github.com/sprite-ai/daf/internal/ingest"
	"github.com/sprite-ai/daf/internal/layout"
	"github.com/sprite-ai/daf/internal/model"
	"github.com/sprite-ai/daf/internal/pool"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Load ---

type loadRequest struct {
	Source string `json:"source"`
}

type loadResponse struct {
	Source   string   `json:"source"`
	Samples  int      `json:"samples"`
	Pool     int      `json:"pool"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "source is required")
		return
	}

	batch, err := s.loader.Load(req.Source)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, ingest.ErrNotJSON) || errors.Is(err, ingest.ErrEmptyBatch) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, "loading batch: "+err.Error())
		return
	}

	s.store.Reload(batch)
	s.Broadcast()

	writeJSON(w, http.StatusOK, loadResponse{
		Source:   batch.Source,
		Samples:  len(batch.Samples),
		Pool:     len(batch.ReferencePool),
		Warnings: batch.Warnings,
	})
}

// --- Samples ---

type sampleSummaryJSON struct {
	ID           string `json:"id"`
	Query        string `json:"query"`
	Snippets     int    `json:"snippets"`
	Commentaries int    `json:"commentaries"`
	Selected     bool   `json:"selected,omitempty"`
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	selected := s.store.SelectedID()
	var out []sampleSummaryJSON
	for _, sample := range s.store.Samples() {
		out = append(out, sampleSummaryJSON{
			ID:           sample.ID,
			Query:        sample.Query(),
			Snippets:     len(sample.Snippets),
			Commentaries: len(sample.Commentaries),
			Selected:     sample.ID == selected,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"source":  s.store.Source(),
		"samples": out,
	})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	sample, ok := s.store.Sample(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such sample")
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

// --- Layout ---

type cardJSON struct {
	Kind       string              `json:"kind"`
	ID         string              `json:"id"`
	Generation *model.Generation   `json:"generation,omitempty"`
	Snippet    *model.Snippet      `json:"snippet,omitempty"`
	Commentary *model.Commentary   `json:"commentary,omitempty"`
	Metrics    *model.MetricsBlock `json:"metrics,omitempty"`
}

type layoutJSON struct {
	Central *cardJSON  `json:"central"` // null in the no-central state
	Top     []cardJSON `json:"top"`
	Right   []cardJSON `json:"right"`
	Bottom  []cardJSON `json:"bottom"`
	Left    []cardJSON `json:"left"`
}

func toCardJSON(item model.DisplayItem) cardJSON {
	return cardJSON{
		Kind:       item.Kind.String(),
		ID:         item.ID,
		Generation: item.Generation,
		Snippet:    item.Snippet,
		Commentary: item.Commentary,
		Metrics:    item.Metrics,
	}
}

func toCardsJSON(items []model.DisplayItem) []cardJSON {
	out := make([]cardJSON, len(items))
	for i, item := range items {
		out[i] = toCardJSON(item)
	}
	return out
}

func layoutFor(sample *model.Sample, hidden map[string]bool) layoutJSON {
	central, ok, q := layout.Arrange(sample, hidden)
	resp := layoutJSON{
		Top:    toCardsJSON(q.Top),
		Right:  toCardsJSON(q.Right),
		Bottom: toCardsJSON(q.Bottom),
		Left:   toCardsJSON(q.Left),
	}
	if ok {
		c := toCardJSON(central)
		resp.Central = &c
	}
	return resp
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sample, ok := s.store.Sample(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such sample")
		return
	}
	// Hidden state only applies to the selected sample's view.
	var hidden map[string]bool
	if sample.ID == s.store.SelectedID() {
		hidden = s.store.HiddenIDs()
	}
	writeJSON(w, http.StatusOK, layoutFor(&sample, hidden))
}

// --- Pool search ---

type poolSearchRequest struct {
	Text   string   `json:"text,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	SortBy string   `json:"sort_by,omitempty"`
}

func (s *Server) handlePoolSearch(w http.ResponseWriter, r *http.Request) {
	var req poolSearchRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	entries := s.store.ReferencePool()
	results := pool.Search(entries, pool.Query{
		Text:   req.Text,
		Tags:   req.Tags,
		SortBy: pool.SortBy(req.SortBy),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"tags":    pool.Tags(entries),
	})
}
