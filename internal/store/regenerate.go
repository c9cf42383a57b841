package store

import (
	"math"
	"math/rand"
	"time"

	"github.com/sprite-ai/daf/internal/model"
)

// AnswerBucket maps a snippet count to the mock-answer bucket label.
func AnswerBucket(n int) string {
	switch {
	case n == 0:
		return "0"
	case n <= 2:
		return "1-2"
	case n == 3:
		return "3"
	default:
		return "4+"
	}
}

// RegenerateAnswer simulates a model call for the given sample: after
// the configured delay it swaps in the mock answer for the current
// snippet-count bucket and perturbs the central generation's numeric
// metrics. IsRegenerating is observable while the call is in flight;
// HighlightMetrics stays set for the highlight window afterwards.
//
// A second call while one is pending supersedes it: the earlier timer's
// writes are discarded, last write wins.
func (s *Store) RegenerateAnswer(sampleID string) {
	s.mu.Lock()
	if s.index(sampleID) < 0 {
		s.mu.Unlock()
		return
	}
	s.regenerating = true
	s.regenSeq++
	seq := s.regenSeq
	delay := s.delay
	s.mu.Unlock()

	time.AfterFunc(delay, func() {
		s.finishRegenerate(sampleID, seq)
	})
}

func (s *Store) finishRegenerate(sampleID string, seq int) {
	s.mu.Lock()
	if seq != s.regenSeq {
		s.mu.Unlock()
		return // superseded by a later call
	}

	s.applyRegenerateLocked(sampleID)
	s.regenerating = false
	s.highlight = true
	s.highlightSeq++
	hseq := s.highlightSeq
	window := s.highlightFor
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify()
	}

	time.AfterFunc(window, func() {
		s.mu.Lock()
		cleared := false
		if hseq == s.highlightSeq {
			s.highlight = false
			cleared = true
		}
		fn := s.notify
		s.mu.Unlock()
		if cleared && fn != nil {
			fn()
		}
	})
}

// ApplyRegenerate performs the regenerate state transition immediately,
// without the simulated delay or flags. The TUI drives its own timing
// through tick commands and calls this on expiry.
func (s *Store) ApplyRegenerate(sampleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyRegenerateLocked(sampleID)
}

func (s *Store) applyRegenerateLocked(sampleID string) {
	i := s.index(sampleID)
	if i < 0 {
		return
	}

	next := s.samples[i].Clone()
	g := centralGenerationIndex(&next)
	if g < 0 {
		return
	}

	// Bucket by the snippet count as it stands now, after any deletes.
	bucket := AnswerBucket(len(next.Snippets))
	next.Generations[g].Answer = next.MockAnswers[bucket]

	if next.Generations[g].AutomatedMetrics != nil {
		next.Generations[g].AutomatedMetrics = s.randomizeMetrics(next.Generations[g].AutomatedMetrics)
	}

	s.samples[i] = next
}

// randomizeMetrics perturbs each numeric metric to a value in
// [0.6v, 0.9v], rounded to two decimals. Non-numeric values pass
// through unchanged.
func (s *Store) randomizeMetrics(m map[string]model.MetricValue) map[string]model.MetricValue {
	random := s.rand
	if random == nil {
		random = rand.Float64
	}
	out := make(map[string]model.MetricValue, len(m))
	for k, v := range m {
		if !v.IsNumber {
			out[k] = v
			continue
		}
		factor := 0.6 + random()*0.3
		out[k] = model.Num(math.Round(v.Number*factor*100) / 100)
	}
	return out
}
