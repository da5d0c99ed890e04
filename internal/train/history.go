package train

import (
	"math"

	"github.com/google/uuid"
)

// History is the per-epoch record of one Fit call.
type History struct {
	runID   uuid.UUID
	loss    []float64
	valLoss []float64
}

// NewHistory creates an empty history with a fresh run id.
func NewHistory() *History {
	return &History{runID: uuid.New()}
}

func (h *History) record(loss float64, valLoss ...float64) {
	h.loss = append(h.loss, loss)
	h.valLoss = append(h.valLoss, valLoss...)
}

// RunID identifies the Fit call that produced the history.
func (h *History) RunID() uuid.UUID {
	return h.runID
}

// Epochs returns the number of completed epochs.
func (h *History) Epochs() int {
	return len(h.loss)
}

// Loss returns a copy of the per-epoch training losses.
func (h *History) Loss() []float64 {
	return append([]float64(nil), h.loss...)
}

// ValLoss returns a copy of the per-epoch validation losses, or nil when
// training ran without validation data.
func (h *History) ValLoss() []float64 {
	if len(h.valLoss) == 0 {
		return nil
	}
	return append([]float64(nil), h.valLoss...)
}

// HasValidation reports whether validation losses were recorded.
func (h *History) HasValidation() bool {
	return len(h.valLoss) > 0
}

// FinalLoss returns the last training loss, or NaN for an empty history.
func (h *History) FinalLoss() float64 {
	return last(h.loss)
}

// FinalValLoss returns the last validation loss, or NaN if there is none.
func (h *History) FinalValLoss() float64 {
	return last(h.valLoss)
}

// Score is the value restarts are ranked by: the final validation loss when
// present, else the final training loss. Lower is better.
func (h *History) Score() float64 {
	if h.HasValidation() {
		return h.FinalValLoss()
	}
	return h.FinalLoss()
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
