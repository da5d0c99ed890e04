// Package train implements the mini-batch fit loop shared by every
// autoencoder variant, the per-epoch History it produces, and BestOf for
// running independent restarts concurrently.
package train

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/born-ml/tabae/internal/tensor"
)

var (
	// ErrStopTraining is returned by an OnEpochEnd callback to end training
	// early. Fit treats it as a normal stop and returns a nil error.
	ErrStopTraining = errors.New("stop training")

	// ErrEmptyDataset is returned when a dataset has no rows.
	ErrEmptyDataset = errors.New("empty dataset")
)

// DefaultBatchSize is used when Config.BatchSize is zero.
const DefaultBatchSize = 32

// Trainable is a model the fit loop can drive.
//
// TrainStep runs one forward/backward/update pass on a batch and returns the
// batch loss; EvalStep computes the batch loss without updating anything.
type Trainable interface {
	TrainStep(x, y *tensor.Tensor) float64
	EvalStep(x, y *tensor.Tensor) float64
}

// Validation holds a held-out dataset evaluated at the end of every epoch.
type Validation struct {
	X, Y *tensor.Tensor
}

// Config controls a Fit call.
type Config struct {
	Epochs     int
	BatchSize  int // default DefaultBatchSize
	Shuffle    bool
	Validation *Validation

	// Rand drives shuffling. Nil means a time-seeded source.
	Rand *rand.Rand

	// Logger receives per-epoch progress at debug level. Nil means
	// slog.Default().
	Logger *slog.Logger

	// OnEpochEnd runs after each epoch with the history so far. Returning
	// ErrStopTraining stops training; any other error aborts Fit.
	OnEpochEnd func(epoch int, h *History) error
}

func (c Config) withDefaults() Config {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

func checkDataset(name string, x, y *tensor.Tensor) error {
	if x == nil || y == nil || x.NumElements() == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyDataset)
	}
	if len(x.Shape()) != 2 || len(y.Shape()) != 2 {
		return fmt.Errorf("%s: expected 2D inputs, got %v and %v", name, x.Shape(), y.Shape())
	}
	if x.Rows() != y.Rows() {
		return fmt.Errorf("%s: x has %d rows but y has %d", name, x.Rows(), y.Rows())
	}
	return nil
}

// Fit trains model on (x, y) for cfg.Epochs epochs of mini-batches.
//
// The epoch loss is the sample-weighted mean of the batch losses, so a short
// final batch counts proportionally. Non-finite losses are recorded as-is
// and logged at warn level.
func Fit(model Trainable, x, y *tensor.Tensor, cfg Config) (*History, error) {
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("fit: epochs must be positive, got %d", cfg.Epochs)
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("fit: batch size must be positive, got %d", cfg.BatchSize)
	}
	if err := checkDataset("fit", x, y); err != nil {
		return nil, err
	}
	if cfg.Validation != nil {
		if err := checkDataset("validation", cfg.Validation.X, cfg.Validation.Y); err != nil {
			return nil, err
		}
	}
	cfg = cfg.withDefaults()

	history := NewHistory()
	log := cfg.Logger.With("run", history.RunID().String())

	n := x.Rows()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		start := time.Now()
		if cfg.Shuffle {
			cfg.Rand.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		var sum float64
		for lo := 0; lo < n; lo += cfg.BatchSize {
			hi := min(lo+cfg.BatchSize, n)
			idx := order[lo:hi]
			loss := model.TrainStep(x.Gather(idx), y.Gather(idx))
			sum += loss * float64(hi-lo)
		}
		epochLoss := sum / float64(n)

		valLoss := math.NaN()
		if cfg.Validation != nil {
			valLoss = Evaluate(model, cfg.Validation.X, cfg.Validation.Y, cfg.BatchSize)
			history.record(epochLoss, valLoss)
		} else {
			history.record(epochLoss)
		}

		attrs := []any{"epoch", epoch, "loss", epochLoss, "elapsed", time.Since(start)}
		if cfg.Validation != nil {
			attrs = append(attrs, "val_loss", valLoss)
		}
		log.Debug("epoch finished", attrs...)
		if !finite(epochLoss) || (cfg.Validation != nil && !finite(valLoss)) {
			log.Warn("non-finite loss", attrs...)
		}

		if cfg.OnEpochEnd != nil {
			if err := cfg.OnEpochEnd(epoch, history); err != nil {
				if errors.Is(err, ErrStopTraining) {
					log.Debug("training stopped early", "epoch", epoch)
					break
				}
				return history, err
			}
		}
	}

	return history, nil
}

// Evaluate returns the sample-weighted mean of model.EvalStep over (x, y)
// in batches of batchSize. A non-positive batchSize evaluates in one batch.
// x and y must be non-empty with matching row counts.
func Evaluate(model Trainable, x, y *tensor.Tensor, batchSize int) float64 {
	n := x.Rows()
	if batchSize <= 0 {
		batchSize = n
	}
	var sum float64
	for lo := 0; lo < n; lo += batchSize {
		hi := min(lo+batchSize, n)
		idx := make([]int, hi-lo)
		for i := range idx {
			idx[i] = lo + i
		}
		sum += model.EvalStep(x.Gather(idx), y.Gather(idx)) * float64(hi-lo)
	}
	return sum / float64(n)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
