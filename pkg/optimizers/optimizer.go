// Package optimizers resolves optimizer expressions such as
// "tf.keras.optimizers.Adam(learning_rate=1e-4)" against a closed catalog of
// gradient-descent update rules.
//
// Only the identifiers registered in this package are accepted; anything
// else is reported as an *UnresolvedError rather than evaluated.
package optimizers

import (
	"github.com/pkg/errors"
)

// Optimizer updates a parameter vector in place from its gradient.
type Optimizer interface {
	// Name is the canonical identifier, e.g. "Adam".
	Name() string

	// Config returns the hyperparameters in effect. Boolean options are
	// reported as 0 or 1.
	Config() map[string]float64

	// Step applies one update. params and grads must have the same length,
	// and that length must not change between calls since per-parameter
	// state is allocated on the first call.
	Step(params, grads []float64) error
}

// base carries the bookkeeping shared by every update rule.
type base struct {
	name       string
	hyper      map[string]float64
	size       int
	iterations int
}

func newBase(name string, hyper map[string]float64) base {
	return base{name: name, hyper: hyper}
}

func (b *base) Name() string { return b.name }

func (b *base) Config() map[string]float64 {
	out := make(map[string]float64, len(b.hyper))
	for k, v := range b.hyper {
		out[k] = v
	}
	return out
}

// Iterations returns the number of steps applied so far.
func (b *base) Iterations() int { return b.iterations }

// begin validates the step arguments, reports whether the state slots need
// allocating and advances the iteration counter.
func (b *base) begin(params, grads []float64) (fresh bool, err error) {
	if len(params) != len(grads) {
		return false, errors.Errorf("%s: %d parameters but %d gradients", b.name, len(params), len(grads))
	}
	if b.iterations == 0 {
		b.size = len(params)
		fresh = true
	} else if len(params) != b.size {
		return false, errors.Errorf("%s: parameter count changed from %d to %d", b.name, b.size, len(params))
	}
	b.iterations++
	return fresh, nil
}
