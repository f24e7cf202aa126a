package optimizers

import (
	"math"
)

// rmsprop divides the gradient by a running root mean square.
type rmsprop struct {
	base
	velocity, momentum []float64
}

func newRMSprop(hyper map[string]float64) Optimizer {
	return &rmsprop{base: newBase("RMSprop", hyper)}
}

func (o *rmsprop) Step(params, grads []float64) error {
	fresh, err := o.begin(params, grads)
	if err != nil {
		return err
	}
	if fresh {
		o.velocity = make([]float64, len(params))
		o.momentum = make([]float64, len(params))
	}

	lr, rho := o.hyper["learning_rate"], o.hyper["rho"]
	mom, eps := o.hyper["momentum"], o.hyper["epsilon"]

	for i, g := range grads {
		o.velocity[i] = rho*o.velocity[i] + (1-rho)*g*g
		increment := lr * g / math.Sqrt(o.velocity[i]+eps)
		if mom > 0 {
			o.momentum[i] = mom*o.momentum[i] + increment
			params[i] -= o.momentum[i]
		} else {
			params[i] -= increment
		}
	}
	return nil
}

// adagrad scales each parameter by its accumulated squared gradients.
type adagrad struct {
	base
	accumulator []float64
}

func newAdagrad(hyper map[string]float64) Optimizer {
	return &adagrad{base: newBase("Adagrad", hyper)}
}

func (o *adagrad) Step(params, grads []float64) error {
	fresh, err := o.begin(params, grads)
	if err != nil {
		return err
	}
	if fresh {
		o.accumulator = make([]float64, len(params))
		for i := range o.accumulator {
			o.accumulator[i] = o.hyper["initial_accumulator_value"]
		}
	}

	lr, eps := o.hyper["learning_rate"], o.hyper["epsilon"]
	for i, g := range grads {
		o.accumulator[i] += g * g
		params[i] -= lr * g / math.Sqrt(o.accumulator[i]+eps)
	}
	return nil
}

// adadelta adapts the step size from running averages of gradients and
// updates.
type adadelta struct {
	base
	accGrad, accDelta []float64
}

func newAdadelta(hyper map[string]float64) Optimizer {
	return &adadelta{base: newBase("Adadelta", hyper)}
}

func (o *adadelta) Step(params, grads []float64) error {
	fresh, err := o.begin(params, grads)
	if err != nil {
		return err
	}
	if fresh {
		o.accGrad = make([]float64, len(params))
		o.accDelta = make([]float64, len(params))
	}

	lr, rho, eps := o.hyper["learning_rate"], o.hyper["rho"], o.hyper["epsilon"]
	for i, g := range grads {
		o.accGrad[i] = rho*o.accGrad[i] + (1-rho)*g*g
		delta := -math.Sqrt(o.accDelta[i]+eps) / math.Sqrt(o.accGrad[i]+eps) * g
		o.accDelta[i] = rho*o.accDelta[i] + (1-rho)*delta*delta
		params[i] += lr * delta
	}
	return nil
}
