package optimizers

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// adam implements Adam and, with a non-zero weight_decay, AdamW.
type adam struct {
	base
	decoupled bool
	m, v      []float64
}

func newAdam(hyper map[string]float64) Optimizer {
	return &adam{base: newBase("Adam", hyper)}
}

func newAdamW(hyper map[string]float64) Optimizer {
	return &adam{base: newBase("AdamW", hyper), decoupled: true}
}

func (o *adam) Step(params, grads []float64) error {
	fresh, err := o.begin(params, grads)
	if err != nil {
		return err
	}
	if fresh {
		o.m = make([]float64, len(params))
		o.v = make([]float64, len(params))
	}

	lr := o.hyper["learning_rate"]
	b1, b2, eps := o.hyper["beta_1"], o.hyper["beta_2"], o.hyper["epsilon"]
	t := float64(o.iterations)

	if o.decoupled {
		floats.Scale(1-lr*o.hyper["weight_decay"], params)
	}

	alpha := lr * math.Sqrt(1-math.Pow(b2, t)) / (1 - math.Pow(b1, t))
	for i, g := range grads {
		o.m[i] += (g - o.m[i]) * (1 - b1)
		o.v[i] += (g*g - o.v[i]) * (1 - b2)
		params[i] -= alpha * o.m[i] / (math.Sqrt(o.v[i]) + eps)
	}
	return nil
}

// adamax is the infinity-norm variant of Adam.
type adamax struct {
	base
	m, u []float64
}

func newAdamax(hyper map[string]float64) Optimizer {
	return &adamax{base: newBase("Adamax", hyper)}
}

func (o *adamax) Step(params, grads []float64) error {
	fresh, err := o.begin(params, grads)
	if err != nil {
		return err
	}
	if fresh {
		o.m = make([]float64, len(params))
		o.u = make([]float64, len(params))
	}

	lr := o.hyper["learning_rate"]
	b1, b2, eps := o.hyper["beta_1"], o.hyper["beta_2"], o.hyper["epsilon"]
	t := float64(o.iterations)

	for i, g := range grads {
		o.m[i] += (g - o.m[i]) * (1 - b1)
		o.u[i] = math.Max(b2*o.u[i], math.Abs(g))
		params[i] -= lr * o.m[i] / ((1 - math.Pow(b1, t)) * (o.u[i] + eps))
	}
	return nil
}

// nadam is Adam with Nesterov momentum and a momentum decay schedule.
type nadam struct {
	base
	m, v     []float64
	uProduct float64
}

func newNadam(hyper map[string]float64) Optimizer {
	return &nadam{base: newBase("Nadam", hyper), uProduct: 1}
}

func (o *nadam) Step(params, grads []float64) error {
	fresh, err := o.begin(params, grads)
	if err != nil {
		return err
	}
	if fresh {
		o.m = make([]float64, len(params))
		o.v = make([]float64, len(params))
	}

	lr := o.hyper["learning_rate"]
	b1, b2, eps := o.hyper["beta_1"], o.hyper["beta_2"], o.hyper["epsilon"]
	t := float64(o.iterations)

	uT := b1 * (1 - 0.5*math.Pow(0.96, 0.004*t))
	uT1 := b1 * (1 - 0.5*math.Pow(0.96, 0.004*(t+1)))
	o.uProduct *= uT
	uProductT1 := o.uProduct * uT1
	b2Power := math.Pow(b2, t)

	for i, g := range grads {
		o.m[i] += (g - o.m[i]) * (1 - b1)
		o.v[i] += (g*g - o.v[i]) * (1 - b2)
		mHat := uT1*o.m[i]/(1-uProductT1) + (1-uT)*g/(1-o.uProduct)
		vHat := o.v[i] / (1 - b2Power)
		params[i] -= lr * mHat / (math.Sqrt(vHat) + eps)
	}
	return nil
}
