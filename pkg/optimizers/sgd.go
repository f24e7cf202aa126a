package optimizers

import (
	"gonum.org/v1/gonum/floats"
)

// sgd is gradient descent with optional (Nesterov) momentum.
type sgd struct {
	base
	velocity []float64
}

func newSGD(hyper map[string]float64) Optimizer {
	return &sgd{base: newBase("SGD", hyper)}
}

func (o *sgd) Step(params, grads []float64) error {
	fresh, err := o.begin(params, grads)
	if err != nil {
		return err
	}

	lr := o.hyper["learning_rate"]
	momentum := o.hyper["momentum"]
	if momentum == 0 {
		floats.AddScaled(params, -lr, grads)
		return nil
	}

	if fresh {
		o.velocity = make([]float64, len(params))
	}
	nesterov := o.hyper["nesterov"] != 0
	for i, g := range grads {
		o.velocity[i] = momentum*o.velocity[i] - lr*g
		if nesterov {
			params[i] += momentum*o.velocity[i] - lr*g
		} else {
			params[i] += o.velocity[i]
		}
	}
	return nil
}
