package optimizers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, expr string) Optimizer {
	t.Helper()
	opt, err := Resolve(expr)
	require.NoError(t, err)
	return opt
}

func TestSGD_Step(t *testing.T) {
	opt := mustResolve(t, "SGD(learning_rate=0.1)")
	params := []float64{1, -2}

	require.NoError(t, opt.Step(params, []float64{0.5, -1}))
	assert.InDeltaSlice(t, []float64{0.95, -1.9}, params, 1e-12)
}

func TestSGD_Momentum(t *testing.T) {
	opt := mustResolve(t, "SGD(learning_rate=0.1, momentum=0.9)")
	params := []float64{1}

	require.NoError(t, opt.Step(params, []float64{1}))
	// velocity = -0.1
	assert.InDelta(t, 0.9, params[0], 1e-12)

	require.NoError(t, opt.Step(params, []float64{1}))
	// velocity = 0.9*-0.1 - 0.1 = -0.19
	assert.InDelta(t, 0.71, params[0], 1e-12)
}

func TestSGD_Nesterov(t *testing.T) {
	opt := mustResolve(t, "SGD(learning_rate=0.1, momentum=0.9, nesterov=True)")
	params := []float64{1}

	require.NoError(t, opt.Step(params, []float64{1}))
	// velocity = -0.1; update = 0.9*-0.1 - 0.1
	assert.InDelta(t, 0.81, params[0], 1e-12)
}

// TestAdam_FirstStep checks the bias-corrected first step is about lr*sign(g)
func TestAdam_FirstStep(t *testing.T) {
	opt := mustResolve(t, "Adam(learning_rate=0.01)")
	params := []float64{1, 1}

	require.NoError(t, opt.Step(params, []float64{3, -0.5}))
	assert.InDelta(t, 0.99, params[0], 1e-6)
	assert.InDelta(t, 1.01, params[1], 1e-6)
}

func TestAdamW_DecaysWeights(t *testing.T) {
	adam := mustResolve(t, "Adam(learning_rate=0.01)")
	adamw := mustResolve(t, "tfa.optimizers.AdamW(learning_rate=0.01, weight_decay=0.5)")

	a := []float64{2}
	w := []float64{2}
	require.NoError(t, adam.Step(a, []float64{1}))
	require.NoError(t, adamw.Step(w, []float64{1}))

	// decoupled decay removes lr*wd*w before the Adam update
	assert.InDelta(t, a[0]-0.01*0.5*2, w[0], 1e-9)
}

func TestAdamax_FirstStep(t *testing.T) {
	opt := mustResolve(t, "Adamax(learning_rate=0.01)")
	params := []float64{0}

	require.NoError(t, opt.Step(params, []float64{2}))
	// m = 0.2, u = 2, step = 0.01 * 0.2 / (0.1 * (2 + eps))
	assert.InDelta(t, -0.01, params[0], 1e-8)
}

func TestNadam_MovesAgainstGradient(t *testing.T) {
	opt := mustResolve(t, "Nadam")
	params := []float64{0, 0}

	for i := 0; i < 5; i++ {
		require.NoError(t, opt.Step(params, []float64{1, -1}))
	}
	assert.Less(t, params[0], 0.0)
	assert.Greater(t, params[1], 0.0)
	assert.InDelta(t, -params[0], params[1], 1e-12)
}

func TestRMSprop_FirstStep(t *testing.T) {
	opt := mustResolve(t, "RMSprop(learning_rate=0.01)")
	params := []float64{1}

	require.NoError(t, opt.Step(params, []float64{2}))
	// v = 0.1 * 4 = 0.4
	want := 1 - 0.01*2/math.Sqrt(0.4+1e-7)
	assert.InDelta(t, want, params[0], 1e-12)
}

// TestRMSprop_EpsilonInsideRoot checks epsilon is added to the velocity
// before the square root: a zero gradient history gives lr*g/sqrt(eps).
func TestRMSprop_EpsilonInsideRoot(t *testing.T) {
	opt := mustResolve(t, "RMSprop(learning_rate=0.01, rho=1.0, epsilon=0.25)")
	params := []float64{1}

	require.NoError(t, opt.Step(params, []float64{3}))
	// velocity stays 0 with rho=1, so the step is 0.01*3/sqrt(0.25)
	assert.InDelta(t, 1-0.06, params[0], 1e-12)
}

func TestAdagrad_FirstStep(t *testing.T) {
	opt := mustResolve(t, "Adagrad(learning_rate=0.1)")
	params := []float64{1}

	require.NoError(t, opt.Step(params, []float64{1}))
	want := 1 - 0.1*1/math.Sqrt(0.1+1+1e-7)
	assert.InDelta(t, want, params[0], 1e-12)
}

func TestAdadelta_FirstStep(t *testing.T) {
	opt := mustResolve(t, "Adadelta(learning_rate=1.0)")
	params := []float64{1}

	require.NoError(t, opt.Step(params, []float64{1}))
	accGrad := 0.05
	want := 1 - math.Sqrt(1e-7)/math.Sqrt(accGrad+1e-7)
	assert.InDelta(t, want, params[0], 1e-12)
}

// TestStep_Errors covers argument validation shared by every optimizer
func TestStep_Errors(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			opt := mustResolve(t, name)

			err := opt.Step([]float64{1, 2}, []float64{1})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "gradients")

			require.NoError(t, opt.Step([]float64{1, 2}, []float64{0.1, 0.1}))

			err = opt.Step([]float64{1, 2, 3}, []float64{0.1, 0.1, 0.1})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "changed")
		})
	}
}

// TestStep_ConvergesOnQuadratic minimises f(x) = (x - 3)^2 with every optimizer
func TestStep_ConvergesOnQuadratic(t *testing.T) {
	exprs := []string{
		"SGD(learning_rate=0.1)",
		"SGD(learning_rate=0.05, momentum=0.5)",
		"Adam(learning_rate=0.1)",
		"AdamW(learning_rate=0.1, weight_decay=0)",
		"Adamax(learning_rate=0.1)",
		"Nadam(learning_rate=0.1)",
		"RMSprop(learning_rate=0.01)",
		"Adagrad(learning_rate=0.5)",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			opt := mustResolve(t, expr)
			x := []float64{0}
			for i := 0; i < 2000; i++ {
				require.NoError(t, opt.Step(x, []float64{2 * (x[0] - 3)}))
			}
			assert.InDelta(t, 3, x[0], 0.05)
		})
	}
}
