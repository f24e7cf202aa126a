package optimizers

import (
	"sort"
	"strings"
)

// Namespaces accepted as an expression prefix.
const (
	NamespaceKeras      = "tf.keras.optimizers"
	NamespaceKerasShort = "keras.optimizers"
	NamespaceTF         = "tf.optimizers"
	NamespaceAddons     = "tfa.optimizers"
)

var kerasNamespaces = []string{NamespaceKeras, NamespaceKerasShort, NamespaceTF}

// entry is one catalog item: the identifier, the namespaces that provide
// it, its default hyperparameters and a constructor.
type entry struct {
	name       string
	namespaces []string
	defaults   map[string]float64
	build      func(hyper map[string]float64) Optimizer
}

var catalog = map[string]entry{}

func init() {
	adamDefaults := map[string]float64{
		"learning_rate": 0.001, "beta_1": 0.9, "beta_2": 0.999, "epsilon": 1e-7,
	}
	adamWDefaults := map[string]float64{
		"learning_rate": 0.001, "beta_1": 0.9, "beta_2": 0.999, "epsilon": 1e-7, "weight_decay": 0.004,
	}

	list := []entry{
		{"SGD", kerasNamespaces, map[string]float64{
			"learning_rate": 0.01, "momentum": 0, "nesterov": 0,
		}, newSGD},
		{"Adam", kerasNamespaces, adamDefaults, newAdam},
		{"AdamW", append([]string{NamespaceAddons}, kerasNamespaces...), adamWDefaults, newAdamW},
		{"Adamax", kerasNamespaces, adamDefaults, newAdamax},
		{"Nadam", kerasNamespaces, adamDefaults, newNadam},
		{"RMSprop", kerasNamespaces, map[string]float64{
			"learning_rate": 0.001, "rho": 0.9, "momentum": 0, "epsilon": 1e-7,
		}, newRMSprop},
		{"Adagrad", kerasNamespaces, map[string]float64{
			"learning_rate": 0.001, "initial_accumulator_value": 0.1, "epsilon": 1e-7,
		}, newAdagrad},
		{"Adadelta", kerasNamespaces, map[string]float64{
			"learning_rate": 0.001, "rho": 0.95, "epsilon": 1e-7,
		}, newAdadelta},
	}

	for _, e := range list {
		key := strings.ToLower(e.name)
		if _, dup := catalog[key]; dup {
			panic("optimizers: duplicate registration of " + e.name)
		}
		catalog[key] = e
	}
}

// Names returns the canonical identifiers of every registered optimizer,
// sorted.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for _, e := range catalog {
		out = append(out, e.name)
	}
	sort.Strings(out)
	return out
}

// Namespaces returns the accepted expression prefixes, sorted.
func Namespaces() []string {
	out := []string{NamespaceKeras, NamespaceKerasShort, NamespaceTF, NamespaceAddons}
	sort.Strings(out)
	return out
}

// Defaults returns the default hyperparameters of the named optimizer.
func Defaults(name string) (map[string]float64, bool) {
	e, ok := catalog[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return copyHyper(e.defaults), true
}

func (e entry) provides(namespace string) bool {
	for _, ns := range e.namespaces {
		if ns == namespace {
			return true
		}
	}
	return false
}

func copyHyper(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
