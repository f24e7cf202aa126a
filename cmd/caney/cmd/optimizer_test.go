package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caney/pkg/optimizers"
)

func TestOptimizerList(t *testing.T) {
	out, _, err := runRoot(t, "optimizer", "list")
	require.NoError(t, err)

	for _, ns := range optimizers.Namespaces() {
		assert.Contains(t, out, ns)
	}
	for _, name := range optimizers.Names() {
		assert.Contains(t, out, name+" ")
	}
	assert.Contains(t, out, "weight_decay=0.004")
}

func TestOptimizerResolve(t *testing.T) {
	out, _, err := runRoot(t, "optimizer", "resolve", "tf.keras.optimizers.Adam(learning_rate=0.01)")
	require.NoError(t, err)
	assert.Equal(t, "Adam(beta_1=0.9, beta_2=0.999, epsilon=1e-07, learning_rate=0.01)", strings.TrimSpace(out))
}

func TestOptimizerResolve_JSON(t *testing.T) {
	out, _, err := runRoot(t, "optimizer", "resolve", "--json", "SGD(momentum=0.9)")
	require.NoError(t, err)

	var got struct {
		Name   string             `json:"name"`
		Config map[string]float64 `json:"config"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "SGD", got.Name)
	assert.Equal(t, 0.9, got.Config["momentum"])
	assert.Equal(t, 0.01, got.Config["learning_rate"])
}

func TestOptimizerResolve_Unresolved(t *testing.T) {
	_, _, err := runRoot(t, "optimizer", "resolve", "tf.keras.optimizers.Adamm")
	require.Error(t, err)
	assert.ErrorIs(t, err, optimizers.ErrUnresolved)
	assert.Contains(t, err.Error(), "Adamm")
}

func TestOptimizerResolve_RequiresExpression(t *testing.T) {
	_, _, err := runRoot(t, "optimizer", "resolve")
	require.Error(t, err)
}

func TestFormatHyper(t *testing.T) {
	assert.Equal(t, "a=1, b=0.5", formatHyper(map[string]float64{"b": 0.5, "a": 1}))
	assert.Equal(t, "", formatHyper(nil))
}
