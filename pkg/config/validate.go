package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Validate checks field ranges and the lengths of the standardization
// vectors. It does not check output_bands against n_classes.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir is required", ErrInvalid)
	}
	if len(c.InputBands) == 0 {
		return fmt.Errorf("%w: input_bands must not be empty", ErrInvalid)
	}
	if len(c.OutputBands) == 0 {
		return fmt.Errorf("%w: output_bands must not be empty", ErrInvalid)
	}

	positive := []struct {
		key   string
		value int
	}{
		{"tile_size", c.TileSize},
		{"batch_size", c.BatchSize},
		{"n_classes", c.NClasses},
		{"max_epochs", c.MaxEpochs},
		{"window_size", c.WindowSize},
		{"pred_batch_size", c.PredBatchSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.key, p.value)
		}
	}

	if c.Patience < 0 {
		return fmt.Errorf("%w: patience must be non-negative, got %d", ErrInvalid, c.Patience)
	}
	if c.InferenceOverlap < 0 {
		return fmt.Errorf("%w: inference_overlap must be non-negative, got %d", ErrInvalid, c.InferenceOverlap)
	}
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return fmt.Errorf("%w: test_size must be between 0 and 1, got %g", ErrInvalid, c.TestSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("%w: learning_rate must be positive, got %g", ErrInvalid, c.LearningRate)
	}
	if c.InferenceThreshold < 0 || c.InferenceThreshold > 1 {
		return fmt.Errorf("%w: inference_treshold must be between 0 and 1, got %g", ErrInvalid, c.InferenceThreshold)
	}

	if len(c.Mean) != len(c.Std) {
		return fmt.Errorf("%w: mean has %d values but std has %d", ErrInvalid, len(c.Mean), len(c.Std))
	}
	if len(c.Mean) > 0 && len(c.Mean) != len(c.OutputBands) {
		return fmt.Errorf("%w: mean and std need one value per output band (%d), got %d",
			ErrInvalid, len(c.OutputBands), len(c.Mean))
	}

	return nil
}

// applyEnvOverrides applies CANEY_* environment variable overrides.
// Malformed numeric values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CANEY_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("CANEY_INFERENCE_SAVE_DIR"); v != "" {
		c.InferenceSaveDir = v
	}
	if v := os.Getenv("CANEY_EXPERIMENT_NAME"); v != "" {
		c.ExperimentName = v
	}
	if v := os.Getenv("CANEY_GPU_DEVICES"); v != "" {
		c.GPUDevices = v
	}
	if v := os.Getenv("CANEY_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := os.Getenv("CANEY_LEARNING_RATE"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.LearningRate = f
		}
	}
}
