// Package config provides the hyperparameter schema of the CNN pipeline.
// It loads a YAML document, merges it over the default values and validates
// the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrSchemaMismatch is returned when a document cannot be merged into the
// schema: unknown keys, wrong value types or malformed YAML.
var ErrSchemaMismatch = errors.New("config: document does not match schema")

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the training and inference hyperparameters. A Config is
// built once by Load and is not modified afterwards.
type Config struct {
	// DataDir is the directory holding all data files. It has no default.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// InferenceSaveDir is where inference outputs are written.
	InferenceSaveDir string `yaml:"inference_save_dir" json:"inference_save_dir"`

	// ExperimentName and ExperimentType tag the experiment; the type is
	// normally embedded in inference outputs.
	ExperimentName string `yaml:"experiment_name" json:"experiment_name"`
	ExperimentType string `yaml:"experiment_type" json:"experiment_type"`

	// Seed controls randomization. Null disables seeding.
	Seed *int `yaml:"seed" json:"seed"`

	// GPUDevices is a comma separated device list.
	GPUDevices string `yaml:"gpu_devices" json:"gpu_devices"`

	MixedPrecision *bool `yaml:"mixed_precision" json:"mixed_precision"`
	XLA            *bool `yaml:"xla" json:"xla"`

	// InputBands are the bands of the incoming dataset, in band order.
	InputBands []string `yaml:"input_bands" json:"input_bands"`

	// OutputBands are the bands used to train and predict. Names that are
	// not input bands are derived as spectral indices.
	OutputBands []string `yaml:"output_bands" json:"output_bands"`

	// ModifyLabels holds label modification expressions, if any.
	ModifyLabels []string `yaml:"modify_labels" json:"modify_labels"`

	ExpandDims     bool    `yaml:"expand_dims" json:"expand_dims"`
	TileSize       int     `yaml:"tile_size" json:"tile_size"`
	IncludeClasses bool    `yaml:"include_classes" json:"include_classes"`
	Augment        bool    `yaml:"augment" json:"augment"`
	Standardize    bool    `yaml:"standardize" json:"standardize"`
	BatchSize      int     `yaml:"batch_size" json:"batch_size"`
	NClasses       int     `yaml:"n_classes" json:"n_classes"`
	TestSize       float64 `yaml:"test_size" json:"test_size"`

	// Mean and Std are per output band standardization values.
	Mean []float64 `yaml:"mean" json:"mean"`
	Std  []float64 `yaml:"std" json:"std"`

	// Loss names the loss function.
	Loss string `yaml:"loss" json:"loss"`

	// Optimizer is an optimizer expression such as
	// "tf.keras.optimizers.Adam(learning_rate=1e-4)".
	Optimizer string `yaml:"optimizer" json:"optimizer"`

	LearningRate float64 `yaml:"learning_rate" json:"learning_rate"`
	MaxEpochs    int     `yaml:"max_epochs" json:"max_epochs"`
	Patience     int     `yaml:"patience" json:"patience"`

	ModelFilename    string `yaml:"model_filename" json:"model_filename"`
	InferenceRegex   string `yaml:"inference_regex" json:"inference_regex"`
	WindowSize       int    `yaml:"window_size" json:"window_size"`
	InferenceOverlap int    `yaml:"inference_overlap" json:"inference_overlap"`

	// InferenceThreshold keeps the historical "treshold" key spelling.
	InferenceThreshold float64 `yaml:"inference_treshold" json:"inference_treshold"`
	PredBatchSize      int     `yaml:"pred_batch_size" json:"pred_batch_size"`
}

// DefaultConfig returns a configuration with default values. DataDir is
// left empty and must come from the document.
func DefaultConfig() Config {
	seed := 24
	mixedPrecision := true
	xla := false

	return Config{
		InferenceSaveDir: "results",
		ExperimentName:   "unet-cnn",
		ExperimentType:   "landcover",
		Seed:             &seed,
		GPUDevices:       "0,1,2,3",
		MixedPrecision:   &mixedPrecision,
		XLA:              &xla,
		InputBands:       []string{"Blue", "Green", "Red", "NIR1", "HOM1", "HOM2"},
		OutputBands:      []string{"Blue", "Green", "Red", "NIR1"},
		ModifyLabels:     nil,

		ExpandDims:     true,
		TileSize:       256,
		IncludeClasses: false,
		Augment:        true,
		Standardize:    true,
		BatchSize:      32,
		NClasses:       1,
		TestSize:       0.20,

		Mean: []float64{},
		Std:  []float64{},

		Loss:         "tversky",
		Optimizer:    "Adam",
		LearningRate: 0.0001,
		MaxEpochs:    6000,
		Patience:     7,

		ModelFilename:      "model.h5",
		InferenceRegex:     "*.tif",
		WindowSize:         8120,
		InferenceOverlap:   2,
		InferenceThreshold: 0.5,
		PredBatchSize:      128,
	}
}

// Load reads the YAML document at path, merges it over the defaults,
// applies CANEY_* environment overrides and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse merges a YAML document over the defaults. Keys present in the
// document replace the defaults, lists included; absent keys keep them.
// Unknown keys and type mismatches fail with ErrSchemaMismatch. Parse does
// not validate.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return cfg, nil
}

// Save writes cfg as a YAML document, creating the parent directory.
func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile writes the default configuration to path with
// dataDir filled in.
func CreateDefaultConfigFile(path, dataDir string) error {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir
	return Save(cfg, path)
}
