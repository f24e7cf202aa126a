package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caney/pkg/indices"
	"caney/pkg/raster"
)

func TestIndicesList(t *testing.T) {
	out, _, err := runRoot(t, "indices", "list")
	require.NoError(t, err)

	rows := parseTable(t, out)
	assert.Len(t, rows, len(indices.Registered()))
	for _, idx := range indices.Registered() {
		assert.Contains(t, rows, idx.Name)
	}
	assert.Contains(t, out, "Normalized Difference Vegetation Index")
}

func TestIndicesEval_NDVI(t *testing.T) {
	out, _, err := runRoot(t, "indices", "eval",
		"--input-bands", "Red,NIR1", "--output-bands", "red,nir1,ndvi", "0.1", "0.3")
	require.NoError(t, err)

	rows := parseTable(t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows["red"][0])
	assert.Equal(t, "2", rows["nir1"][0])
	assert.Equal(t, "3", rows["ndvi"][0])
	assert.InDelta(t, 0.5, parseFloat(t, rows["ndvi"][1]), 1e-12)
	assert.InDelta(t, 0.3, parseFloat(t, rows["nir1"][1]), 1e-12)
}

func TestIndicesEval_ConcurrentWorkers(t *testing.T) {
	out, _, err := runRoot(t, "indices", "eval", "--workers", "4",
		"--input-bands", "blue,green,red,nir1",
		"--output-bands", "sr,dvi,cs2,gndvi",
		"0.1", "0.2", "0.2", "0.6")
	require.NoError(t, err)

	rows := parseTable(t, out)
	assert.InDelta(t, 3.0, parseFloat(t, rows["sr"][1]), 1e-12)
	assert.InDelta(t, 0.4, parseFloat(t, rows["dvi"][1]), 1e-12)
	assert.InDelta(t, 0.275, parseFloat(t, rows["cs2"][1]), 1e-12)
	assert.InDelta(t, 0.5, parseFloat(t, rows["gndvi"][1]), 1e-12)
	assert.Equal(t, "5", rows["sr"][0])
	assert.Equal(t, "8", rows["gndvi"][0])
}

func TestIndicesEval_FromConfig(t *testing.T) {
	path := writeConfig(t, "data_dir: /srv/data\n"+
		"input_bands: [Red, NIR1]\n"+
		"output_bands: [NIR1, SR]\n"+
		"mean: [0.0, 1.0]\n"+
		"std: [1.0, 2.0]\n")

	out, _, err := runRoot(t, "indices", "eval", "--config", path, "0.2", "0.4")
	require.NoError(t, err)
	rows := parseTable(t, out)
	assert.InDelta(t, 2.0, parseFloat(t, rows["sr"][1]), 1e-12)

	out, _, err = runRoot(t, "indices", "eval", "--config", path, "--standardize", "0.2", "0.4")
	require.NoError(t, err)
	rows = parseTable(t, out)
	assert.InDelta(t, 0.4, parseFloat(t, rows["nir1"][1]), 1e-12)
	assert.InDelta(t, 0.5, parseFloat(t, rows["sr"][1]), 1e-12)
}

func TestIndicesEval_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		want    string
	}{
		{
			name: "value count",
			args: []string{"--input-bands", "red,nir1", "--output-bands", "ndvi", "0.1"},
			want: "1 values for 2 input bands",
		},
		{
			name: "not a number",
			args: []string{"--input-bands", "red,nir1", "--output-bands", "ndvi", "0.1", "high"},
			want: "high",
		},
		{
			name:    "unregistered index",
			args:    []string{"--input-bands", "red,nir1", "--output-bands", "ndxi", "0.1", "0.3"},
			wantErr: indices.ErrInvalidMapping,
			want:    "ndxi",
		},
		{
			name:    "missing source band",
			args:    []string{"--input-bands", "red,nir1", "--output-bands", "gndvi", "0.1", "0.3"},
			wantErr: raster.ErrBandNotFound,
			want:    "green",
		},
		{
			name:    "standardize without statistics",
			args:    []string{"--input-bands", "red,nir1", "--output-bands", "ndvi", "--standardize", "0.1", "0.3"},
			wantErr: raster.ErrNameCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runRoot(t, append([]string{"indices", "eval"}, tt.args...)...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
