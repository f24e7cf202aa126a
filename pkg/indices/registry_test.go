package indices

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	expected := map[string]Func{
		"bai": BAI, "cig": CIG, "cire": CIRE, "cm": CM, "cs1": CS1,
		"cs2": CS2, "dvi": DVI, "dwi": DWI, "evi": EVI, "fdi": FDI,
		"gndvi": GNDVI, "ndvi": NDVI, "ndwi": NDWI, "si": SI, "sr": SR,
	}

	for name, want := range expected {
		t.Run(name, func(t *testing.T) {
			got, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, reflect.ValueOf(want).Pointer(), reflect.ValueOf(got).Pointer())
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	got, err := Lookup("NDVI")
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(NDVI).Pointer(), reflect.ValueOf(got).Pointer())
}

func TestLookup_Invalid(t *testing.T) {
	for _, key := range []string{"nvdi", "", "ndvi2", "savi"} {
		_, err := Lookup(key)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidMapping)

		var im *InvalidMappingError
		require.True(t, errors.As(err, &im))
		assert.Equal(t, key, im.Key)
		assert.Contains(t, err.Error(), "invalid indices mapping: "+key)
	}
}

func TestRegistered(t *testing.T) {
	entries := Registered()
	require.Len(t, entries, 15)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		assert.NotEmpty(t, e.Formula, e.Name)
		assert.NotEmpty(t, e.Bands, e.Name)
		assert.NotNil(t, e.Compute, e.Name)
	}
	assert.Equal(t, []string{
		"bai", "cig", "cire", "cm", "cs1", "cs2", "dvi", "dwi",
		"evi", "fdi", "gndvi", "ndvi", "ndwi", "si", "sr",
	}, names)

	// mutating the returned entries does not leak into the registry
	entries[0].Bands[0] = "changed"
	idx, ok := Get("bai")
	require.True(t, ok)
	assert.Equal(t, "red", idx.Bands[0])
}

func TestIsRegistered(t *testing.T) {
	assert.True(t, IsRegistered("evi"))
	assert.True(t, IsRegistered("Gndvi"))
	assert.False(t, IsRegistered("nir1"))
}
