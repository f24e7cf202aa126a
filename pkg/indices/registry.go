package indices

import (
	"sort"
	"strings"
)

// Index describes a registered spectral index.
type Index struct {
	// Name is the lower-cased registry key, also used as the band name of
	// the derived band.
	Name string
	// Description is the long name of the index.
	Description string
	// Formula is a human readable rendering of the computation.
	Formula string
	// Bands lists the input bands the formula reads.
	Bands []string
	// Compute derives the band.
	Compute Func
}

var catalog = []Index{
	{"bai", "Burn Area Index", "1 / ((0.1 - red)^2 + (0.06 - nir1)^2)", []string{"red", "nir1"}, BAI},
	{"cig", "Chlorophyll Index - Green", "nir1 / green - 1", []string{"nir1", "green"}, CIG},
	{"cire", "Chlorophyll Index - Red-Edge", "nir1 / rededge - 1 (red without rededge)", []string{"nir1", "rededge|red"}, CIRE},
	{"cm", "Clay Minerals", "swir1 / swir2", []string{"swir1", "swir2"}, CM},
	{"cs1", "Cloud Detection Index 1", "3 * nir1 / (blue + green + red)", []string{"nir1", "red", "blue", "green"}, CS1},
	{"cs2", "Cloud Detection Index 2", "(blue + green + red + nir1) / 4", []string{"nir1", "red", "blue", "green"}, CS2},
	{"dvi", "Difference Vegetation Index", "nir1 - red", []string{"nir1", "red"}, DVI},
	{"dwi", "Difference Water Index", "green - nir1", []string{"green", "nir1"}, DWI},
	{"evi", "Enhanced Vegetation Index", "2.5 * (nir1 - red) / (nir1 + 6 * red - 7.5 * blue + 1)", []string{"red", "blue", "nir1"}, EVI},
	{"fdi", "Forest Discrimination Index", "nir2 - (rededge + blue), or nir1 - (red + blue)", []string{"blue", "nir2|nir1", "rededge|red"}, FDI},
	{"gndvi", "Green Normalized Difference Vegetation Index", "(nir1 - green) / (nir1 + green)", []string{"nir1", "green"}, GNDVI},
	{"ndvi", "Normalized Difference Vegetation Index", "(nir1 - red) / (nir1 + red)", []string{"nir1", "red"}, NDVI},
	{"ndwi", "Normalized Difference Water Index", "(green - nir1) / (green + nir1)", []string{"green", "nir1"}, NDWI},
	{"si", "Shadow Index", "(blue - green / red) ** (1/3)", []string{"red", "blue", "green"}, SI},
	{"sr", "Simple Ratio", "nir1 / red", []string{"nir1", "red"}, SR},
}

// registry maps a lower-cased index name to its entry. It is built once and
// never modified.
var registry = func() map[string]Index {
	m := make(map[string]Index, len(catalog))
	for _, idx := range catalog {
		m[idx.Name] = idx
	}
	return m
}()

// Lookup returns the index function registered under name. The key is
// matched case-insensitively.
func Lookup(name string) (Func, error) {
	idx, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, &InvalidMappingError{Key: name}
	}
	return idx.Compute, nil
}

// Get returns the registry entry for name.
func Get(name string) (Index, bool) {
	idx, ok := registry[strings.ToLower(name)]
	if ok {
		idx.Bands = append([]string(nil), idx.Bands...)
	}
	return idx, ok
}

// IsRegistered reports whether name is a registered index.
func IsRegistered(name string) bool {
	_, ok := registry[strings.ToLower(name)]
	return ok
}

// Registered returns every registry entry sorted by name.
func Registered() []Index {
	out := make([]Index, 0, len(registry))
	for _, idx := range registry {
		idx.Bands = append([]string(nil), idx.Bands...)
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
