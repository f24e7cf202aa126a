// Package indices computes spectral indices over multiband rasters and
// appends them to a raster as extra bands.
//
// Every index reads its input bands by name from the raster's band-name
// metadata (blue, green, red, rededge, nir1, nir2, swir1, swir2) and
// evaluates a fixed formula per pixel. The registry maps each lower-cased
// index name to its function; AddIndices uses it to derive the bands an
// output band list asks for.
package indices
