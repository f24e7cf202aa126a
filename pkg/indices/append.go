package indices

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"caney/pkg/raster"
)

// AddIndices appends to r every band in outputBands that is not already one
// of inputBands, computing it with the registered index function of the same
// name.
//
// Both band lists are lower-cased. inputBands relabels the raster and must
// have one entry per band. Missing bands are appended in outputBands order;
// the k-th appended band gets coordinate len(inputBands)+k. Bands already
// present are skipped, so calling AddIndices again with the returned
// raster's names and the same outputBands appends nothing.
//
// The input raster is not modified; the augmented raster is returned.
func AddIndices(r *raster.Raster, inputBands, outputBands []string) (*raster.Raster, error) {
	return AddIndicesContext(context.Background(), r, inputBands, outputBands, 1)
}

// AddIndicesContext behaves like AddIndices but computes up to workers
// missing indices concurrently. Results are appended in outputBands order,
// so names, coordinates and the reported error match the sequential result.
func AddIndicesContext(ctx context.Context, r *raster.Raster, inputBands, outputBands []string, workers int) (*raster.Raster, error) {
	input := raster.Normalize(inputBands)
	output := raster.Normalize(outputBands)

	labelled, err := r.WithNames(input)
	if err != nil {
		return nil, fmt.Errorf("failed to label raster bands: %w", err)
	}

	missing := missingBands(input, output)
	if len(missing) == 0 {
		return labelled, nil
	}

	if workers < 1 {
		workers = 1
	}

	// errs[i] holds the failure of missing[i]; the first one in output
	// order is reported.
	computed := make([]*mat.Dense, len(missing))
	errs := make([]error, len(missing))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, name := range missing {
		i, name := i, name
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			computed[i], errs[i] = compute(labelled, name)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	nBands := len(input)
	augmented := labelled
	for i, name := range missing {
		nBands++
		augmented, err = augmented.Append(name, nBands, computed[i])
		if err != nil {
			return nil, fmt.Errorf("failed to append %s: %w", name, err)
		}
		slog.Debug("appended index band", "index", name, "coord", nBands)
	}
	return augmented, nil
}

// compute dispatches name through the registry and evaluates it on r.
func compute(r *raster.Raster, name string) (*mat.Dense, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	band, err := f(r)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s: %w", name, err)
	}
	return band, nil
}

// missingBands returns the output bands absent from input, in output order
// and without duplicates.
func missingBands(input, output []string) []string {
	present := make(map[string]bool, len(input)+len(output))
	for _, b := range input {
		present[b] = true
	}

	var missing []string
	for _, b := range output {
		if present[b] {
			continue
		}
		present[b] = true
		missing = append(missing, b)
	}
	return missing
}
