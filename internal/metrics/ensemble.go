package metrics

import (
	"context"
	"sync"

	"github.com/san-kum/fraktale/internal/fractal"
)

// ProfileAll profiles every instance on its own goroutine. Results keep the
// order of insts. A cancelled ctx stops instances that have not started.
func ProfileAll(ctx context.Context, insts []fractal.Instance) ([]Profile, error) {
	results := make([]Profile, len(insts))
	errs := make([]error, len(insts))

	var wg sync.WaitGroup
	for i := range insts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			results[idx] = ProfileOf(insts[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// SeedSpread profiles p once per seed in [seedStart, seedStart+runs) and
// returns the final convergence value of each run.
func SeedSpread(ctx context.Context, p fractal.IteratedMapParams, runs int, seedStart int64) ([]float64, error) {
	insts := make([]fractal.Instance, 0, runs)
	for i := 0; i < runs; i++ {
		q := p
		q.Seed = seedStart + int64(i)
		inst, err := fractal.NewInstance(q, "", 0)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
	profiles, err := ProfileAll(ctx, insts)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(profiles))
	for i, pr := range profiles {
		values[i] = pr.Value
	}
	return values, nil
}
