package sim

import (
	"context"
	"sync"

	"github.com/san-kum/fieldsim/internal/field"
)

// Sweep runs one independent field per viewport concurrently. Each run gets
// its own loop and draw counter; results are in viewport order.
func (r *Runner) Sweep(ctx context.Context, rc RunConfig, viewports []field.Viewport) ([]*Result, error) {
	results := make([]*Result, len(viewports))
	errs := make([]error, len(viewports))

	var wg sync.WaitGroup
	for i, vp := range viewports {
		wg.Add(1)
		go func(idx int, vp field.Viewport) {
			defer wg.Done()

			rcCopy := rc
			rcCopy.Viewport = vp
			results[idx], errs[idx] = r.Run(ctx, rcCopy, nil)
		}(i, vp)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
