package fizz

import "golang.org/x/sync/errgroup"

// task splits data in one chunk per worker and calls fn on every element.
// fn receives the index of the element, so results can be written in place.
func task[T any](workersCount int, data []T, fn func(i int, data T)) {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	var g errgroup.Group
	g.SetLimit(workersCount)

	for start := 0; start < dataSize; start += chunkSize {
		end := min(start+chunkSize, dataSize)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
			return nil
		})
	}

	_ = g.Wait()
}
