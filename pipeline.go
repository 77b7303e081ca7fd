package feather2d

import "sync"

// task runs fn on every item of data, split in contiguous chunks between at most
// workersCount goroutines. fn must only touch its own item.
func task[T any](workersCount int, data []T, fn func(item T)) {
	if len(data) == 0 {
		return
	}
	workersCount = max(1, min(workersCount, len(data)))
	if workersCount == 1 {
		for _, item := range data {
			fn(item)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (len(data) + workersCount - 1) / workersCount

	for start := 0; start < len(data); start += chunkSize {
		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, item := range chunk {
				fn(item)
			}
		}(data[start:min(start+chunkSize, len(data))])
	}
	wg.Wait()
}
