package extraction

import (
	"context"
	"log"
	"sync"

	"doccompare/types"
)

// WorkerCount bounds concurrent extractions
const WorkerCount = 4

// ExtractAll extracts every source using a worker pool. Documents come back
// in source order; the first error (by source order) is returned.
func (r *Registry) ExtractAll(ctx context.Context, sources []Source) ([]types.Document, error) {
	docs := make([]types.Document, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	jobs := make(chan int, len(sources))

	for w := 0; w < min(WorkerCount, len(sources)); w++ {
		go func(workerID int) {
			for i := range jobs {
				docs[i], errs[i] = r.Extract(ctx, sources[i])
				if errs[i] != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, sources[i].Name, errs[i])
				}
				wg.Done()
			}
		}(w)
	}

	for i := range sources {
		wg.Add(1)
		jobs <- i
	}
	wg.Wait()
	close(jobs)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}
