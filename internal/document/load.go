package document

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/staffplan/internal/model"
)

// Loaded is one proposal file read by LoadDir.
type Loaded struct {
	Path     string
	Proposal model.Proposal
	Err      error
}

// LoadResult holds the output of LoadDir, in the order Scan found the files.
type LoadResult struct {
	Files      []Loaded
	TotalFiles int
	FileErrors int
}

// Proposals returns the proposals that parsed.
func (r *LoadResult) Proposals() []Loaded {
	out := make([]Loaded, 0, len(r.Files)-r.FileErrors)
	for _, f := range r.Files {
		if f.Err == nil {
			out = append(out, f)
		}
	}
	return out
}

// ProgressFunc is called during loading to report progress.
type ProgressFunc func(current, total int)

// LoadDir discovers and parses every proposal file under dir using a
// bounded worker pool.
func LoadDir(dir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	result.Files = make([]Loaded, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				p, err := ReadFile(files[idx])
				result.Files[idx] = Loaded{Path: files[idx], Proposal: p, Err: err}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}
	wg.Wait()

	for _, f := range result.Files {
		if f.Err != nil {
			result.FileErrors++
		}
	}
	return result, nil
}
