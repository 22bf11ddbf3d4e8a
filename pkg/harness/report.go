package harness

import (
	"sort"
	"sync"
)

// Result is the outcome of one Job.
type Result struct {
	Name   string
	Passed bool
	Reason string
	Ticks  uint64
	Err    error
}

// Report collects Results from concurrent workers behind a mutex, mirroring
// a shared scoreboard that many goroutines append to but only the caller
// reads back once everyone is done.
type Report struct {
	mu      sync.Mutex
	results []Result
}

// NewReport returns an empty Report.
func NewReport() *Report {
	return &Report{}
}

// Add appends a Result.
func (r *Report) Add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

// Results returns a copy of all results, failures first.
func (r *Report) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	sortFailuresFirst(out)
	return out
}

// Len returns the number of recorded results.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

// Failed returns the number of failing results.
func (r *Report) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, res := range r.results {
		if !res.Passed {
			n++
		}
	}
	return n
}

func sortFailuresFirst(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return !results[i].Passed && results[j].Passed
	})
}
