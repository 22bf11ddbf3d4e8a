package harness

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/moregh/cpu8/pkg/asm"
	"github.com/moregh/cpu8/pkg/cpu"
)

const defaultMemKB = cpu.MinMemKB

// Pool runs Jobs across a fixed number of worker goroutines, each building
// its own *cpu.Engine so no Engine is ever touched from more than one
// goroutine.
type Pool struct {
	NumWorkers int
	Report     *Report

	completed atomic.Int64
}

// NewPool returns a Pool with numWorkers goroutines (GOMAXPROCS-worth when
// numWorkers <= 0).
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		NumWorkers: numWorkers,
		Report:     NewReport(),
	}
}

// Run distributes jobs across the pool's workers and blocks until every job
// has reported a Result.
func (p *Pool) Run(jobs []Job) *Report {
	ch := make(chan Job, len(jobs))
	for _, j := range jobs {
		ch <- j
	}
	close(ch)

	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range ch {
				p.Report.Add(runJob(job))
				p.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	return p.Report
}

// Completed reports how many jobs this pool has finished so far.
func (p *Pool) Completed() int64 {
	return p.completed.Load()
}

// runJob builds a fresh Engine for job, assembles its source, and runs it
// to halt or MaxTicks, comparing the final state against the job's
// expectations.
func runJob(job Job) Result {
	code, _, err := asm.Compile(job.Source)
	if err != nil {
		return Result{Name: job.Name, Passed: false, Reason: "compile error", Err: err}
	}

	memKB := job.MemSizeKB
	if memKB <= 0 {
		memKB = defaultMemKB
	}
	engine, err := cpu.NewEngine(memKB, nil)
	if err != nil {
		return Result{Name: job.Name, Passed: false, Reason: "engine init error", Err: err}
	}
	if err := engine.LoadData(code, 0); err != nil {
		return Result{Name: job.Name, Passed: false, Reason: "load error", Err: err}
	}

	maxTicks := job.MaxTicks
	if maxTicks == 0 {
		maxTicks = 1 << 20
	}
	for !engine.Halted() && engine.Ticks < maxTicks {
		if err := engine.Tick(); err != nil {
			return Result{Name: job.Name, Passed: false, Reason: "tick error", Err: err, Ticks: engine.Ticks}
		}
	}
	if !engine.Halted() {
		return Result{
			Name:   job.Name,
			Passed: false,
			Reason: fmt.Sprintf("did not halt within %d ticks", maxTicks),
			Ticks:  engine.Ticks,
		}
	}

	if job.CheckRegisters && engine.Reg != job.ExpectedRegisters {
		return Result{
			Name:   job.Name,
			Passed: false,
			Reason: fmt.Sprintf("registers = %+v, want %+v", engine.Reg, job.ExpectedRegisters),
			Ticks:  engine.Ticks,
		}
	}
	if job.CheckFlags && engine.Flags != job.ExpectedFlags {
		return Result{
			Name:   job.Name,
			Passed: false,
			Reason: fmt.Sprintf("flags = %+v, want %+v", engine.Flags, job.ExpectedFlags),
			Ticks:  engine.Ticks,
		}
	}

	return Result{Name: job.Name, Passed: true, Ticks: engine.Ticks}
}

// Run is a convenience wrapper that builds a Pool of numWorkers and runs
// jobs through it in one call.
func Run(jobs []Job, numWorkers int) *Report {
	return NewPool(numWorkers).Run(jobs)
}
