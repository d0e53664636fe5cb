// Package workpool runs collection tasks on a bounded set of workers.
// Submitted tasks queue until a worker frees up; each submission returns a
// Future the caller can wait on or cancel. Worker panics are converted into
// task errors rather than taking the process down.
package workpool

import (
	"context"
	"fmt"
	"sync"
)

// Task is one unit of collection work.
type Task func(ctx context.Context) (any, error)

// Result carries a finished task's output or error.
type Result struct {
	Data any
	Err  error
}

// Future is the handle for a submitted task.
type Future struct {
	out    chan Result
	cancel context.CancelFunc
}

// C returns the channel the task's single Result arrives on.
func (f *Future) C() <-chan Result {
	return f.out
}

// Stop cancels the task's context. The task still delivers a Result.
func (f *Future) Stop() {
	f.cancel()
}

type submission struct {
	task Task
	out  chan Result
	ctx  context.Context
}

// Pool dispatches tasks to a fixed number of workers.
type Pool struct {
	submissions chan submission
	rootCtx     context.Context
	rootCancel  context.CancelFunc
	wg          sync.WaitGroup
	once        sync.Once
}

// New starts a pool with size workers. Size is clamped to at least one.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		submissions: make(chan submission),
		rootCtx:     ctx,
		rootCancel:  cancel,
	}
	p.wg.Add(size)
	for range size {
		go p.worker()
	}
	return p
}

// Submit queues a task. If the pool is closing, the returned Future resolves
// immediately with context.Canceled. Safe to call concurrently with Close.
func (p *Pool) Submit(task Task) *Future {
	out := make(chan Result, 1)
	ctx, cancel := context.WithCancel(p.rootCtx)

	select {
	case p.submissions <- submission{task: task, out: out, ctx: ctx}:
	case <-p.rootCtx.Done():
		out <- Result{Err: context.Canceled}
	}

	return &Future{out: out, cancel: cancel}
}

// Close cancels in-flight task contexts and waits for the workers to drain.
// Safe to call more than once. The submissions channel is never closed;
// shutdown is signaled through the root context so a racing Submit cannot
// send on a closed channel.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.rootCancel()
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.rootCtx.Done():
			return
		case sub := <-p.submissions:
			sub.out <- p.run(sub)
		}
	}
}

func (p *Pool) run(sub submission) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = Result{Err: fmt.Errorf("task panicked: %v", rec)}
		}
	}()
	data, err := sub.task(sub.ctx)
	return Result{Data: data, Err: err}
}
