// Package workerpool runs tasks on a bounded number of goroutines.
//
//	pool := workerpool.New(8)
//	for _, p := range paths {
//	    p := p
//	    _ = pool.Submit(ctx, func(ctx context.Context) error {
//	        return disk.Delete(ctx, p)
//	    })
//	}
//	err := pool.Close() // waits, joins every task error
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolFull is returned by TrySubmit when every worker is busy and the
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit and TrySubmit after Close.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Task is a unit of work. Its error is collected and returned by Close.
type Task func(ctx context.Context) error

type job struct {
	ctx  context.Context
	task Task
}

// Pool is a bounded goroutine pool.
type Pool struct {
	jobs    chan job
	wg      sync.WaitGroup
	once    sync.Once
	closeMu sync.RWMutex
	closed  bool

	errMu sync.Mutex
	errs  []error
}

// New starts size workers; size below 1 is treated as 1. The queue holds
// twice the worker count.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{jobs: make(chan job, size*2)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

// Submit queues task, blocking until there is room or ctx is done.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job{ctx: ctx, task: task}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues task without blocking.
func (p *Pool) TrySubmit(ctx context.Context, task Task) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job{ctx: ctx, task: task}:
		return nil
	default:
		return ErrPoolFull
	}
}

// Close stops accepting tasks, waits for queued ones and returns their
// joined errors. Calling it again returns the same result.
func (p *Pool) Close() error {
	p.once.Do(func() {
		p.closeMu.Lock()
		p.closed = true
		close(p.jobs)
		p.closeMu.Unlock()
		p.wg.Wait()
	})

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		if err := run(j); err != nil {
			p.errMu.Lock()
			p.errs = append(p.errs, err)
			p.errMu.Unlock()
		}
	}
}

// run executes one job, turning a panic into an error. Jobs whose context
// ended while queued are skipped.
func run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workerpool: task panicked: %v", r)
		}
	}()
	if err := j.ctx.Err(); err != nil {
		return err
	}
	return j.task(j.ctx)
}
