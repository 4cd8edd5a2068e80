// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////

// Package threadpool provides fixed-size worker pools with a fifo
// queue, delayed tasks and a pending counter. The data node runs
// distinct pools for control, read and write traffic so one class of
// blocking I/O cannot starve the others, and uses PendingNum for
// admission control on the write path.
package threadpool

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   *list.List
	pending atomic.Int64
	stopped atomic.Bool

	timerMu sync.Mutex
	timers  map[*time.Timer]struct{}

	workers sync.WaitGroup
}

func NewPool(threadNum int) *Pool {
	if threadNum <= 0 {
		threadNum = 1
	}
	p := &Pool{
		queue:  list.New(),
		timers: make(map[*time.Timer]struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	p.workers.Add(threadNum)
	for i := 0; i < threadNum; i++ {
		go p.workLoop()
	}
	return p
}

// AddTask enqueues fn for execution. Returns false after Stop.
func (p *Pool) AddTask(fn func()) bool {
	if p.stopped.Load() {
		return false
	}
	p.mu.Lock()
	p.queue.PushBack(fn)
	p.pending.Inc()
	p.mu.Unlock()
	p.cond.Signal()
	return true
}

// DelayTask schedules fn onto the pool after delay. The task does not
// count as pending until it is actually enqueued.
func (p *Pool) DelayTask(delay time.Duration, fn func()) {
	if p.stopped.Load() {
		return
	}
	p.timerMu.Lock()
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		p.timerMu.Lock()
		delete(p.timers, t)
		p.timerMu.Unlock()
		p.AddTask(fn)
	})
	p.timers[t] = struct{}{}
	p.timerMu.Unlock()
}

// PendingNum reports tasks queued but not yet picked up by a worker.
func (p *Pool) PendingNum() int64 {
	return p.pending.Load()
}

// Stop shuts the pool down. With wait true the queue is drained
// before workers exit; pending delayed tasks are dropped either way.
func (p *Pool) Stop(wait bool) {
	p.stopped.Store(true)
	p.timerMu.Lock()
	for t := range p.timers {
		t.Stop()
	}
	p.timers = map[*time.Timer]struct{}{}
	p.timerMu.Unlock()

	p.mu.Lock()
	if !wait {
		p.queue.Init()
		p.pending.Store(0)
	}
	p.mu.Unlock()
	p.cond.Broadcast()
	p.workers.Wait()
}

func (p *Pool) workLoop() {
	defer p.workers.Done()
	for {
		p.mu.Lock()
		for p.queue.Len() == 0 && !p.stopped.Load() {
			p.cond.Wait()
		}
		if p.queue.Len() == 0 && p.stopped.Load() {
			p.mu.Unlock()
			return
		}
		front := p.queue.Front()
		p.queue.Remove(front)
		p.pending.Dec()
		p.mu.Unlock()
		front.Value.(func())()
	}
}
