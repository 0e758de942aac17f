// Package executors provides host-side implementations of the
// foreground/background scheduling pair the authenticator consumes.
// Hosts with a real UI message loop should adapt that loop instead;
// these implementations cover headless hosts and tests.
package executors

import (
	"sync"

	"github.com/goliatone/go-msauth/core"
)

const defaultQueueSize = 64

// Pair runs background tasks on fresh goroutines and funnels foreground
// deliveries through one serial loop, so callbacks redeliver off the
// caller's goroutine in submission order.
type Pair struct {
	mu     sync.Mutex
	queue  chan func()
	closed bool
	done   chan struct{}
}

func NewPair(queueSize int) *Pair {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	p := &Pair{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Pair) loop() {
	defer close(p.done)
	for task := range p.queue {
		runTask(task)
	}
}

func (p *Pair) PerformOnBackground(task func()) {
	if p == nil || task == nil {
		return
	}
	go runTask(task)
}

// PerformOnForeground enqueues the task on the serial loop. Tasks
// submitted after Close are dropped.
func (p *Pair) PerformOnForeground(task func()) {
	if p == nil || task == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.queue <- task
}

// Close stops the foreground loop after draining already-queued tasks.
// Safe to call more than once.
func (p *Pair) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
}

// runTask isolates panics so one misbehaving callback cannot take down
// the foreground loop or the host goroutine.
func runTask(task func()) {
	defer func() {
		_ = recover()
	}()
	task()
}

// Immediate runs both background and foreground tasks inline on the
// calling goroutine. Intended for tests and hosts without threading
// requirements; it does not honor the "never on the caller's goroutine"
// redelivery guarantee of Pair.
type Immediate struct{}

func (Immediate) PerformOnBackground(task func()) {
	if task != nil {
		task()
	}
}

func (Immediate) PerformOnForeground(task func()) {
	if task != nil {
		task()
	}
}

var (
	_ core.Executors = (*Pair)(nil)
	_ core.Executors = Immediate{}
)
