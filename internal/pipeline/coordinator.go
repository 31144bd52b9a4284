package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/logger"
)

// coordinator is the concrete implementation of the Coordinator interface.
// Stage goroutines and merge runs feed all of their outcomes into the owner,
// which is the only writer of observable state.
type coordinator struct {
	options Options
	deps    Deps
	owner   *stateOwner

	// gen increments per merge run; runs whose generation is no longer the
	// latest are superseded.
	gen atomic.Uint64

	mu           sync.Mutex
	inflight     *runHandle
	stageCancels map[int]context.CancelFunc
	nextStageID  int
	closed       bool
}

// runHandle identifies one in-flight merge run.
type runHandle struct {
	cancel context.CancelFunc
}

var _ Coordinator = (*coordinator)(nil)

// New creates a Coordinator and starts its owner goroutine.
func New(options Options, deps Deps) Coordinator {
	if options.ErrorLogSize <= 0 {
		options.ErrorLogSize = 32
	}

	return &coordinator{
		options:      options,
		deps:         deps,
		owner:        newStateOwner(options.ErrorLogSize),
		stageCancels: make(map[int]context.CancelFunc),
	}
}

func (c *coordinator) Results() []domain.Place {
	var out []domain.Place
	c.owner.call(func(s *ownerState) {
		out = s.results
	})

	return out
}

func (c *coordinator) Status() Status {
	var out Status
	c.owner.call(func(s *ownerState) {
		out = s.status
	})

	return out
}

func (c *coordinator) Errors() []Error {
	var out []Error
	c.owner.call(func(s *ownerState) {
		out = append(out, s.errors...)
	})

	return out
}

func (c *coordinator) WatchStatus() (<-chan Status, func()) {
	ch := make(chan Status, subscriberBuffer)
	var id int
	c.owner.call(func(s *ownerState) {
		id = s.nextSubID
		s.nextSubID++
		s.statusSubs[id] = ch
	})

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.owner.call(func(s *ownerState) {
				if sub, ok := s.statusSubs[id]; ok {
					delete(s.statusSubs, id)
					close(sub)
				}
			})
		})
	}

	return ch, cancel
}

func (c *coordinator) WatchResults() (<-chan []domain.Place, func()) {
	ch := make(chan []domain.Place, subscriberBuffer)
	var id int
	c.owner.call(func(s *ownerState) {
		id = s.nextSubID
		s.nextSubID++
		s.resultSubs[id] = ch
	})

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.owner.call(func(s *ownerState) {
				if sub, ok := s.resultSubs[id]; ok {
					delete(s.resultSubs, id)
					close(sub)
				}
			})
		})
	}

	return ch, cancel
}

// registerStage tracks a stage's cancel func so CancelAll can release its
// pending timers. The returned func unregisters the stage when it exits.
func (c *coordinator) registerStage(cancel context.CancelFunc) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextStageID
	c.nextStageID++
	c.stageCancels[id] = cancel

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.stageCancels, id)
	}
}

// beginGeneration claims the next run generation, superseding whatever run is
// currently in flight.
func (c *coordinator) beginGeneration(ctx context.Context) (uint64, context.Context, *runHandle) {
	gen := c.gen.Add(1)

	runCtx, cancel := context.WithTimeout(ctx, c.options.RunTimeout)
	handle := &runHandle{cancel: cancel}

	c.mu.Lock()
	prev := c.inflight
	c.inflight = handle
	c.mu.Unlock()

	if prev != nil {
		supersededRuns.Inc()
		prev.cancel()
	}

	return gen, runCtx, handle
}

func (c *coordinator) endGeneration(handle *runHandle) {
	c.mu.Lock()
	// only clear the slot if it still belongs to this run
	if c.inflight == handle {
		c.inflight = nil
	}
	c.mu.Unlock()
	handle.cancel()
}

func (c *coordinator) CancelAll() {
	c.mu.Lock()
	inflight := c.inflight
	c.inflight = nil
	stages := c.stageCancels
	c.stageCancels = make(map[int]context.CancelFunc)
	c.mu.Unlock()

	if inflight != nil {
		inflight.cancel()
	}
	for _, cancel := range stages {
		cancel()
	}

	// claim a generation for the cancel itself so a run that has not
	// observed its context cancellation yet can neither settle nor begin
	gen := c.gen.Add(1)
	c.owner.send(func(s *ownerState) {
		s.reset(gen)
	})
}

func (c *coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return
	}
	c.closed = true
	c.mu.Unlock()

	c.CancelAll()
	c.owner.close()
	logger.Debug(context.Background(), "pipeline coordinator closed")
}
