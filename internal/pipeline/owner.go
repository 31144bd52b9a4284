package pipeline

import (
	"lunchradar/pkg/domain"
)

// subscriberBuffer sizes watcher channels. Slow watchers miss intermediate
// values instead of blocking the owner.
const subscriberBuffer = 16

// ownerState is all mutable pipeline state. It is only ever touched by the
// owner goroutine, so none of it needs locking.
type ownerState struct {
	status  Status
	results []domain.Place
	errors  []Error

	activeGen  uint64
	highGen    uint64
	errorLimit int

	nextSubID  int
	statusSubs map[int]chan Status
	resultSubs map[int]chan []domain.Place
}

// stateOwner serializes every state mutation through a single goroutine.
// Callers interact with it by sending closures to the mailbox.
type stateOwner struct {
	mailbox chan func(*ownerState)
	done    chan struct{}
}

func newStateOwner(errorLimit int) *stateOwner {
	o := &stateOwner{
		mailbox: make(chan func(*ownerState)),
		done:    make(chan struct{}),
	}

	go o.loop(errorLimit)

	return o
}

func (o *stateOwner) loop(errorLimit int) {
	state := &ownerState{
		status:     Status{Kind: StatusIdle},
		errorLimit: errorLimit,
		statusSubs: make(map[int]chan Status),
		resultSubs: make(map[int]chan []domain.Place),
	}

	for {
		select {
		case fn := <-o.mailbox:
			fn(state)
		case <-o.done:
			for _, ch := range state.statusSubs {
				close(ch)
			}
			for _, ch := range state.resultSubs {
				close(ch)
			}

			return
		}
	}
}

// send queues a mutation without waiting for it to run.
func (o *stateOwner) send(fn func(*ownerState)) {
	select {
	case o.mailbox <- fn:
	case <-o.done:
	}
}

// call runs fn on the owner goroutine and waits for it to complete.
func (o *stateOwner) call(fn func(*ownerState)) {
	doneFn := make(chan struct{})
	o.send(func(s *ownerState) {
		fn(s)
		close(doneFn)
	})

	select {
	case <-doneFn:
	case <-o.done:
	}
}

func (o *stateOwner) close() {
	close(o.done)
}

func (s *ownerState) setStatus(status Status) {
	s.status = status
	for _, ch := range s.statusSubs {
		select {
		case ch <- status:
		default:
		}
	}
}

func (s *ownerState) publishResults(results []domain.Place) {
	s.results = results
	for _, ch := range s.resultSubs {
		select {
		case ch <- results:
		default:
		}
	}
}

func (s *ownerState) recordError(e Error) {
	s.errors = append([]Error{e}, s.errors...)
	if len(s.errors) > s.errorLimit {
		s.errors = s.errors[:s.errorLimit]
	}
}

// beginRun marks gen as the active run, clears stale errors and flips the
// status to loading. Generation claims and mailbox delivery are separate
// steps, so begins can arrive out of order; a begin at or below the high-water
// mark belongs to an already superseded run and must not re-activate it.
func (s *ownerState) beginRun(gen uint64) {
	if gen <= s.highGen {
		return
	}

	s.highGen = gen
	s.activeGen = gen
	s.errors = nil
	s.setStatus(Status{Kind: StatusLoading, Count: len(s.results)})
}

// settle publishes the outcome of a run. Outcomes from superseded runs are
// dropped so a slow old run can never overwrite a newer one.
func (s *ownerState) settle(gen uint64, results []domain.Place, failed bool, reason string) bool {
	if gen != s.activeGen {
		return false
	}

	s.publishResults(results)
	if failed {
		s.setStatus(Status{Kind: StatusFailed, Count: len(results), Reason: reason})
	} else {
		s.setStatus(Status{Kind: StatusSuccess, Count: len(results)})
	}

	return true
}

// settleUnavailable resolves a run that could not start to the last known
// result list, leaving it untouched.
func (s *ownerState) settleUnavailable(gen uint64, reason string) bool {
	if gen != s.activeGen {
		return false
	}

	s.setStatus(Status{Kind: StatusFailed, Count: len(s.results), Reason: reason})

	return true
}

// reset returns the pipeline to idle. Results are kept so a consumer does not
// lose its list when the user cancels. gen is the generation claimed by the
// cancel itself; raising the high-water mark to it shuts out begins from runs
// that claimed their generation before the cancel landed.
func (s *ownerState) reset(gen uint64) {
	s.activeGen = 0
	if gen > s.highGen {
		s.highGen = gen
	}
	s.errors = nil
	s.setStatus(Status{Kind: StatusIdle, Count: len(s.results)})
}
