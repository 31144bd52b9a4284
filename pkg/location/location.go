// Package location exposes the device/location feed consumed by the search
// pipeline: a push stream of coordinate updates plus the latest known point.
package location

import (
	"sync"

	"lunchradar/pkg/domain"
)

// subscriberBuffer bounds each subscriber channel. GPS updates are conflated
// downstream, so dropping under backpressure is acceptable.
const subscriberBuffer = 16

// Source is the abstraction over a device location feed. Updates may carry
// nil, meaning "no fix yet"; consumers are expected to drop those.
//
//go:generate mockgen -package mocklocation -source=location.go -destination=mock/mocklocation.go *
type Source interface {
	// Subscribe registers a new consumer and returns its update channel along
	// with an unsubscribe function. The channel is closed on unsubscribe.
	Subscribe() (<-chan *domain.LocationPoint, func())
	// Latest returns the freshest known point, or false when no fix has been
	// obtained yet.
	Latest() (domain.LocationPoint, bool)
}

// ManualSource is a Source fed by explicit Publish calls, e.g. from the HTTP
// surface where a client posts its coordinates. It is safe for concurrent use.
type ManualSource struct {
	mu        sync.Mutex
	latest    *domain.LocationPoint
	subs      map[int]chan *domain.LocationPoint
	nextSubID int
}

// NewManualSource creates an empty ManualSource with no known location.
func NewManualSource() *ManualSource {
	return &ManualSource{
		subs: make(map[int]chan *domain.LocationPoint),
	}
}

// Publish pushes a location update to all subscribers and, when non-nil,
// records it as the latest known point. Slow subscribers lose updates instead
// of blocking the publisher.
func (s *ManualSource) Publish(p *domain.LocationPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p != nil {
		cp := *p
		s.latest = &cp
	}

	for _, ch := range s.subs {
		select {
		case ch <- p:
		default:
		}
	}
}

// Subscribe implements Source.
func (s *ManualSource) Subscribe() (<-chan *domain.LocationPoint, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++

	ch := make(chan *domain.LocationPoint, subscriberBuffer)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// Latest implements Source.
func (s *ManualSource) Latest() (domain.LocationPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		return domain.LocationPoint{}, false
	}

	return *s.latest, true
}

// Ensure ManualSource conforms to Source at compile time.
var _ Source = (*ManualSource)(nil)
