package bus

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const DefaultBuffer = 1024

var (
	publishedMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "missionboard",
		Subsystem: "bus",
		Name:      "events_published_total",
		Help:      "The total number of events published",
	}, []string{"bus", "type"})

	droppedMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "missionboard",
		Subsystem: "bus",
		Name:      "events_dropped_total",
		Help:      "Events dropped because a subscriber buffer was full",
	}, []string{"bus"})

	subscribersMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "missionboard",
		Subsystem: "bus",
		Name:      "subscribers",
		Help:      "The number of live subscriptions",
	}, []string{"bus"})
)

// Bus is an in-process broadcaster. Publish never blocks: a subscriber that
// falls behind loses its oldest unread events.
type Bus struct {
	name   string
	buffer int
	subs   sync.Map
	count  atomic.Int64
	onIdle func()
	logger *slog.Logger
}

type Option func(b *Bus)

// OnIdle registers fn to run each time the last subscription is closed.
func OnIdle(fn func()) Option {
	return func(b *Bus) {
		b.onIdle = fn
	}
}

func New(name string, buffer int, opts ...Option) *Bus {
	if buffer < 1 {
		buffer = DefaultBuffer
	}

	b := &Bus{
		name:   name,
		buffer: buffer,
		logger: slog.With("logger", "bus", "bus", name),
	}

	for _, o := range opts {
		o(b)
	}

	return b
}

func (b *Bus) Name() string {
	return b.name
}

func (b *Bus) Subscribers() int {
	return int(b.count.Load())
}

// Subscribe registers a new receiver. An empty name gets a random one.
func (b *Bus) Subscribe(name string) *Subscription {
	if name == "" {
		name = uuid.NewString()
	}

	s := &Subscription{
		name: name,
		bus:  b,
		ch:   make(chan Event, b.buffer),
	}

	if old, loaded := b.subs.Swap(name, s); loaded {
		old.(*Subscription).close(false)
	} else {
		b.count.Add(1)
		subscribersMetric.WithLabelValues(b.name).Inc()
	}

	return s
}

// Publish delivers e to every current subscriber and returns how many got it.
func (b *Bus) Publish(e Event) int {
	publishedMetric.WithLabelValues(b.name, string(e.Type)).Inc()

	n := 0

	b.subs.Range(func(_, value any) bool {
		s := value.(*Subscription)

		delivered, dropped := s.send(e)
		if dropped {
			droppedMetric.WithLabelValues(b.name).Inc()
			b.logger.Debug("subscriber lagging, oldest event dropped", slog.String("subscriber", s.name))
		}

		if delivered {
			n++
		}

		return true
	})

	return n
}

func (b *Bus) remove(s *Subscription) {
	if !b.subs.CompareAndDelete(s.name, s) {
		return
	}

	subscribersMetric.WithLabelValues(b.name).Dec()

	if b.count.Add(-1) == 0 && b.onIdle != nil {
		b.onIdle()
	}
}

type Subscription struct {
	name   string
	bus    *Bus
	mx     sync.Mutex
	ch     chan Event
	closed bool
}

func (s *Subscription) Name() string {
	return s.name
}

// C is closed when the subscription is closed.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Close detaches the subscription from the bus. It is safe to call more than once.
func (s *Subscription) Close() {
	s.close(true)
}

func (s *Subscription) close(detach bool) {
	s.mx.Lock()

	if s.closed {
		s.mx.Unlock()
		return
	}

	s.closed = true
	close(s.ch)
	s.mx.Unlock()

	if detach {
		s.bus.remove(s)
	}
}

func (s *Subscription) send(e Event) (delivered, dropped bool) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.closed {
		return false, false
	}

	for {
		select {
		case s.ch <- e:
			return true, dropped
		default:
		}

		select {
		case <-s.ch:
			dropped = true
		default:
		}
	}
}
