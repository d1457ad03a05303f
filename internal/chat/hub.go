package chat

import (
	"sync"

	"github.com/gangbro/missionboard/internal/bus"
)

const DefaultBuffer = 100

// Hub owns one bus per mission with live chat subscribers. A mission bus is
// created on first subscribe and dropped when its last subscriber leaves.
type Hub struct {
	mx     sync.Mutex
	buses  map[uint]*bus.Bus
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = DefaultBuffer
	}

	return &Hub{
		buses:  make(map[uint]*bus.Bus),
		buffer: buffer,
	}
}

func (h *Hub) Subscribe(missionID uint, name string) *bus.Subscription {
	h.mx.Lock()
	defer h.mx.Unlock()

	b, ok := h.buses[missionID]
	if !ok {
		b = h.newBus(missionID)
		h.buses[missionID] = b
	}

	return b.Subscribe(name)
}

func (h *Hub) newBus(missionID uint) *bus.Bus {
	var b *bus.Bus

	b = bus.New("chat", h.buffer, bus.OnIdle(func() {
		h.mx.Lock()
		defer h.mx.Unlock()

		if cur, ok := h.buses[missionID]; ok && cur == b && b.Subscribers() == 0 {
			delete(h.buses, missionID)
		}
	}))

	return b
}

// Publish is a no-op for missions nobody listens to.
func (h *Hub) Publish(missionID uint, e bus.Event) int {
	h.mx.Lock()
	b, ok := h.buses[missionID]
	h.mx.Unlock()

	if !ok {
		return 0
	}

	return b.Publish(e)
}

func (h *Hub) Channels() int {
	h.mx.Lock()
	defer h.mx.Unlock()

	return len(h.buses)
}
