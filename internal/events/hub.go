package events

import (
	"strconv"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// DefaultBufferSize is the number of events queued per subscriber before it
// is considered slow and dropped.
const DefaultBufferSize = 16

// Subscription is one client's view of a film's feed. C is closed when the
// subscription ends, either by Unsubscribe or because the client fell behind.
type Subscription struct {
	ID     string
	FilmID string
	C      <-chan Event

	ch chan Event
}

// Hub routes events to the subscribers of the film they concern
type Hub struct {
	mu         sync.RWMutex
	streams    map[string]map[string]*Subscription // filmID -> subscription ID -> subscription
	bufferSize int
	nextID     uint64
	logger     hclog.Logger
}

// NewHub creates a hub; bufferSize <= 0 uses DefaultBufferSize
func NewHub(bufferSize int, logger hclog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		streams:    make(map[string]map[string]*Subscription),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Subscribe registers a new subscriber for filmID
func (h *Hub) Subscribe(filmID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan Event, h.bufferSize)
	sub := &Subscription{
		ID:     filmID + "/" + strconv.FormatUint(h.nextID, 10),
		FilmID: filmID,
		C:      ch,
		ch:     ch,
	}
	if h.streams[filmID] == nil {
		h.streams[filmID] = make(map[string]*Subscription)
	}
	h.streams[filmID][sub.ID] = sub
	return sub
}

// Unsubscribe removes sub and closes its channel. It is safe to call more
// than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

func (h *Hub) removeLocked(sub *Subscription) {
	subs, ok := h.streams[sub.FilmID]
	if !ok {
		return
	}
	if _, ok := subs[sub.ID]; !ok {
		return
	}
	delete(subs, sub.ID)
	close(sub.ch)
	if len(subs) == 0 {
		delete(h.streams, sub.FilmID)
	}
}

// Publish implements Publisher. It never blocks: a subscriber whose buffer
// is full is dropped.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.streams[event.FilmID] {
		select {
		case sub.ch <- event:
		default:
			h.logger.Warn("dropping slow subscriber", "subscription", sub.ID, "event", event.Type)
			h.removeLocked(sub)
		}
	}
}

// Subscribers returns the number of subscribers following filmID
func (h *Hub) Subscribers(filmID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[filmID])
}

// Close ends every subscription
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subs := range h.streams {
		for _, sub := range subs {
			h.removeLocked(sub)
		}
	}
}
