// Package feed is the in-process change hub behind the live query streams:
// writers announce that a partition changed, subscribers re-query and push a
// fresh snapshot to their client.
package feed

import "sync"

// Partition names the hub fans out on. "items" plus one per ledger kind.
var Partitions = []string{"items", "incoming", "sale", "borrow", "return"}

// Hub fans partition-change signals out to subscribers. Signals are
// edge-triggered and coalesced: a slow subscriber sees at least one signal for
// any burst of changes, never a backlog.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan struct{}
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Publish signals every subscriber of the partition. Never blocks.
func (h *Hub) Publish(partition string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[partition] {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending signal
		}
	}
}

// Subscribe registers for a partition's change signals. The returned cancel
// func must be called when the subscriber goes away.
func (h *Hub) Subscribe(partition string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan struct{}, 1)
	if h.subs[partition] == nil {
		h.subs[partition] = make(map[int]chan struct{})
	}
	h.subs[partition][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[partition], id)
	}
	return ch, cancel
}

// ValidPartition reports whether p is a known stream.
func ValidPartition(p string) bool {
	for _, known := range Partitions {
		if p == known {
			return true
		}
	}
	return false
}
