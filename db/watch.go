package db

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const changesChannel = "wdi:changes"

// Hub fans collection-change notifications out to live subscriptions.
// Each subscriber re-runs its own filtered query and receives the full
// matching set, never deltas. With a Redis client attached, changes are
// bridged over pub/sub so subscriptions fire across processes.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[int]func()
	next int

	rdb    *redis.Client
	cancel context.CancelFunc
}

func NewHub(rdb *redis.Client) *Hub {
	h := &Hub{subs: map[string]map[int]func(){}, rdb: rdb}
	if rdb != nil {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancel = cancel
		go h.listen(ctx)
	}
	return h
}

func (h *Hub) Close() {
	if h.cancel != nil {
		h.cancel()
	}
}

// Subscribe registers a refresh callback for a collection and returns
// the unsubscribe handle.
func (h *Hub) Subscribe(collection string, refresh func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[collection] == nil {
		h.subs[collection] = map[int]func(){}
	}
	id := h.next
	h.next++
	h.subs[collection][id] = refresh
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[collection], id)
	}
}

// Changed announces that the named collections were written. With
// Redis attached the announcement goes through pub/sub and comes back
// via listen, so every process (this one included) dispatches once.
func (h *Hub) Changed(collections ...string) {
	if h.rdb != nil {
		ctx := context.Background()
		for _, c := range collections {
			if err := h.rdb.Publish(ctx, changesChannel, c).Err(); err != nil {
				log.Printf("watch: publish %s: %v", c, err)
				h.dispatch(c) // keep local liveness on redis failure
			}
		}
		return
	}
	for _, c := range collections {
		h.dispatch(c)
	}
}

func (h *Hub) dispatch(collection string) {
	h.mu.Lock()
	refreshers := make([]func(), 0, len(h.subs[collection]))
	for _, fn := range h.subs[collection] {
		refreshers = append(refreshers, fn)
	}
	h.mu.Unlock()
	for _, fn := range refreshers {
		go fn()
	}
}

func (h *Hub) listen(ctx context.Context) {
	sub := h.rdb.Subscribe(ctx, changesChannel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.dispatch(msg.Payload)
		}
	}
}
