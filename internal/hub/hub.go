// Package hub fans game snapshots out to every session attached to a game.
package hub

import (
	"log/slog"
	"sync"
)

const sendBuffer = 16

// Subscriber is one recipient of snapshot frames. The owning session drains
// Frames until the hub closes it.
type Subscriber struct {
	send      chan []byte
	closeOnce sync.Once
}

func NewSubscriber() *Subscriber {
	return &Subscriber{
		send: make(chan []byte, sendBuffer),
	}
}

// Frames is the channel the session write pump drains.
func (that *Subscriber) Frames() <-chan []byte {
	return that.send
}

func (that *Subscriber) close() {
	that.closeOnce.Do(func() {
		close(that.send)
	})
}

type room struct {
	subs    map[*Subscriber]struct{}
	version uint64
}

type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms map[string]*room
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "hub"),
		rooms:  make(map[string]*room),
	}
}

func (that *Hub) Subscribe(gameID string, sub *Subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[gameID]
	if !ok {
		r = &room{subs: make(map[*Subscriber]struct{})}
		that.rooms[gameID] = r
	}

	r.subs[sub] = struct{}{}
}

func (that *Hub) Unsubscribe(gameID string, sub *Subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[gameID]
	if !ok {
		return
	}

	if _, ok = r.subs[sub]; !ok {
		return
	}

	delete(r.subs, sub)
	sub.close()

	if len(r.subs) == 0 {
		delete(that.rooms, gameID)
	}
}

// Publish delivers frame to every subscriber of the game. Delivery per
// recipient is best-effort: a subscriber whose buffer is full is dropped
// instead of stalling the rest. Frames older than one already published for
// this game are discarded.
func (that *Hub) Publish(gameID string, version uint64, frame []byte) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[gameID]
	if !ok {
		return
	}

	if version <= r.version {
		that.logger.Debug("dropping stale snapshot", "gameID", gameID, "version", version)
		return
	}
	r.version = version

	for sub := range r.subs {
		select {
		case sub.send <- frame:
		default:
			that.logger.Warn("subscriber too slow, dropping it", "gameID", gameID)
			delete(r.subs, sub)
			sub.close()
		}
	}

	if len(r.subs) == 0 {
		delete(that.rooms, gameID)
	}
}
