// Package session broadcasts session changes from a store to its observers.
//
// Each subscriber owns a one-slot channel. Publishing never blocks: when the
// subscriber has not consumed the previous event it is replaced with the new
// one, since a session is always replaced wholesale.
package session

import (
	"sync"

	"github.com/dmitrijs2005/blogsync/internal/models"
)

type Kind string

const (
	KindInitial   Kind = "initial_session"
	KindSignedIn  Kind = "signed_in"
	KindSignedOut Kind = "signed_out"
	KindRefreshed Kind = "token_refreshed"
)

// Event carries the session after the change. Session is nil after sign-out.
type Event struct {
	Kind    Kind
	Session *models.Session
}

type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

type Subscription struct {
	hub  *Hub
	ch   chan Event
	once sync.Once
}

// C delivers events. It is closed by Unsubscribe or when the hub closes.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Unsubscribe stops delivery and closes C. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if _, ok := s.hub.subs[s]; ok {
		delete(s.hub.subs, s)
		s.close()
	}
}

func (s *Subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// Subscribe registers a new observer. Subscribing to a closed hub returns a
// subscription whose channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{hub: h, ch: make(chan Event, 1)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		s.close()
		return s
	}
	h.subs[s] = struct{}{}
	return s
}

// Publish delivers e to every subscriber, dropping any event still pending.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for s := range h.subs {
		select {
		case s.ch <- e:
			continue
		default:
		}
		select {
		case <-s.ch:
		default:
		}
		s.ch <- e
	}
}

// Close unsubscribes everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		s.close()
	}
}
