package session

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversToAllSubscribers(t *testing.T) {
	h := NewHub()
	a, b := h.Subscribe(), h.Subscribe()

	sess := &models.Session{UserID: "u1"}
	h.Publish(Event{Kind: KindSignedIn, Session: sess})

	for _, s := range []*Subscription{a, b} {
		e := <-s.C()
		assert.Equal(t, KindSignedIn, e.Kind)
		assert.Same(t, sess, e.Session)
	}
}

func TestPublish_KeepsOnlyNewestPending(t *testing.T) {
	h := NewHub()
	s := h.Subscribe()

	h.Publish(Event{Kind: KindSignedIn, Session: &models.Session{UserID: "u1"}})
	h.Publish(Event{Kind: KindRefreshed, Session: &models.Session{UserID: "u1", AccessToken: "new"}})
	h.Publish(Event{Kind: KindSignedOut})

	e := <-s.C()
	assert.Equal(t, KindSignedOut, e.Kind)
	assert.Nil(t, e.Session)

	select {
	case e := <-s.C():
		t.Fatalf("unexpected second event %+v", e)
	default:
	}
}

func TestUnsubscribe_ClosesChannelAndStopsDelivery(t *testing.T) {
	h := NewHub()
	s := h.Subscribe()
	s.Unsubscribe()
	s.Unsubscribe()

	h.Publish(Event{Kind: KindSignedIn})

	_, ok := <-s.C()
	assert.False(t, ok)
}

func TestClose_ClosesSubscribers(t *testing.T) {
	h := NewHub()
	s := h.Subscribe()
	h.Close()
	h.Close()

	_, ok := <-s.C()
	assert.False(t, ok)

	late := h.Subscribe()
	_, ok = <-late.C()
	assert.False(t, ok)
	late.Unsubscribe()
}

func TestPublish_ConcurrentWithUnsubscribe(t *testing.T) {
	h := NewHub()
	subs := make([]*Subscription, 20)
	for i := range subs {
		subs[i] = h.Subscribe()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			h.Publish(Event{Kind: KindRefreshed})
		}
	}()
	go func() {
		defer wg.Done()
		for _, s := range subs {
			s.Unsubscribe()
		}
	}()
	wg.Wait()

	for _, s := range subs {
		for range s.C() {
		}
	}
	require.Empty(t, h.subs)
}
