package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/client/memstore"
	"github.com/dmitrijs2005/blogsync/internal/client/store"
	"github.com/dmitrijs2005/blogsync/internal/logging"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// clock hands out strictly increasing times so created_at ordering is deterministic.
type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newStore(opts ...memstore.Option) *memstore.Store {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return memstore.New(append([]memstore.Option{memstore.WithClock(c.now)}, opts...)...)
}

func startWith(t *testing.T, c store.Client) *Synchronizer {
	t.Helper()
	s := New(c, logging.Discard())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		s.Close()
		_ = c.Close()
	})
	return s
}

func startSync(t *testing.T, opts ...memstore.Option) (*Synchronizer, *memstore.Store) {
	t.Helper()
	st := newStore(opts...)
	return startWith(t, st), st
}

func signUp(t *testing.T, s *Synchronizer, email string) *models.Session {
	t.Helper()
	sess, err := s.SignUp(context.Background(), email, "secret1")
	require.NoError(t, err)
	return sess
}

func input(title, category string, published bool) models.PostInput {
	return models.PostInput{Title: title, Content: "<p>" + title + "</p>", Category: category, Published: published}
}

func create(t *testing.T, s *Synchronizer, in models.PostInput) *models.PostRecord {
	t.Helper()
	row, err := s.CreatePost(context.Background(), in)
	require.NoError(t, err)
	return row
}

func ids(posts []*models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func countOf(s *Synchronizer, name string) int {
	for _, c := range s.Categories() {
		if c.Name == name {
			return c.Count
		}
	}
	return -1
}
