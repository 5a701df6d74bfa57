// Package content holds the client's view of the blog: the published posts,
// the categories with their post counts, the current session and its
// profile. Views read the caches through accessors and change them only
// through the mutation methods, each of which writes to the store and then
// re-fetches the affected caches wholesale.
package content

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/client/session"
	"github.com/dmitrijs2005/blogsync/internal/client/store"
	"github.com/dmitrijs2005/blogsync/internal/logging"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/dmitrijs2005/blogsync/internal/netx"
)

var ErrAlreadyStarted = errors.New("synchronizer already started")

type Synchronizer struct {
	store  store.Client
	logger logging.Logger
	now    func() time.Time
	upload func(ctx context.Context, url, contentType string, data []byte) error

	// mu guards the cache slots below. Each slot is replaced, never patched.
	mu         sync.RWMutex
	posts      []*models.Post
	categories []*models.Category
	session    *models.Session
	profile    *models.Profile
	fetching   int
	fetched    bool

	lifeMu  sync.Mutex
	started bool
	sub     *session.Subscription
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(c store.Client, l logging.Logger) *Synchronizer {
	return &Synchronizer{
		store:   c,
		logger:  l.With("module", "content"),
		now:     time.Now,
		upload:  netx.UploadToPresignedURL,
	}
}

// Start subscribes to session changes, restores the current session and
// loads every cache. Load failures are logged; the caches stay empty until
// the next successful fetch.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	s.sub = s.store.Subscribe()

	if err := s.syncSession(ctx); err != nil {
		s.logger.Error(ctx, "Error restoring session", "error", err)
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.watchSession(loopCtx)

	if err := s.FetchPosts(ctx); err != nil {
		s.logger.Error(ctx, "Error fetching posts", "error", err)
	}
	if err := s.FetchCategories(ctx); err != nil {
		s.logger.Error(ctx, "Error fetching categories", "error", err)
	}
	return nil
}

// Close stops watching session changes. The store is left open.
func (s *Synchronizer) Close() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if !s.started || s.done == nil {
		return
	}
	s.sub.Unsubscribe()
	s.cancel()
	<-s.done
	s.done = nil
}

func (s *Synchronizer) watchSession(ctx context.Context) {
	defer close(s.done)
	for e := range s.sub.C() {
		s.logger.Debug(ctx, "Session changed", "kind", string(e.Kind))
		if err := s.syncSession(ctx); err != nil {
			s.logger.Error(ctx, "Error applying session change", "error", err)
		}
	}
}

// Loading reports whether a post fetch is in flight, and is true before the first one.
func (s *Synchronizer) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.fetched || s.fetching > 0
}

// refresh re-fetches posts and categories after a successful write. The
// write itself has already succeeded, so failures are logged only.
func (s *Synchronizer) refresh(ctx context.Context) {
	if err := s.FetchPosts(ctx); err != nil {
		s.logger.Warn(ctx, "Error refreshing posts", "error", err)
	}
	if err := s.FetchCategories(ctx); err != nil {
		s.logger.Warn(ctx, "Error refreshing categories", "error", err)
	}
}
