package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogsync/internal/models"
)

const (
	featuredLimit = 3
	recentLimit   = 5
)

func views(rows []*models.PostRecord) []*models.Post {
	out := make([]*models.Post, len(rows))
	for i, r := range rows {
		out[i] = r.View()
	}
	return out
}

// FetchPosts replaces the cache with the published posts, newest first.
// Overlapping calls are not coalesced; the last one to finish wins.
func (s *Synchronizer) FetchPosts(ctx context.Context) error {
	s.mu.Lock()
	s.fetching++
	s.mu.Unlock()

	rows, err := s.store.ListPosts(ctx, models.PostQuery{Published: models.Bool(true)})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching--
	s.fetched = true
	if err != nil {
		return fmt.Errorf("fetch posts: %w", err)
	}
	s.posts = views(rows)
	return nil
}

// clone copies p so callers cannot reach the cached post.
func clone(p *models.Post) *models.Post {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp
}

// snapshot returns the cached posts. The slice is shared; callers must not modify it.
func (s *Synchronizer) snapshot() []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts
}

func filter(posts []*models.Post, keep func(*models.Post) bool, limit int) []*models.Post {
	out := make([]*models.Post, 0)
	for _, p := range posts {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(p) {
			out = append(out, clone(p))
		}
	}
	return out
}

// Posts returns copies of the cached published posts, newest first.
func (s *Synchronizer) Posts() []*models.Post {
	return filter(s.snapshot(), func(*models.Post) bool { return true }, 0)
}

// GetPostByID looks id up in the cache only. It returns nil when absent.
func (s *Synchronizer) GetPostByID(id string) *models.Post {
	for _, p := range s.snapshot() {
		if p.ID == id {
			return clone(p)
		}
	}
	return nil
}

func (s *Synchronizer) GetPostsByCategory(name string) []*models.Post {
	return filter(s.snapshot(), func(p *models.Post) bool { return strings.EqualFold(p.Category, name) }, 0)
}

func (s *Synchronizer) GetFeaturedPosts() []*models.Post {
	return filter(s.snapshot(), func(p *models.Post) bool { return p.Featured }, featuredLimit)
}

func (s *Synchronizer) GetRecentPosts() []*models.Post {
	return filter(s.snapshot(), func(*models.Post) bool { return true }, recentLimit)
}

// GetUserPosts returns cached posts written by the signed-in identity,
// matched by email or by id. Older rows may only carry one of them.
func (s *Synchronizer) GetUserPosts() []*models.Post {
	sess := s.CurrentSession()
	if sess == nil {
		return []*models.Post{}
	}
	return filter(s.snapshot(), func(p *models.Post) bool {
		return p.Author == sess.Email || p.AuthorID == sess.UserID
	}, 0)
}

// FetchDashboardPosts lists the signed-in author's posts including drafts.
// The result is not cached.
func (s *Synchronizer) FetchDashboardPosts(ctx context.Context) ([]*models.Post, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListPosts(ctx, models.PostQuery{AuthorID: sess.UserID})
	if err != nil {
		return nil, err
	}
	return views(rows), nil
}

// CreatePost stores in as the signed-in identity, whatever author fields it carries.
func (s *Synchronizer) CreatePost(ctx context.Context, in models.PostInput) (*models.PostRecord, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	in.Author = sess.Email
	in.AuthorID = sess.UserID

	row, err := s.store.InsertPost(ctx, in.Record())
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return row, nil
}

// UpdatePost patches a post of the signed-in identity. Posts of others fail
// with common.ErrNotFoundOrForbidden, as do missing ones.
func (s *Synchronizer) UpdatePost(ctx context.Context, id string, patch models.PostPatch) (*models.PostRecord, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	row, err := s.store.UpdatePost(ctx, id, sess.UserID, patch)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return row, nil
}

func (s *Synchronizer) DeletePost(ctx context.Context, id string) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	if err := s.store.DeletePost(ctx, id, sess.UserID); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *Synchronizer) SetPublished(ctx context.Context, id string, published bool) (*models.PostRecord, error) {
	return s.UpdatePost(ctx, id, models.PostPatch{Published: &published})
}

func (s *Synchronizer) SetFeatured(ctx context.Context, id string, featured bool) (*models.PostRecord, error) {
	return s.UpdatePost(ctx, id, models.PostPatch{Featured: &featured})
}

// UploadPostImage uploads a cover image and returns the URL to store in
// PostInput.ImageURL.
func (s *Synchronizer) UploadPostImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if _, err := s.requireSession(); err != nil {
		return "", err
	}
	up, err := s.store.CreateImageUpload(ctx, filename, contentType)
	if err != nil {
		return "", err
	}
	if err := s.upload(ctx, up.UploadURL, contentType, data); err != nil {
		return "", fmt.Errorf("upload %s: %w", up.Key, err)
	}
	return up.PublicURL, nil
}
