package content

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogsync/internal/models"
	"golang.org/x/sync/errgroup"
)

// FetchCategories replaces the category cache. Each category's published
// post count is a separate store query; the queries run concurrently and
// any failure fails the whole refresh.
func (s *Synchronizer) FetchCategories(ctx context.Context) error {
	rows, err := s.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("fetch categories: %w", err)
	}

	counts := make([]int, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range rows {
		g.Go(func() error {
			n, err := s.store.CountPosts(gctx, models.PostQuery{Published: models.Bool(true), Category: c.Name})
			if err != nil {
				return fmt.Errorf("count posts in %s: %w", c.Name, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := make([]*models.Category, len(rows))
	for i, c := range rows {
		out[i] = &models.Category{Name: c.Name, Count: counts[i], Color: c.Color}
	}

	s.mu.Lock()
	s.categories = out
	s.mu.Unlock()
	return nil
}

// Categories returns the cached categories ordered by name.
func (s *Synchronizer) Categories() []*models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Category(nil), s.categories...)
}
