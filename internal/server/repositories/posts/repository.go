// Package posts stores blog posts.
package posts

import (
	"context"

	"github.com/dmitrijs2005/blogsync/internal/models"
)

// Filter selects posts. ViewerID is the caller's user id ("" when anonymous);
// rows that are not published are only visible to their author.
type Filter struct {
	Query    models.PostQuery
	ViewerID string
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.PostRecord, error)
	Count(ctx context.Context, f Filter) (int, error)
	// Insert stores post and fills in its ID and CreatedAt.
	Insert(ctx context.Context, post *models.PostRecord) (*models.PostRecord, error)
	// Update and Delete only touch a row whose id and author_id both match;
	// otherwise they return common.ErrNotFoundOrForbidden.
	Update(ctx context.Context, id, authorID string, patch models.PostPatch) (*models.PostRecord, error)
	Delete(ctx context.Context, id, authorID string) error
}
