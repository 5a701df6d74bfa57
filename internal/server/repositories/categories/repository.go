// Package categories reads the fixed set of post categories.
package categories

import (
	"context"

	"github.com/dmitrijs2005/blogsync/internal/models"
)

type Repository interface {
	// List returns every category ordered by name.
	List(ctx context.Context) ([]*models.CategoryRecord, error)
}
