// Package profiles stores the public profile attached to each identity.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/blogsync/internal/models"
)

type Repository interface {
	// Get returns common.ErrNotFound when id has no profile yet.
	Get(ctx context.Context, id string) (*models.Profile, error)
	// Upsert creates the profile on first use; nil fields of u keep the stored value.
	Upsert(ctx context.Context, id string, u models.ProfileUpdate) (*models.Profile, error)
}
