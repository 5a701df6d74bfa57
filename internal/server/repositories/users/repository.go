// Package users persists blogd identities.
package users

import (
	"context"

	"github.com/dmitrijs2005/blogsync/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in its ID and CreatedAt.
	// A duplicate email yields common.ErrEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
