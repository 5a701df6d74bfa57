// Package refreshtokens declares storage for the opaque refresh tokens
// blogd issues alongside JWT access tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/server/models"
)

// Repository issues, looks up and revokes refresh tokens.
type Repository interface {
	// Create stores token for userID, expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrNotFound when the token is unknown or revoked.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
