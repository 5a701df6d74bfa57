// Package store is the remote store contract used by the content
// synchronizer, with a gRPC implementation talking to blogd.
package store

import (
	"context"

	"github.com/dmitrijs2005/blogsync/internal/client/session"
	"github.com/dmitrijs2005/blogsync/internal/models"
)

// Auth is the identity provider. Every successful SignUp, SignIn and SignOut,
// and every transparent token refresh, is published to subscribers.
type Auth interface {
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	// CurrentSession returns nil, nil when nobody is signed in.
	CurrentSession(ctx context.Context) (*models.Session, error)
	Subscribe() *session.Subscription
}

// Posts is the posts relation. UpdatePost and DeletePost match on id and
// author id; zero matched rows is common.ErrNotFoundOrForbidden.
type Posts interface {
	ListPosts(ctx context.Context, q models.PostQuery) ([]*models.PostRecord, error)
	CountPosts(ctx context.Context, q models.PostQuery) (int, error)
	InsertPost(ctx context.Context, p *models.PostRecord) (*models.PostRecord, error)
	UpdatePost(ctx context.Context, id, authorID string, patch models.PostPatch) (*models.PostRecord, error)
	DeletePost(ctx context.Context, id, authorID string) error
}

type Categories interface {
	ListCategories(ctx context.Context) ([]*models.CategoryRecord, error)
}

// Profiles is the profiles relation. GetProfile returns common.ErrNotFound
// when the identity has no profile yet.
type Profiles interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, id string, u models.ProfileUpdate) (*models.Profile, error)
}

type Media interface {
	CreateImageUpload(ctx context.Context, filename, contentType string) (*models.ImageUpload, error)
}

type Client interface {
	Auth
	Posts
	Categories
	Profiles
	Media
	Close() error
}
