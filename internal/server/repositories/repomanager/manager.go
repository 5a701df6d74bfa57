package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/blogsync/internal/dbx"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/categories"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a pool or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Posts(db dbx.DBTX) posts.Repository
	Categories(db dbx.DBTX) categories.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
