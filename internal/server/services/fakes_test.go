package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/dbx"
	"github.com/dmitrijs2005/blogsync/internal/models"
	sm "github.com/dmitrijs2005/blogsync/internal/server/models"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/categories"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	created   *sm.User
	createErr error

	byEmail    *sm.User
	byEmailErr error
	byID       *sm.User
	byIDErr    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *sm.User) (*sm.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-new"
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*sm.User, error) {
	return f.byEmail, f.byEmailErr
}

func (f *fakeUsersRepo) GetByID(context.Context, string) (*sm.User, error) {
	return f.byID, f.byIDErr
}

type fakeRefreshRepo struct {
	findOut   *sm.RefreshToken
	findErr   error
	deleted   []string
	delErr    error
	created   []string
	createErr error
}

func (f *fakeRefreshRepo) Create(_ context.Context, _ string, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*sm.RefreshToken, error) {
	return f.findOut, f.findErr
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakePostsRepo struct {
	lastFilter posts.Filter
	listOut    []*models.PostRecord
	countOut   int
	inserted   *models.PostRecord
	updated    struct{ id, authorID string }
	updateErr  error
	deleted    struct{ id, authorID string }
	deleteErr  error
}

func (f *fakePostsRepo) List(_ context.Context, flt posts.Filter) ([]*models.PostRecord, error) {
	f.lastFilter = flt
	return f.listOut, nil
}

func (f *fakePostsRepo) Count(_ context.Context, flt posts.Filter) (int, error) {
	f.lastFilter = flt
	return f.countOut, nil
}

func (f *fakePostsRepo) Insert(_ context.Context, p *models.PostRecord) (*models.PostRecord, error) {
	f.inserted = p
	out := *p
	out.ID = "p-new"
	return &out, nil
}

func (f *fakePostsRepo) Update(_ context.Context, id, authorID string, patch models.PostPatch) (*models.PostRecord, error) {
	f.updated.id, f.updated.authorID = id, authorID
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	r := &models.PostRecord{ID: id, AuthorID: authorID}
	patch.Apply(r)
	return r, nil
}

func (f *fakePostsRepo) Delete(_ context.Context, id, authorID string) error {
	f.deleted.id, f.deleted.authorID = id, authorID
	return f.deleteErr
}

type fakeCategoriesRepo struct{ out []*models.CategoryRecord }

func (f *fakeCategoriesRepo) List(context.Context) ([]*models.CategoryRecord, error) { return f.out, nil }

type fakeProfilesRepo struct {
	stored map[string]*models.Profile
}

func (f *fakeProfilesRepo) Get(_ context.Context, id string) (*models.Profile, error) {
	if p, ok := f.stored[id]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeProfilesRepo) Upsert(_ context.Context, id string, u models.ProfileUpdate) (*models.Profile, error) {
	if f.stored == nil {
		f.stored = map[string]*models.Profile{}
	}
	p, ok := f.stored[id]
	if !ok {
		p = &models.Profile{ID: id}
		f.stored[id] = p
	}
	u.Apply(p)
	return p, nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	p  *fakePostsRepo
	c  *fakeCategoriesRepo
	pr *fakeProfilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                         { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository         { return m.r }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository                         { return m.p }
func (m *fakeRepoManager) Categories(dbx.DBTX) categories.Repository               { return m.c }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository                   { return m.pr }
