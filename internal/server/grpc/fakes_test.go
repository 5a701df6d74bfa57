package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/logging"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/dmitrijs2005/blogsync/internal/server/auth"
	sm "github.com/dmitrijs2005/blogsync/internal/server/models"
)

type fakeUsers struct {
	session *models.Session
	err     error
	user    *sm.User

	gotRefresh string
	gotUserID  string
}

func (f *fakeUsers) SignUp(context.Context, string, string) (*models.Session, error) {
	return f.session, f.err
}
func (f *fakeUsers) SignIn(context.Context, string, string) (*models.Session, error) {
	return f.session, f.err
}
func (f *fakeUsers) SignOut(_ context.Context, token string) error {
	f.gotRefresh = token
	return f.err
}
func (f *fakeUsers) Refresh(_ context.Context, token string) (*models.Session, error) {
	f.gotRefresh = token
	return f.session, f.err
}
func (f *fakeUsers) GetUser(_ context.Context, id string) (*sm.User, error) {
	f.gotUserID = id
	return f.user, f.err
}

type fakeContent struct {
	posts      []*models.PostRecord
	post       *models.PostRecord
	count      int
	categories []*models.CategoryRecord
	profile    *models.Profile
	err        error

	gotViewer   string
	gotAuthor   auth.Identity
	gotUserID   string
	gotID       string
	gotAuthorID string
	gotQuery    models.PostQuery
}

func (f *fakeContent) ListPosts(_ context.Context, viewerID string, q models.PostQuery) ([]*models.PostRecord, error) {
	f.gotViewer, f.gotQuery = viewerID, q
	return f.posts, f.err
}
func (f *fakeContent) CountPosts(_ context.Context, viewerID string, q models.PostQuery) (int, error) {
	f.gotViewer, f.gotQuery = viewerID, q
	return f.count, f.err
}
func (f *fakeContent) InsertPost(_ context.Context, author auth.Identity, p *models.PostRecord) (*models.PostRecord, error) {
	f.gotAuthor = author
	if f.err != nil {
		return nil, f.err
	}
	out := *p
	out.ID = "p1"
	out.AuthorID = author.UserID
	return &out, nil
}
func (f *fakeContent) UpdatePost(_ context.Context, userID, id, authorID string, _ models.PostPatch) (*models.PostRecord, error) {
	f.gotUserID, f.gotID, f.gotAuthorID = userID, id, authorID
	return f.post, f.err
}
func (f *fakeContent) DeletePost(_ context.Context, userID, id, authorID string) error {
	f.gotUserID, f.gotID, f.gotAuthorID = userID, id, authorID
	return f.err
}
func (f *fakeContent) ListCategories(context.Context) ([]*models.CategoryRecord, error) {
	return f.categories, f.err
}
func (f *fakeContent) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	f.gotID = id
	return f.profile, f.err
}
func (f *fakeContent) UpsertProfile(_ context.Context, userID, id string, _ models.ProfileUpdate) (*models.Profile, error) {
	f.gotUserID, f.gotID = userID, id
	return f.profile, f.err
}

type fakeMedia struct {
	upload    *models.ImageUpload
	err       error
	gotUserID string
}

func (f *fakeMedia) CreateImageUpload(_ context.Context, userID, _, _ string) (*models.ImageUpload, error) {
	f.gotUserID = userID
	return f.upload, f.err
}

const testSecret = "k"

func newServer(u *fakeUsers, c *fakeContent, m *fakeMedia) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Discard(), u, c, m, testSecret)
}

func token(t interface{ Fatalf(string, ...any) }, id auth.Identity, validity time.Duration) string {
	tok, _, err := auth.GenerateToken(id, []byte(testSecret), validity)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func withIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
