package cli

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/blogsync/internal/client/config"
	"github.com/dmitrijs2005/blogsync/internal/client/localdb"
	"github.com/dmitrijs2005/blogsync/internal/client/memstore"
	"github.com/dmitrijs2005/blogsync/internal/client/store"
	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/logging"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedStore outlives a single Execute so state carries over between
// commands, the way blogd would keep it.
type sharedStore struct{ *memstore.Store }

func (sharedStore) Close() error { return nil }

func useStore(t *testing.T, opts ...memstore.Option) *memstore.Store {
	t.Helper()
	ms := memstore.New(opts...)
	orig := openStore
	openStore = func(*config.Config, *sql.DB, logging.Logger) (store.Client, error) {
		return sharedStore{ms}, nil
	}
	t.Cleanup(func() {
		openStore = orig
		_ = ms.Close()
	})
	return ms
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	base := []string{"--db", localdb.MemoryDSN, "--log-level", "error"}
	err := Execute(context.Background(), append(base, args...), strings.NewReader(stdin), &out, &errOut)
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	require.NoError(t, err, out)
	return out
}

func signedIn(t *testing.T, email string, opts ...memstore.Option) *memstore.Store {
	t.Helper()
	ms := useStore(t, opts...)
	stubPassword(t, "secret1")
	mustRun(t, "", "signup", "--email", email)
	return ms
}

func onlyPost(t *testing.T, ms *memstore.Store) *models.PostRecord {
	t.Helper()
	rows, err := ms.ListPosts(context.Background(), models.PostQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestAuthCommands(t *testing.T) {
	useStore(t)
	stubPassword(t, "secret1")

	out := mustRun(t, "", "signup", "-e", "alice@example.com")
	assert.Contains(t, out, "Signed up as alice@example.com")

	out = mustRun(t, "", "whoami")
	assert.Contains(t, out, "alice@example.com")

	mustRun(t, "", "logout")
	_, err := run(t, "", "whoami")
	assert.ErrorIs(t, err, common.ErrNotSignedIn)

	out = mustRun(t, "alice@example.com\n", "login")
	assert.Contains(t, out, "Email")
	assert.Contains(t, out, "Signed in as alice@example.com")
}

func TestLogin_WrongPassword(t *testing.T) {
	useStore(t)
	stubPassword(t, "secret1")
	mustRun(t, "", "signup", "-e", "alice@example.com")
	mustRun(t, "", "logout")

	stubPassword(t, "wrong-password")
	_, err := run(t, "", "login", "-e", "alice@example.com")
	assert.ErrorIs(t, err, common.ErrAuth)
}

func TestCreateAndRead(t *testing.T) {
	ms := signedIn(t, "alice@example.com")

	out := mustRun(t, "", "create", "--title", "Hello Go", "--category", "Development",
		"--content", "<p>hi</p>", "--tag", "go", "--tag", "go", "--publish", "--feature")
	assert.Contains(t, out, "Created published post")

	row := onlyPost(t, ms)
	assert.Equal(t, []string{"go"}, row.Tags)

	out = mustRun(t, "", "posts")
	assert.Contains(t, out, "Posts (1)")
	assert.Contains(t, out, "Hello Go")

	out = mustRun(t, "", "post", row.ID)
	assert.Contains(t, out, "Hello Go")
	assert.Contains(t, out, "Tags: go")
	assert.Contains(t, out, models.PlaceholderImageURL)

	assert.Contains(t, mustRun(t, "", "featured"), "Featured (1)")
	assert.Contains(t, mustRun(t, "", "recent"), "Recent (1)")
	assert.Contains(t, mustRun(t, "", "category", "development"), "Hello Go")
	assert.Contains(t, mustRun(t, "", "mine"), "My posts (1)")

	out = mustRun(t, "", "categories")
	assert.Regexp(t, `Development\s+1\s+bg-green-500`, out)
	assert.Regexp(t, `Design\s+0\s+bg-purple-500`, out)
}

func TestCreate_Interactive(t *testing.T) {
	ms := signedIn(t, "alice@example.com")

	stdin := "Draft title\nDesign\nline one\nline two\n\ngo\nsql\n\n"
	out := mustRun(t, stdin, "create")
	assert.Contains(t, out, "Created draft post")

	row := onlyPost(t, ms)
	assert.Equal(t, "Draft title", row.Title)
	assert.Equal(t, "line one\nline two", row.Content)
	assert.Equal(t, []string{"go", "sql"}, row.Tags)
	assert.False(t, row.Published)

	assert.Contains(t, mustRun(t, "", "posts"), "Posts (0)")
	out = mustRun(t, "", "drafts")
	assert.Contains(t, out, "Drafts (1)")
	assert.Contains(t, out, "draft")

	mustRun(t, "", "publish", row.ID)
	assert.Contains(t, mustRun(t, "", "drafts"), "Drafts (0)")
	assert.Contains(t, mustRun(t, "", "drafts", "--all"), "Dashboard (1)")
}

func TestCreate_RequiresSignIn(t *testing.T) {
	useStore(t)
	_, err := run(t, "", "create", "--title", "t", "--category", "Design", "--content", "c")
	assert.ErrorIs(t, err, common.ErrNotSignedIn)
}

func TestUpdateAndToggles(t *testing.T) {
	ms := signedIn(t, "alice@example.com")
	mustRun(t, "", "create", "--title", "Old", "--category", "Design", "--content", "c", "--publish")
	id := onlyPost(t, ms).ID

	mustRun(t, "", "update", id, "--title", "New", "--tag", "a", "--read-time", "9")
	row := onlyPost(t, ms)
	assert.Equal(t, "New", row.Title)
	assert.Equal(t, []string{"a"}, row.Tags)
	assert.Equal(t, 9, row.ReadTime)
	assert.Equal(t, "c", row.Content)

	_, err := run(t, "", "update", id)
	assert.ErrorContains(t, err, "nothing to update")

	_, err = run(t, "", "update", id, "--read-time=-3")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 9, onlyPost(t, ms).ReadTime)

	mustRun(t, "", "feature", id)
	assert.True(t, onlyPost(t, ms).Featured)
	mustRun(t, "", "unfeature", id)
	assert.False(t, onlyPost(t, ms).Featured)
	mustRun(t, "", "unpublish", id)
	assert.False(t, onlyPost(t, ms).Published)
}

func TestUpdate_OthersPostIsRejected(t *testing.T) {
	ms := signedIn(t, "alice@example.com")
	mustRun(t, "", "create", "--title", "Mine", "--category", "Design", "--content", "c", "--publish")
	id := onlyPost(t, ms).ID

	mustRun(t, "", "signup", "-e", "bob@example.com")
	_, err := run(t, "", "update", id, "--title", "Hijacked")
	assert.ErrorIs(t, err, common.ErrNotFoundOrForbidden)
	_, err = run(t, "", "delete", "-y", id)
	assert.ErrorIs(t, err, common.ErrNotFoundOrForbidden)
}

func TestDelete(t *testing.T) {
	ms := signedIn(t, "alice@example.com")
	mustRun(t, "", "create", "--title", "Gone", "--category", "Design", "--content", "c", "--publish")
	id := onlyPost(t, ms).ID

	out := mustRun(t, "n\n", "delete", id)
	assert.Contains(t, out, "Cancelled")
	onlyPost(t, ms)

	mustRun(t, "yes\n", "delete", id)
	rows, err := ms.ListPosts(context.Background(), models.PostQuery{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPost_Unknown(t *testing.T) {
	useStore(t)
	_, err := run(t, "", "post", "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProfileCommands(t *testing.T) {
	signedIn(t, "alice@example.com")

	out := mustRun(t, "", "profile", "show")
	assert.Contains(t, out, "has no profile yet")

	_, err := run(t, "", "profile", "update")
	assert.ErrorContains(t, err, "nothing to update")

	out = mustRun(t, "", "profile", "update", "--name", "Alice", "--bio", "Writes Go")
	assert.Contains(t, out, "Profile updated")

	out = mustRun(t, "", "profile", "show")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Writes Go")

	assert.Contains(t, mustRun(t, "", "whoami"), "Name:    Alice")
	assert.Contains(t, mustRun(t, "", "profile", "show", "someone-else"), "User someone-else has no profile yet")
}

func TestUploadImage(t *testing.T) {
	var got []byte
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotType = r.Header.Get("Content-Type")
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		got = buf.Bytes()
	}))
	t.Cleanup(srv.Close)

	ms := signedIn(t, "alice@example.com", memstore.WithStorage(srv.URL, "https://cdn.example"))

	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nfake"), 0o600))

	out := mustRun(t, "", "upload-image", path)
	assert.True(t, strings.HasPrefix(out, "https://cdn.example/covers/"), out)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), ".png"), out)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "\x89PNG\r\n\x1a\nfake", string(got))

	mustRun(t, "", "create", "--title", "With cover", "--category", "Design", "--content", "c",
		"--image-file", path)
	assert.True(t, strings.HasPrefix(onlyPost(t, ms).ImageURL, "https://cdn.example/covers/"))
}

func TestUploadImage_RequiresSignIn(t *testing.T) {
	useStore(t)
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := run(t, "", "upload-image", path)
	assert.ErrorIs(t, err, common.ErrNotSignedIn)
}

func TestPing_NotSupportedByMemoryStore(t *testing.T) {
	useStore(t)
	_, err := run(t, "", "ping")
	assert.ErrorIs(t, err, errNotReachable)
}

func TestPing_ServerDown(t *testing.T) {
	_, err := run(t, "", "--addr", "127.0.0.1:1", "ping")
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestBadLogLevel(t *testing.T) {
	useStore(t)
	_, err := run(t, "", "posts", "--log-level", "loud")
	assert.Error(t, err)
}
