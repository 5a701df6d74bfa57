// Package memstore is an in-process store.Client. It keeps every relation in
// memory and enforces the same rules as blogd: drafts are visible only to
// their author, writes are constrained to the author, and a profile can only
// be upserted by its owner.
package memstore

import (
	"context"
	"fmt"
	"net/mail"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/client/session"
	"github.com/dmitrijs2005/blogsync/internal/client/store"
	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/cryptox"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/google/uuid"
)

const (
	minPasswordLength = 6
	sessionLifetime   = time.Hour
)

// DefaultCategories mirrors the categories blogd seeds.
var DefaultCategories = []models.CategoryRecord{
	{Name: "Business", Color: "bg-yellow-500"},
	{Name: "Design", Color: "bg-purple-500"},
	{Name: "Development", Color: "bg-green-500"},
	{Name: "Lifestyle", Color: "bg-pink-500"},
	{Name: "Technology", Color: "bg-blue-500"},
}

type account struct {
	id    string
	email string
	hash  []byte
	salt  []byte
}

type Store struct {
	hub       *session.Hub
	now       func() time.Time
	uploadURL string
	publicURL string

	mu          sync.Mutex
	accounts    map[string]*account
	refresh     map[string]*account
	session     *models.Session
	restored    bool
	posts       []*models.PostRecord
	categories  map[string]models.CategoryRecord
	profiles    map[string]*models.Profile
	lastCreated time.Time
}

var _ store.Client = (*Store)(nil)

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithStorage sets the base URLs of issued image upload slots.
func WithStorage(uploadURL, publicURL string) Option {
	return func(s *Store) {
		s.uploadURL = strings.TrimSuffix(uploadURL, "/")
		s.publicURL = strings.TrimSuffix(publicURL, "/")
	}
}

// WithCategories replaces the seeded categories.
func WithCategories(cats ...models.CategoryRecord) Option {
	return func(s *Store) {
		s.categories = make(map[string]models.CategoryRecord, len(cats))
		for _, c := range cats {
			s.categories[c.Name] = c
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		hub:       session.NewHub(),
		now:       time.Now,
		uploadURL: "memory://blog-images",
		publicURL: "memory://blog-images",
		accounts:  make(map[string]*account),
		refresh:   make(map[string]*account),
		profiles:  make(map[string]*models.Profile),
	}
	WithCategories(DefaultCategories...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Subscribe() *session.Subscription {
	return s.hub.Subscribe()
}

func (s *Store) Close() error {
	s.hub.Close()
	return nil
}

// identity returns the signed-in account. Callers hold mu.
func (s *Store) identity() (*models.Session, error) {
	if s.session == nil {
		return nil, fmt.Errorf("%w: missing token", common.ErrAuth)
	}
	return s.session, nil
}

func (s *Store) issue(a *account) (*models.Session, error) {
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	access, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	s.refresh[refresh] = a
	return &models.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    s.now().Add(sessionLifetime),
		UserID:       a.id,
		Email:        a.email,
	}, nil
}

func (s *Store) signedIn(sess *models.Session) *models.Session {
	s.session = sess
	s.restored = true
	out := *sess
	s.hub.Publish(session.Event{Kind: session.KindSignedIn, Session: &out})
	return &out
}

func (s *Store) SignUp(_ context.Context, email, password string) (*models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: %w", common.ErrAuth, common.ErrWeakPassword)
	}
	hash, salt := cryptox.HashPassword([]byte(password))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[email]; ok {
		return nil, fmt.Errorf("%w: %w", common.ErrAuth, common.ErrEmailTaken)
	}
	a := &account{id: uuid.NewString(), email: email, hash: hash, salt: salt}
	s.accounts[email] = a

	sess, err := s.issue(a)
	if err != nil {
		return nil, err
	}
	return s.signedIn(sess), nil
}

func (s *Store) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[strings.ToLower(strings.TrimSpace(email))]
	if !ok || !cryptox.CheckPassword([]byte(password), a.salt, a.hash) {
		return nil, fmt.Errorf("%w: invalid login credentials", common.ErrAuth)
	}
	sess, err := s.issue(a)
	if err != nil {
		return nil, err
	}
	return s.signedIn(sess), nil
}

func (s *Store) SignOut(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		delete(s.refresh, s.session.RefreshToken)
	}
	s.session = nil
	s.restored = true
	s.hub.Publish(session.Event{Kind: session.KindSignedOut})
	return nil
}

// CurrentSession announces the initial session on first use, like the
// remote store does after restoring it.
func (s *Store) CurrentSession(context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out *models.Session
	if s.session != nil {
		cp := *s.session
		out = &cp
	}
	if !s.restored {
		s.restored = true
		s.hub.Publish(session.Event{Kind: session.KindInitial, Session: out})
	}
	return out, nil
}

func clonePost(p *models.PostRecord) *models.PostRecord {
	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return &out
}

// visible applies the same filter as blogd's posts repository.
func visible(p *models.PostRecord, viewerID string, q models.PostQuery) bool {
	if !p.Published && (viewerID == "" || p.AuthorID != viewerID) {
		return false
	}
	if q.Published != nil && p.Published != *q.Published {
		return false
	}
	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if q.AuthorID != "" && p.AuthorID != q.AuthorID {
		return false
	}
	return true
}

func (s *Store) viewerID() string {
	if s.session == nil {
		return ""
	}
	return s.session.UserID
}

func (s *Store) match(q models.PostQuery) []*models.PostRecord {
	out := make([]*models.PostRecord, 0)
	viewer := s.viewerID()
	for _, p := range s.posts {
		if visible(p, viewer, q) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) ListPosts(_ context.Context, q models.PostQuery) ([]*models.PostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.match(q)
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	out := make([]*models.PostRecord, len(rows))
	for i, p := range rows {
		out[i] = clonePost(p)
	}
	return out, nil
}

func (s *Store) CountPosts(_ context.Context, q models.PostQuery) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.match(q)), nil
}

// tick returns a creation time strictly after the previous one.
func (s *Store) tick() time.Time {
	t := s.now()
	if !t.After(s.lastCreated) {
		t = s.lastCreated.Add(time.Microsecond)
	}
	s.lastCreated = t
	return t
}

func (s *Store) checkCategory(name string) error {
	if _, ok := s.categories[name]; !ok {
		return fmt.Errorf("%w: unknown category %q", common.ErrValidation, name)
	}
	return nil
}

func (s *Store) InsertPost(_ context.Context, p *models.PostRecord) (*models.PostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.identity()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: post is required", common.ErrValidation)
	}
	var missing []string
	for _, f := range []struct{ name, value string }{{"title", p.Title}, {"content", p.Content}, {"category", p.Category}} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", common.ErrValidation, strings.Join(missing, ", "))
	}
	if err := s.checkCategory(p.Category); err != nil {
		return nil, err
	}

	row := clonePost(p)
	row.ID = uuid.NewString()
	row.AuthorID = sess.UserID
	row.Author = sess.Email
	row.Tags = models.NormalizeTags(p.Tags)
	if row.ReadTime <= 0 {
		row.ReadTime = models.DefaultReadTime
	}
	row.CreatedAt = s.tick()
	s.posts = append(s.posts, row)

	return clonePost(row), nil
}

// owned finds post id written by authorID, which must be the caller.
func (s *Store) owned(id, authorID string) (int, error) {
	sess, err := s.identity()
	if err != nil {
		return -1, err
	}
	if authorID != sess.UserID {
		return -1, common.ErrNotFoundOrForbidden
	}
	for i, p := range s.posts {
		if p.ID == id && p.AuthorID == authorID {
			return i, nil
		}
	}
	return -1, common.ErrNotFoundOrForbidden
}

func (s *Store) UpdatePost(_ context.Context, id, authorID string, patch models.PostPatch) (*models.PostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.owned(id, authorID)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Category != nil {
		if err := s.checkCategory(*patch.Category); err != nil {
			return nil, err
		}
	}
	patch.Apply(s.posts[i])
	return clonePost(s.posts[i]), nil
}

func (s *Store) DeletePost(_ context.Context, id, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.owned(id, authorID)
	if err != nil {
		return err
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *Store) ListCategories(context.Context) ([]*models.CategoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.CategoryRecord, 0, len(s.categories))
	for _, c := range s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (s *Store) UpsertProfile(_ context.Context, id string, u models.ProfileUpdate) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.identity()
	if err != nil {
		return nil, err
	}
	if id != sess.UserID {
		return nil, fmt.Errorf("%w: profiles can only be changed by their owner", common.ErrForbidden)
	}

	p, ok := s.profiles[id]
	if !ok {
		now := s.now()
		p = &models.Profile{ID: id, CreatedAt: now, UpdatedAt: now}
		s.profiles[id] = p
	}
	u.Apply(p)
	if u.UpdatedAt.IsZero() {
		p.UpdatedAt = s.now()
	}
	out := *p
	return &out, nil
}

func (s *Store) CreateImageUpload(_ context.Context, filename, contentType string) (*models.ImageUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.identity()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", common.ErrValidation, contentType)
	}

	now := s.now().UTC()
	key := fmt.Sprintf("covers/%s/%04d/%02d/%s%s", sess.UserID, now.Year(), int(now.Month()), uuid.NewString(),
		strings.ToLower(path.Ext(filename)))

	return &models.ImageUpload{
		Key:       key,
		UploadURL: s.uploadURL + "/" + key,
		PublicURL: s.publicURL + "/" + key,
	}, nil
}
