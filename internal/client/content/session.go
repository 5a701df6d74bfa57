package content

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/models"
)

func (s *Synchronizer) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := s.store.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setSession(sess)
	return sess, nil
}

// SignIn mirrors the new session at once; the profile follows with the
// session change event.
func (s *Synchronizer) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := s.store.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setSession(sess)
	return sess, nil
}

// SignOut clears the session and profile before returning.
func (s *Synchronizer) SignOut(ctx context.Context) error {
	if err := s.store.SignOut(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.session = nil
	s.profile = nil
	s.mu.Unlock()
	return nil
}

func (s *Synchronizer) setSession(sess *models.Session) {
	cp := *sess
	s.mu.Lock()
	s.session = &cp
	s.dropForeignProfile()
	s.mu.Unlock()
}

// dropForeignProfile clears a cached profile that does not belong to the
// cached session. Callers hold s.mu.
func (s *Synchronizer) dropForeignProfile() {
	if s.profile == nil {
		return
	}
	if s.session == nil || s.profile.ID != s.session.UserID {
		s.profile = nil
	}
}

// syncSession copies the store's current session into the cache and
// reloads the profile for it. The store is read under the cache lock so a
// concurrent SignOut cannot be overwritten by an older session.
func (s *Synchronizer) syncSession(ctx context.Context) error {
	s.mu.Lock()
	sess, err := s.store.CurrentSession(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.session = sess
	s.dropForeignProfile()
	s.mu.Unlock()

	if sess == nil {
		return nil
	}
	return s.loadProfile(ctx, sess.UserID)
}

func (s *Synchronizer) loadProfile(ctx context.Context, userID string) error {
	p, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil && s.session.UserID == userID {
		s.profile = p
	}
	return nil
}

// requireSession returns the cached session or common.ErrNotSignedIn.
func (s *Synchronizer) requireSession() (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, common.ErrNotSignedIn
	}
	cp := *s.session
	return &cp, nil
}

// UpdateProfile upserts the signed-in identity's profile and caches the
// stored row.
func (s *Synchronizer) UpdateProfile(ctx context.Context, u models.ProfileUpdate) (*models.Profile, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	u.UpdatedAt = s.now().UTC()

	p, err := s.store.UpsertProfile(ctx, sess.UserID, u)
	if err != nil {
		return nil, err
	}

	cp := *p
	s.mu.Lock()
	s.profile = &cp
	s.mu.Unlock()
	return p, nil
}

// GetUserProfile fetches any identity's profile. A missing profile is nil, nil.
func (s *Synchronizer) GetUserProfile(ctx context.Context, id string) (*models.Profile, error) {
	p, err := s.store.GetProfile(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CurrentSession returns a copy of the cached session, or nil.
func (s *Synchronizer) CurrentSession() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// CurrentProfile returns a copy of the cached profile, or nil.
func (s *Synchronizer) CurrentProfile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	cp := *s.profile
	return &cp
}
