// Package services holds blogd business logic. UserService manages
// identities and sessions: sign-up, sign-in, sign-out and refresh-token
// rotation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/cryptox"
	"github.com/dmitrijs2005/blogsync/internal/dbx"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/dmitrijs2005/blogsync/internal/server/auth"
	"github.com/dmitrijs2005/blogsync/internal/server/config"
	sm "github.com/dmitrijs2005/blogsync/internal/server/models"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/repomanager"
)

const MinPasswordLength = 6

type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	checkPassword   func(password, salt, hash []byte) bool
	newRefreshToken func() (string, error)
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		checkPassword:   cryptox.CheckPassword,
		newRefreshToken: func() (string, error) { return common.MakeRandHexString(32) },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new identity and signs it in.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: %w: at least %d characters required", common.ErrAuth, common.ErrWeakPassword, MinPasswordLength)
	}

	hash, salt := cryptox.HashPassword([]byte(password))

	var session *models.Session
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &sm.User{Email: email, PasswordHash: hash, Salt: salt})
		if err != nil {
			if errors.Is(err, common.ErrEmailTaken) {
				return fmt.Errorf("%w: %w", common.ErrAuth, common.ErrEmailTaken)
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		session, err = s.newSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SignIn checks the password grant. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid login credentials", common.ErrAuth)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	if !s.checkPassword([]byte(password), user.Salt, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid login credentials", common.ErrAuth)
	}
	return s.newSession(ctx, s.db, user)
}

// SignOut revokes refreshToken. Unknown tokens are ignored.
func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// Refresh rotates refreshToken in one transaction and returns a new session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", common.ErrAuth, common.ErrInvalidToken)
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, fmt.Errorf("%w: %w", common.ErrAuth, common.ErrRefreshTokenExpired)
	}

	var session *models.Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			return fmt.Errorf("error loading user: %w", err)
		}
		session, err = s.newSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetUser returns the identity with the given id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*sm.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

func (s *UserService) newSession(ctx context.Context, db dbx.DBTX, user *sm.User) (*models.Session, error) {
	access, expires, err := auth.GenerateToken(auth.Identity{UserID: user.ID, Email: user.Email}, s.jwtSecret, s.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	refresh, err := s.newRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, user.ID, refresh, s.refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return &models.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expires,
		UserID:       user.ID,
		Email:        user.Email,
	}, nil
}
