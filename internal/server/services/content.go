package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/dmitrijs2005/blogsync/internal/server/auth"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogsync/internal/server/repositories/repomanager"
)

// ContentService serves the posts, categories and profiles relations.
// Callers pass the identity recovered from the access token; "" means anonymous.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager) *ContentService {
	return &ContentService{db: db, repomanager: m}
}

// ListPosts returns posts matching q, newest first. Drafts are only returned to their author.
func (s *ContentService) ListPosts(ctx context.Context, viewerID string, q models.PostQuery) ([]*models.PostRecord, error) {
	return s.repomanager.Posts(s.db).List(ctx, posts.Filter{Query: q, ViewerID: viewerID})
}

func (s *ContentService) CountPosts(ctx context.Context, viewerID string, q models.PostQuery) (int, error) {
	return s.repomanager.Posts(s.db).Count(ctx, posts.Filter{Query: q, ViewerID: viewerID})
}

// InsertPost stores p on behalf of author. Author fields in p are ignored.
func (s *ContentService) InsertPost(ctx context.Context, author auth.Identity, p *models.PostRecord) (*models.PostRecord, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: post is required", common.ErrValidation)
	}
	if err := validatePost(p.Title, p.Content, p.Category); err != nil {
		return nil, err
	}

	row := *p
	row.AuthorID = author.UserID
	row.Author = author.Email
	row.Tags = models.NormalizeTags(p.Tags)
	if row.ReadTime <= 0 {
		row.ReadTime = models.DefaultReadTime
	}

	return s.repomanager.Posts(s.db).Insert(ctx, &row)
}

// UpdatePost patches post id. authorID must be the caller.
func (s *ContentService) UpdatePost(ctx context.Context, userID, id, authorID string, patch models.PostPatch) (*models.PostRecord, error) {
	if authorID != userID {
		return nil, common.ErrNotFoundOrForbidden
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Posts(s.db).Update(ctx, id, userID, patch)
}

func (s *ContentService) DeletePost(ctx context.Context, userID, id, authorID string) error {
	if authorID != userID {
		return common.ErrNotFoundOrForbidden
	}
	return s.repomanager.Posts(s.db).Delete(ctx, id, userID)
}

func (s *ContentService) ListCategories(ctx context.Context) ([]*models.CategoryRecord, error) {
	return s.repomanager.Categories(s.db).List(ctx)
}

// GetProfile returns common.ErrNotFound when the identity has no profile.
func (s *ContentService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).Get(ctx, id)
}

// UpsertProfile writes the caller's own profile.
func (s *ContentService) UpsertProfile(ctx context.Context, userID, id string, u models.ProfileUpdate) (*models.Profile, error) {
	if id != userID {
		return nil, fmt.Errorf("%w: profiles can only be changed by their owner", common.ErrForbidden)
	}
	return s.repomanager.Profiles(s.db).Upsert(ctx, id, u)
}

func validatePost(title, content, category string) error {
	var missing []string
	if strings.TrimSpace(title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", common.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// IsClientError reports whether err is caused by the request rather than the server.
func IsClientError(err error) bool {
	for _, target := range []error{common.ErrValidation, common.ErrAuth, common.ErrNotFound,
		common.ErrNotFoundOrForbidden, common.ErrForbidden} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
