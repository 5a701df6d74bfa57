package posts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/dbx"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02" // e.g. an id that is not a uuid
)

const columns = `id, title, excerpt, content, author, author_id, category, tags, read_time, image_url, featured, published, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// where renders the filter as a WHERE clause with positional arguments.
func where(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ViewerID == "" {
		conds = append(conds, "published")
	} else {
		conds = append(conds, "(published OR author_id = "+arg(f.ViewerID)+")")
	}
	if q := f.Query; q.Published != nil {
		conds = append(conds, "published = "+arg(*q.Published))
	}
	if q := f.Query; q.Featured != nil {
		conds = append(conds, "featured = "+arg(*q.Featured))
	}
	if f.Query.Category != "" {
		conds = append(conds, "lower(category) = lower("+arg(f.Query.Category)+")")
	}
	if f.Query.AuthorID != "" {
		conds = append(conds, "author_id = "+arg(f.Query.AuthorID))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.PostRecord, error) {
	clause, args := where(f)
	query := `SELECT ` + columns + ` FROM posts` + clause + ` ORDER BY created_at DESC`
	if f.Query.Limit > 0 {
		args = append(args, f.Query.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.PostRecord, 0)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int, error) {
	clause, args := where(f)
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM posts`+clause, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, post *models.PostRecord) (*models.PostRecord, error) {
	tags, err := json.Marshal(models.NormalizeTags(post.Tags))
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO posts (title, excerpt, content, author, author_id, category, tags, read_time, image_url, featured, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11)
		RETURNING ` + columns

	row := r.db.QueryRowContext(ctx, query,
		post.Title, post.Excerpt, post.Content, post.Author, post.AuthorID, post.Category,
		string(tags), post.ReadTime, post.ImageURL, post.Featured, post.Published)

	stored, err := scan(row)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, authorID string, patch models.PostPatch) (*models.PostRecord, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Excerpt != nil {
		set("excerpt", *patch.Excerpt)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Tags != nil {
		tags, err := json.Marshal(models.NormalizeTags(*patch.Tags))
		if err != nil {
			return nil, err
		}
		args = append(args, string(tags))
		sets = append(sets, fmt.Sprintf("tags = $%d::jsonb", len(args)))
	}
	if patch.ImageURL != nil {
		set("image_url", *patch.ImageURL)
	}
	if patch.ReadTime != nil {
		set("read_time", *patch.ReadTime)
	}
	if patch.Published != nil {
		set("published", *patch.Published)
	}
	if patch.Featured != nil {
		set("featured", *patch.Featured)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: empty patch", common.ErrValidation)
	}

	args = append(args, id, authorID)
	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d AND author_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), columns)

	updated, err := scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, authorID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		if pgCode(err) == invalidTextRepresentation {
			return common.ErrNotFoundOrForbidden
		}
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res, common.ErrNotFoundOrForbidden)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.PostRecord, error) {
	p := &models.PostRecord{}
	var tags []byte
	err := s.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Author, &p.AuthorID, &p.Category,
		&tags, &p.ReadTime, &p.ImageURL, &p.Featured, &p.Published, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		switch pgCode(err) {
		case foreignKeyViolation:
			return nil, fmt.Errorf("%w: unknown category", common.ErrValidation)
		case invalidTextRepresentation:
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of post %s: %w", p.ID, err)
		}
	}
	return p, nil
}
