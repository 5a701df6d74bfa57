package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/dbx"
	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalidTextRepresentation is raised for an id that is not a uuid.
const invalidTextRepresentation = "22P02"

const columns = `id, display_name, bio, avatar_url, website, location, twitter_handle, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	return scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM profiles WHERE id = $1`, id))
}

func (r *PostgresRepository) Upsert(ctx context.Context, id string, u models.ProfileUpdate) (*models.Profile, error) {
	updatedAt := u.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := `
		INSERT INTO profiles (id, display_name, bio, avatar_url, website, location, twitter_handle, updated_at)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), COALESCE($6, ''), COALESCE($7, ''), $8)
		ON CONFLICT (id) DO UPDATE SET
			display_name   = COALESCE($2, profiles.display_name),
			bio            = COALESCE($3, profiles.bio),
			avatar_url     = COALESCE($4, profiles.avatar_url),
			website        = COALESCE($5, profiles.website),
			location       = COALESCE($6, profiles.location),
			twitter_handle = COALESCE($7, profiles.twitter_handle),
			updated_at     = $8
		RETURNING ` + columns

	return scan(r.db.QueryRowContext(ctx, query, id,
		nullable(u.DisplayName), nullable(u.Bio), nullable(u.AvatarURL),
		nullable(u.Website), nullable(u.Location), nullable(u.TwitterHandle), updatedAt))
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scan(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.Website, &p.Location,
		&p.TwitterHandle, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
