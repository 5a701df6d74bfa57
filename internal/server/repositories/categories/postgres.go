package categories

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogsync/internal/dbx"
	"github.com/dmitrijs2005/blogsync/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.CategoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CategoryRecord, 0)
	for rows.Next() {
		c := &models.CategoryRecord{}
		if err := rows.Scan(&c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
