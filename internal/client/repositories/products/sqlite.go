package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `SELECT id, user_id, name, description, price, image FROM products_cache`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (models.Product, error) {
	var (
		p           models.Product
		description sql.NullString
		image       sql.NullString
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &description, &p.Price, &image); err != nil {
		return models.Product{}, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if image.Valid {
		p.Image = &image.String
	}
	return p, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Product) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products_cache`); err != nil {
		return fmt.Errorf("failed to clear products cache: %w", err)
	}

	for _, p := range items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO products_cache (id, user_id, name, description, price, image)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.UserID, p.Name, nullable(p.Description), p.Price, nullable(p.Image))
		if err != nil {
			return fmt.Errorf("failed to cache product %d: %w", p.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached products: %w", err)
	}
	defer rows.Close()

	var result []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached product: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached products: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached product %d: %w", id, err)
	}
	return &p, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
