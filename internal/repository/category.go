package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/storage/db"
)

type ListCategoriesParams struct {
	Offset int32
	Limit  int32
	// Name filters by case-insensitive substring when non-empty.
	Name string
}

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	Create(ctx context.Context, name string) (model.Category, error)
	GetByID(ctx context.Context, id int64) (model.Category, error)
	GetByName(ctx context.Context, name string) (model.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, params ListCategoriesParams) ([]model.Category, int64, error)
	UpdateName(ctx context.Context, id int64, name string) (model.Category, error)
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) Create(ctx context.Context, name string) (model.Category, error) {
	const query = `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`

	var c model.Category
	err := r.db.QueryRow(ctx, query, name).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, apperr.ErrCategoryNameTaken.WrapParent(err)
		}
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return c, nil
}

func (r categoryRepository) GetByID(ctx context.Context, id int64) (model.Category, error) {
	const query = `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE id = $1`

	var c model.Category
	err := r.db.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, apperr.ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("select category %d: %w", id, err)
	}

	return c, nil
}

func (r categoryRepository) GetByName(ctx context.Context, name string) (model.Category, error) {
	const query = `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE name = $1`

	var c model.Category
	err := r.db.QueryRow(ctx, query, name).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, apperr.ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("select category by name: %w", err)
	}

	return c, nil
}

func (r categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("category exists %d: %w", id, err)
	}

	return exists, nil
}

func (r categoryRepository) List(ctx context.Context, params ListCategoriesParams) ([]model.Category, int64, error) {
	const countQuery = `
		SELECT count(*)
		FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	// The filter matches a literal substring, not a LIKE pattern.
	name := escapeLike(params.Name)

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, name).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	const query = `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, name, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, total, nil
}

func (r categoryRepository) UpdateName(ctx context.Context, id int64, name string) (model.Category, error) {
	const query = `
		UPDATE categories
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	var c model.Category
	err := r.db.QueryRow(ctx, query, id, name).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return model.Category{}, apperr.ErrCategoryNotFound
		case isUniqueViolation(err):
			return model.Category{}, apperr.ErrCategoryNameTaken.WrapParent(err)
		}
		return model.Category{}, fmt.Errorf("update category %d: %w", id, err)
	}

	return c, nil
}
