package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/storage/db"
)

type CreateProductParams struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	CategoryID  int64
	Brand       *string
}

type ListProductsParams struct {
	Offset int32
	Limit  int32
	// CategoryName filters by case-insensitive substring of the owning
	// category's name when non-empty.
	CategoryName string
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	Create(ctx context.Context, params CreateProductParams) (model.Product, error)
	CreateBatch(ctx context.Context, params []CreateProductParams) ([]int64, error)
	GetByID(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context, params ListProductsParams) ([]model.Product, int64, error)
	Count(ctx context.Context, categoryID *int64) (int64, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const insertProductQuery = `
	INSERT INTO products (name, description, price, category_id, brand)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

func (r productRepository) Create(ctx context.Context, params CreateProductParams) (model.Product, error) {
	price, err := toNumeric(params.Price)
	if err != nil {
		return model.Product{}, err
	}

	var id int64
	err = r.db.QueryRow(ctx, insertProductQuery,
		params.Name, params.Description, price, params.CategoryID, params.Brand).
		Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Product{}, apperr.ErrCategoryNotFound.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return r.GetByID(ctx, id)
}

// CreateBatch inserts all rows through one pgx batch on the current DB.
// Callers run it inside WithTx; any failed insert fails the whole batch.
func (r productRepository) CreateBatch(ctx context.Context, params []CreateProductParams) ([]int64, error) {
	batch := &pgx.Batch{}
	for _, p := range params {
		price, err := toNumeric(p.Price)
		if err != nil {
			return nil, err
		}
		batch.Queue(insertProductQuery, p.Name, p.Description, price, p.CategoryID, p.Brand)
	}

	results := r.db.SendBatch(ctx, batch)

	ids := make([]int64, 0, len(params))
	for i := range params {
		var id int64
		if err := results.QueryRow().Scan(&id); err != nil {
			results.Close()
			if isForeignKeyViolation(err) {
				return nil, apperr.ErrIntegrity.WrapParent(err)
			}
			return nil, fmt.Errorf("batch insert product %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	return ids, nil
}

const selectProductColumns = `
	p.id, p.name, p.description, p.price, p.brand, p.category_id,
	p.created_at, p.updated_at, c.id, c.name`

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p     model.Product
		price pgtype.Numeric
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Brand,
		&p.CategoryID, &p.CreatedAt, &p.UpdatedAt, &p.Category.ID, &p.Category.Name)
	if err != nil {
		return model.Product{}, err
	}

	if p.Price, err = fromNumeric(price); err != nil {
		return model.Product{}, fmt.Errorf("product %d price: %w", p.ID, err)
	}

	return p, nil
}

func (r productRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	const query = `
		SELECT ` + selectProductColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("select product %d: %w", id, err)
	}

	return p, nil
}

func (r productRepository) List(ctx context.Context, params ListProductsParams) ([]model.Product, int64, error) {
	const countQuery = `
		SELECT count(*)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%')`

	// The filter matches a literal substring, not a LIKE pattern.
	categoryName := escapeLike(params.CategoryName)

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, categoryName).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	const query = `
		SELECT ` + selectProductColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%')
		ORDER BY p.id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, categoryName, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return products, total, nil
}

func (r productRepository) Count(ctx context.Context, categoryID *int64) (int64, error) {
	const query = `
		SELECT count(*)
		FROM products
		WHERE ($1::bigint IS NULL OR category_id = $1)`

	var total int64
	if err := r.db.QueryRow(ctx, query, categoryID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return total, nil
}
