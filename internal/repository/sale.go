package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/storage/db"
)

type CreateSaleParams struct {
	ProductID  int64
	Quantity   int32
	TotalPrice decimal.Decimal
	Date       time.Time
}

type ListSalesParams struct {
	Offset int32
	Limit  int32
	// CategoryID restricts sales to products of one category when set.
	CategoryID *int64
}

// SaleTotals aggregates every sale matching a filter, independent of any
// listing limit.
type SaleTotals struct {
	TotalValue decimal.Decimal
	TotalItems int64
	Count      int64
}

type SaleRepository interface {
	WithDB(db db.DB) SaleRepository
	Create(ctx context.Context, params CreateSaleParams) (model.Sale, error)
	List(ctx context.Context, params ListSalesParams) ([]model.SaleDetail, error)
	Totals(ctx context.Context, categoryID *int64) (SaleTotals, error)
	// ForEachDetail streams every sale joined with product and category
	// through fn, without buffering the whole result set.
	ForEachDetail(ctx context.Context, fn func(model.SaleDetail) error) error
}

type saleRepository struct {
	db db.DB
}

func NewSaleRepository(db db.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r saleRepository) WithDB(db db.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r saleRepository) Create(ctx context.Context, params CreateSaleParams) (model.Sale, error) {
	const query = `
		INSERT INTO sales (product_id, quantity, total_price, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, quantity, total_price, date`

	totalPrice, err := toNumeric(params.TotalPrice)
	if err != nil {
		return model.Sale{}, err
	}

	var (
		s     model.Sale
		total pgtype.Numeric
	)
	err = r.db.QueryRow(ctx, query,
		params.ProductID, params.Quantity, totalPrice, params.Date).
		Scan(&s.ID, &s.ProductID, &s.Quantity, &total, &s.Date)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Sale{}, apperr.ErrProductNotFound.WrapParent(err)
		}
		return model.Sale{}, fmt.Errorf("insert sale: %w", err)
	}

	if s.TotalPrice, err = fromNumeric(total); err != nil {
		return model.Sale{}, fmt.Errorf("sale %d total price: %w", s.ID, err)
	}

	return s, nil
}

const selectSaleDetailQuery = `
	SELECT s.id, s.product_id, s.quantity, s.total_price, s.date,
		` + selectProductColumns + `
	FROM sales s
	JOIN products p ON p.id = s.product_id
	JOIN categories c ON c.id = p.category_id`

func scanSaleDetail(rows pgx.Rows) (model.SaleDetail, error) {
	var (
		d     model.SaleDetail
		total pgtype.Numeric
		price pgtype.Numeric
	)
	err := rows.Scan(&d.ID, &d.ProductID, &d.Quantity, &total, &d.Date,
		&d.Product.ID, &d.Product.Name, &d.Product.Description, &price,
		&d.Product.Brand, &d.Product.CategoryID, &d.Product.CreatedAt,
		&d.Product.UpdatedAt, &d.Product.Category.ID, &d.Product.Category.Name)
	if err != nil {
		return model.SaleDetail{}, err
	}

	if d.TotalPrice, err = fromNumeric(total); err != nil {
		return model.SaleDetail{}, fmt.Errorf("sale %d total price: %w", d.ID, err)
	}
	if d.Product.Price, err = fromNumeric(price); err != nil {
		return model.SaleDetail{}, fmt.Errorf("product %d price: %w", d.Product.ID, err)
	}

	return d, nil
}

func (r saleRepository) List(ctx context.Context, params ListSalesParams) ([]model.SaleDetail, error) {
	const query = selectSaleDetailQuery + `
		WHERE ($1::bigint IS NULL OR c.id = $1)
		ORDER BY s.id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, params.CategoryID, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]model.SaleDetail, 0)
	for rows.Next() {
		d, err := scanSaleDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	return sales, nil
}

func (r saleRepository) Totals(ctx context.Context, categoryID *int64) (SaleTotals, error) {
	const query = `
		SELECT COALESCE(SUM(s.total_price), 0), COALESCE(SUM(s.quantity), 0), COUNT(*)
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE ($1::bigint IS NULL OR p.category_id = $1)`

	var (
		t     SaleTotals
		total pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, categoryID).
		Scan(&total, &t.TotalItems, &t.Count)
	if err != nil {
		return SaleTotals{}, fmt.Errorf("sum sales: %w", err)
	}

	if t.TotalValue, err = fromNumeric(total); err != nil {
		return SaleTotals{}, fmt.Errorf("sales total value: %w", err)
	}

	return t, nil
}

func (r saleRepository) ForEachDetail(ctx context.Context, fn func(model.SaleDetail) error) error {
	const query = selectSaleDetailQuery + ` ORDER BY s.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("select sale details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanSaleDetail(rows)
		if err != nil {
			return fmt.Errorf("scan sale detail: %w", err)
		}
		if err := fn(d); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate sale details: %w", err)
	}

	return nil
}
