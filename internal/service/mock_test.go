package service_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/repository"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/storage/db"
)

// fakeDB satisfies db.DB for service tests. WithTx runs the callback
// against the same fake, mirroring how the real client hands the open
// transaction to repositories.
type fakeDB struct {
	txErr error
}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not expected in service tests")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not expected in service tests")
}

func (f *fakeDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("not expected in service tests")
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return txFunc(f)
}

type fakeCategoryRepo struct {
	categories map[int64]model.Category
	createErr  error
	existsErr  error
	nextID     int64

	existsCalls []int64
}

func newFakeCategoryRepo(categories ...model.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: map[int64]model.Category{}}
	for _, c := range categories {
		f.categories[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeCategoryRepo) WithDB(db.DB) repository.CategoryRepository { return f }

func (f *fakeCategoryRepo) Create(_ context.Context, name string) (model.Category, error) {
	if f.createErr != nil {
		return model.Category{}, f.createErr
	}
	f.nextID++
	c := model.Category{ID: f.nextID, Name: name}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return model.Category{}, apperr.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) GetByName(_ context.Context, name string) (model.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Category{}, apperr.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	f.existsCalls = append(f.existsCalls, id)
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, _ repository.ListCategoriesParams) ([]model.Category, int64, error) {
	out := make([]model.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCategoryRepo) UpdateName(_ context.Context, id int64, name string) (model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return model.Category{}, apperr.ErrCategoryNotFound
	}
	c.Name = name
	f.categories[id] = c
	return c, nil
}

type fakeProductRepo struct {
	products map[int64]model.Product
	nextID   int64

	createErr error
	batchErr  error
	getErr    map[int64]error

	batchCalls [][]repository.CreateProductParams
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[int64]model.Product{}, getErr: map[int64]error{}}
	for _, p := range products {
		f.products[p.ID] = p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return f }

func (f *fakeProductRepo) insert(params repository.CreateProductParams) model.Product {
	f.nextID++
	p := model.Product{
		ID:          f.nextID,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Brand:       params.Brand,
		CategoryID:  params.CategoryID,
		Category:    model.CategoryRef{ID: params.CategoryID},
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) Create(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
	if f.createErr != nil {
		return model.Product{}, f.createErr
	}
	return f.insert(params), nil
}

func (f *fakeProductRepo) CreateBatch(_ context.Context, params []repository.CreateProductParams) ([]int64, error) {
	f.batchCalls = append(f.batchCalls, params)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	ids := make([]int64, 0, len(params))
	for _, p := range params {
		ids = append(ids, f.insert(p).ID)
	}
	return ids, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (model.Product, error) {
	if err := f.getErr[id]; err != nil {
		return model.Product{}, err
	}
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, apperr.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(_ context.Context, _ repository.ListProductsParams) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Count(_ context.Context, _ *int64) (int64, error) {
	return int64(len(f.products)), nil
}

type fakeSaleRepo struct {
	details []model.SaleDetail
	nextID  int64

	// totals overrides the aggregate computed from details when set.
	totals *repository.SaleTotals

	createErr error
	created   []repository.CreateSaleParams
}

func (f *fakeSaleRepo) WithDB(db.DB) repository.SaleRepository { return f }

func (f *fakeSaleRepo) Create(_ context.Context, params repository.CreateSaleParams) (model.Sale, error) {
	if f.createErr != nil {
		return model.Sale{}, f.createErr
	}
	f.created = append(f.created, params)
	f.nextID++
	return model.Sale{
		ID:         f.nextID,
		ProductID:  params.ProductID,
		Quantity:   params.Quantity,
		TotalPrice: params.TotalPrice,
		Date:       params.Date,
	}, nil
}

func (f *fakeSaleRepo) List(_ context.Context, _ repository.ListSalesParams) ([]model.SaleDetail, error) {
	return f.details, nil
}

func (f *fakeSaleRepo) Totals(_ context.Context, _ *int64) (repository.SaleTotals, error) {
	if f.totals != nil {
		return *f.totals, nil
	}
	t := repository.SaleTotals{TotalValue: decimal.Zero}
	for _, d := range f.details {
		t.TotalValue = t.TotalValue.Add(d.TotalPrice)
		t.TotalItems += int64(d.Quantity)
		t.Count++
	}
	return t, nil
}

func (f *fakeSaleRepo) ForEachDetail(_ context.Context, fn func(model.SaleDetail) error) error {
	for _, d := range f.details {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}
