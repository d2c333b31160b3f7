package http

import (
	"context"
	"io"
	"log/slog"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
)

// Function-field stubs keep each test case self-contained: a case wires
// only the method it expects the handler to call.

type stubCategoryService struct {
	createFn func(ctx context.Context, name string) (model.Category, error)
	getFn    func(ctx context.Context, id int64) (model.Category, error)
	listFn   func(ctx context.Context, params service.ListCategoriesParams) ([]model.Category, int64, error)
	updateFn func(ctx context.Context, id int64, name string) (model.Category, error)
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	return s.createFn(ctx, name)
}

func (s *stubCategoryService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	return s.getFn(ctx, id)
}

func (s *stubCategoryService) ListCategories(ctx context.Context, params service.ListCategoriesParams) ([]model.Category, int64, error) {
	return s.listFn(ctx, params)
}

func (s *stubCategoryService) UpdateCategoryName(ctx context.Context, id int64, name string) (model.Category, error) {
	return s.updateFn(ctx, id, name)
}

type stubProductService struct {
	createFn func(ctx context.Context, params service.CreateProductParams) (model.Product, error)
	getFn    func(ctx context.Context, id int64) (model.Product, error)
	listFn   func(ctx context.Context, params service.ListProductsParams) ([]model.Product, int64, error)
	importFn func(ctx context.Context, r io.Reader) (service.ImportReport, error)
}

func (s *stubProductService) CreateProduct(ctx context.Context, params service.CreateProductParams) (model.Product, error) {
	return s.createFn(ctx, params)
}

func (s *stubProductService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) ListProducts(ctx context.Context, params service.ListProductsParams) ([]model.Product, int64, error) {
	return s.listFn(ctx, params)
}

func (s *stubProductService) ImportCSV(ctx context.Context, r io.Reader) (service.ImportReport, error) {
	return s.importFn(ctx, r)
}

type stubSaleService struct {
	createFn func(ctx context.Context, params service.CreateSaleParams) (model.Sale, error)
	listFn   func(ctx context.Context, params service.ListSalesParams) ([]model.SaleDetail, error)
}

func (s *stubSaleService) CreateSale(ctx context.Context, params service.CreateSaleParams) (model.Sale, error) {
	return s.createFn(ctx, params)
}

func (s *stubSaleService) ListSales(ctx context.Context, params service.ListSalesParams) ([]model.SaleDetail, error) {
	return s.listFn(ctx, params)
}

type stubDashboardService struct {
	summaryFn func(ctx context.Context, categoryID *int64) (model.DashboardSummary, error)
	exportFn  func(ctx context.Context, w io.Writer) error
}

func (s *stubDashboardService) Summary(ctx context.Context, categoryID *int64) (model.DashboardSummary, error) {
	return s.summaryFn(ctx, categoryID)
}

func (s *stubDashboardService) ExportSales(ctx context.Context, w io.Writer) error {
	return s.exportFn(ctx, w)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
