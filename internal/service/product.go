package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/repository"
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
	Offset       int32
	Limit        int32
	CategoryName string
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, int64, error)
	ImportCSV(ctx context.Context, r io.Reader) (ImportReport, error)
}

type productService struct {
	db           db.DB
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	exists, err := s.categoryRepo.Exists(ctx, params.CategoryID)
	if err != nil {
		return model.Product{}, fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return model.Product{}, apperr.ErrCategoryNotFound.
			WithMsg(fmt.Sprintf("category with id %d not found", params.CategoryID))
	}

	product, err := s.productRepo.Create(ctx, repository.CreateProductParams{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		CategoryID:  params.CategoryID,
		Brand:       params.Brand,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrProductNotFound) {
			return model.Product{}, err
		}
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, repository.ListProductsParams{
		Offset:       params.Offset,
		Limit:        params.Limit,
		CategoryName: params.CategoryName,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}
