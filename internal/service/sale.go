package service

import (
	"context"
	"fmt"
	"time"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/repository"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/money"
)

type CreateSaleParams struct {
	ProductID int64
	Quantity  int32
}

type ListSalesParams struct {
	Offset     int32
	Limit      int32
	CategoryID *int64
}

type SaleService interface {
	CreateSale(ctx context.Context, params CreateSaleParams) (model.Sale, error)
	ListSales(ctx context.Context, params ListSalesParams) ([]model.SaleDetail, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

func (s *saleService) CreateSale(ctx context.Context, params CreateSaleParams) (model.Sale, error) {
	product, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return model.Sale{}, fmt.Errorf("get product: %w", err)
	}

	total, err := money.Total(product.Price, params.Quantity)
	if err != nil {
		return model.Sale{}, fmt.Errorf("compute total price: %w", err)
	}

	sale, err := s.saleRepo.Create(ctx, repository.CreateSaleParams{
		ProductID:  params.ProductID,
		Quantity:   params.Quantity,
		TotalPrice: total,
		Date:       time.Now().UTC(),
	})
	if err != nil {
		return model.Sale{}, fmt.Errorf("create sale: %w", err)
	}

	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, params ListSalesParams) ([]model.SaleDetail, error) {
	sales, err := s.saleRepo.List(ctx, repository.ListSalesParams{
		Offset:     params.Offset,
		Limit:      params.Limit,
		CategoryID: params.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	return sales, nil
}
