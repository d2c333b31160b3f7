package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
)

func TestCreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("Should snapshot total price at sale time", func(t *testing.T) {
		productRepo := newFakeProductRepo(model.Product{
			ID:    1,
			Name:  "Keyboard",
			Price: decimal.RequireFromString("19.99"),
		})
		saleRepo := &fakeSaleRepo{}
		svc := service.NewSaleService(saleRepo, productRepo)

		sale, err := svc.CreateSale(ctx, service.CreateSaleParams{ProductID: 1, Quantity: 3})

		require.NoError(t, err)
		assert.Equal(t, "59.97", sale.TotalPrice.StringFixed(2))
		assert.Equal(t, int32(3), sale.Quantity)
		assert.WithinDuration(t, time.Now().UTC(), sale.Date, time.Minute)

		require.Len(t, saleRepo.created, 1)
		assert.Equal(t, "59.97", saleRepo.created[0].TotalPrice.StringFixed(2))
	})

	t.Run("Should return not found for unknown product", func(t *testing.T) {
		svc := service.NewSaleService(&fakeSaleRepo{}, newFakeProductRepo())

		_, err := svc.CreateSale(ctx, service.CreateSaleParams{ProductID: 99, Quantity: 1})

		assert.ErrorIs(t, err, apperr.ErrProductNotFound)
	})
}

func TestListSales(t *testing.T) {
	ctx := context.Background()

	details := []model.SaleDetail{
		{
			Sale: model.Sale{ID: 1, ProductID: 1, Quantity: 2, TotalPrice: decimal.RequireFromString("39.98")},
			Product: model.Product{
				ID:       1,
				Name:     "Keyboard",
				Price:    decimal.RequireFromString("19.99"),
				Category: model.CategoryRef{ID: 1, Name: "Peripherals"},
			},
		},
	}
	svc := service.NewSaleService(&fakeSaleRepo{details: details}, newFakeProductRepo())

	sales, err := svc.ListSales(ctx, service.ListSalesParams{Limit: 10})

	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Keyboard", sales[0].Product.Name)
	assert.Equal(t, "Peripherals", sales[0].Product.Category.Name)
}
