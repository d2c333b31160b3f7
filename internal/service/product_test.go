package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/ptr"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create product in existing category", func(t *testing.T) {
		categoryRepo := newFakeCategoryRepo(model.Category{ID: 1, Name: "Peripherals"})
		productRepo := newFakeProductRepo()
		svc := service.NewProductService(&fakeDB{}, productRepo, categoryRepo)

		product, err := svc.CreateProduct(ctx, service.CreateProductParams{
			Name:       "Keyboard",
			Price:      decimal.RequireFromString("19.99"),
			CategoryID: 1,
			Brand:      ptr.New("Acme"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Keyboard", product.Name)
		assert.Equal(t, "19.99", product.Price.StringFixed(2))
		require.NotNil(t, product.Brand)
		assert.Equal(t, "Acme", *product.Brand)
	})

	t.Run("Should reject unknown category", func(t *testing.T) {
		svc := service.NewProductService(&fakeDB{}, newFakeProductRepo(), newFakeCategoryRepo())

		_, err := svc.CreateProduct(ctx, service.CreateProductParams{
			Name:       "Keyboard",
			Price:      decimal.RequireFromString("19.99"),
			CategoryID: 999,
		})

		assert.ErrorIs(t, err, apperr.ErrCategoryNotFound)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	productRepo := newFakeProductRepo(model.Product{ID: 3, Name: "Mouse", Price: decimal.RequireFromString("9.99")})
	svc := service.NewProductService(&fakeDB{}, productRepo, newFakeCategoryRepo())

	t.Run("Should return product by id", func(t *testing.T) {
		product, err := svc.GetProduct(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "Mouse", product.Name)
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		_, err := svc.GetProduct(ctx, 404)

		assert.ErrorIs(t, err, apperr.ErrProductNotFound)
	})
}
