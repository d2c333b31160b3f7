package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/validator"
)

func newSaleRouter(svc service.SaleService) *chi.Mux {
	h := NewSaleHandler(svc, validator.NewDefaultValidator(), testLogger())

	r := chi.NewRouter()
	r.Post("/sales", h.Create)
	r.Get("/sales", h.List)
	return r
}

func TestSaleHandlerCreate(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		body           string
		svc            *stubSaleService
		expectedStatus int
		checkResponse  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Should register sale with snapshot total",
			body: `{"product_id":1,"quantity":3}`,
			svc: &stubSaleService{
				createFn: func(_ context.Context, params service.CreateSaleParams) (model.Sale, error) {
					assert.Equal(t, int64(1), params.ProductID)
					assert.Equal(t, int32(3), params.Quantity)
					return model.Sale{
						ID:         10,
						ProductID:  1,
						Quantity:   3,
						TotalPrice: decimal.RequireFromString("59.97"),
						Date:       now,
					}, nil
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var res saleResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
				assert.Equal(t, int64(10), res.ID)
				assert.Equal(t, 59.97, res.TotalPrice)
			},
		},
		{
			name:           "Should reject zero quantity",
			body:           `{"product_id":1,"quantity":0}`,
			svc:            &stubSaleService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Should reject negative quantity",
			body:           `{"product_id":1,"quantity":-2}`,
			svc:            &stubSaleService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Should map unknown product to 404",
			body: `{"product_id":999,"quantity":1}`,
			svc: &stubSaleService{
				createFn: func(context.Context, service.CreateSaleParams) (model.Sale, error) {
					return model.Sale{}, apperr.ErrProductNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newSaleRouter(tc.svc)
			req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestSaleHandlerList(t *testing.T) {
	var gotParams service.ListSalesParams
	svc := &stubSaleService{
		listFn: func(_ context.Context, params service.ListSalesParams) ([]model.SaleDetail, error) {
			gotParams = params
			return []model.SaleDetail{
				{
					Sale: model.Sale{ID: 1, ProductID: 2, Quantity: 2, TotalPrice: decimal.RequireFromString("39.98")},
					Product: model.Product{
						ID:       2,
						Name:     "Keyboard",
						Price:    decimal.RequireFromString("19.99"),
						Category: model.CategoryRef{ID: 1, Name: "Peripherals"},
					},
				},
			}, nil
		},
	}
	r := newSaleRouter(svc)

	t.Run("Should list sales with product details", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales?category_id=1", nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotParams.CategoryID)
		assert.Equal(t, int64(1), *gotParams.CategoryID)

		var res salesListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		require.Len(t, res.Sales, 1)
		assert.Equal(t, 39.98, res.Sales[0].TotalPrice)
		assert.Equal(t, "Keyboard", res.Sales[0].Product.Name)
	})

	t.Run("Should reject non-numeric category_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales?category_id=abc", nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
