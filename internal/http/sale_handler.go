package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/validator"
)

type SaleHandler struct {
	svc      service.SaleService
	validate validator.Validator
	logger   *slog.Logger
}

func NewSaleHandler(svc service.SaleService, validate validator.Validator, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{svc: svc, validate: validate, logger: logger}
}

type createSaleRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gt=0"`
}

type saleResponse struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int32     `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	Date       time.Time `json:"date"`
}

type saleDetailResponse struct {
	ID         int64           `json:"id"`
	Quantity   int32           `json:"quantity"`
	TotalPrice float64         `json:"total_price"`
	Date       time.Time       `json:"date"`
	Product    productResponse `json:"product"`
}

type salesListResponse struct {
	Sales []saleDetailResponse `json:"sales"`
}

func toSaleResponse(s model.Sale) saleResponse {
	return saleResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice.InexactFloat64(),
		Date:       s.Date,
	}
}

func toSaleDetailResponse(d model.SaleDetail) saleDetailResponse {
	return saleDetailResponse{
		ID:         d.ID,
		Quantity:   d.Quantity,
		TotalPrice: d.TotalPrice.InexactFloat64(),
		Date:       d.Date,
		Product:    toProductResponse(d.Product),
	}
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	sale, err := h.svc.CreateSale(r.Context(), service.CreateSaleParams{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toSaleResponse(sale))
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePagination(r)

	categoryID, err := parseOptionalInt64Query(r, "category_id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	sales, err := h.svc.ListSales(r.Context(), service.ListSalesParams{
		Offset:     offset,
		Limit:      limit,
		CategoryID: categoryID,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	res := salesListResponse{Sales: make([]saleDetailResponse, 0, len(sales))}
	for _, s := range sales {
		res.Sales = append(res.Sales, toSaleDetailResponse(s))
	}

	respondJSON(w, http.StatusOK, res)
}
