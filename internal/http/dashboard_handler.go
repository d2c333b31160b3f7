package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
)

type DashboardHandler struct {
	svc    service.DashboardService
	logger *slog.Logger
}

func NewDashboardHandler(svc service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

type monthlySalesResponse struct {
	Month        string               `json:"month"`
	TotalValue   float64              `json:"monthly_total_sales_value"`
	TotalItems   int64                `json:"monthly_total_items_sold"`
	SalesDetails []saleDetailResponse `json:"sales_details"`
}

type dashboardResponse struct {
	RegisteredProducts int64                  `json:"registered_products"`
	TotalSalesValue    float64                `json:"total_sales_value"`
	TotalItemsSold     int64                  `json:"total_items_sold"`
	AverageSaleValue   float64                `json:"average_sale_value"`
	SalesByMonth       []monthlySalesResponse `json:"sales_by_month"`
}

func toDashboardResponse(s model.DashboardSummary) dashboardResponse {
	res := dashboardResponse{
		RegisteredProducts: s.RegisteredProducts,
		TotalSalesValue:    s.TotalSalesValue.InexactFloat64(),
		TotalItemsSold:     s.TotalItemsSold,
		AverageSaleValue:   s.AverageSaleValue.InexactFloat64(),
		SalesByMonth:       make([]monthlySalesResponse, 0, len(s.SalesByMonth)),
	}
	for _, m := range s.SalesByMonth {
		month := monthlySalesResponse{
			Month:        m.Month,
			TotalValue:   m.TotalValue.InexactFloat64(),
			TotalItems:   m.TotalItems,
			SalesDetails: make([]saleDetailResponse, 0, len(m.Sales)),
		}
		for _, d := range m.Sales {
			month.SalesDetails = append(month.SalesDetails, toSaleDetailResponse(d))
		}
		res.SalesByMonth = append(res.SalesByMonth, month)
	}
	return res
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseOptionalInt64Query(r, "category_id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	summary, err := h.svc.Summary(r.Context(), categoryID)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toDashboardResponse(summary))
}

// ExportSales streams the full sales report as a CSV attachment. Headers
// go out before the first row, so a mid-stream failure can only be logged
// and the connection dropped.
func (h *DashboardHandler) ExportSales(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("sales_%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.svc.ExportSales(r.Context(), w); err != nil {
		h.logger.ErrorContext(r.Context(), "sales export aborted mid stream", slog.Any("error", err))
	}
}
