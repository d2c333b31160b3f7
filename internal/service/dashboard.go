package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/repository"
)

// dashboardSalesLimit caps the detail snapshot feeding the month buckets.
// The KPI totals come from a SQL aggregate and are never capped.
const dashboardSalesLimit = 1000

type DashboardService interface {
	Summary(ctx context.Context, categoryID *int64) (model.DashboardSummary, error)
	// ExportSales streams every sale joined with product and category as
	// CSV rows into w.
	ExportSales(ctx context.Context, w io.Writer) error
}

type dashboardService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewDashboardService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) DashboardService {
	return &dashboardService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

func (s *dashboardService) Summary(ctx context.Context, categoryID *int64) (model.DashboardSummary, error) {
	registered, err := s.productRepo.Count(ctx, categoryID)
	if err != nil {
		return model.DashboardSummary{}, fmt.Errorf("count products: %w", err)
	}

	totals, err := s.saleRepo.Totals(ctx, categoryID)
	if err != nil {
		return model.DashboardSummary{}, fmt.Errorf("sum sales: %w", err)
	}

	sales, err := s.saleRepo.List(ctx, repository.ListSalesParams{
		Limit:      dashboardSalesLimit,
		CategoryID: categoryID,
	})
	if err != nil {
		return model.DashboardSummary{}, fmt.Errorf("list sales: %w", err)
	}

	return Summarize(registered, totals, sales), nil
}

// monthOrder fixes the bucket ordering to calendar months, not first
// occurrence.
var monthOrder = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Summarize combines the full-table sale totals with a point-in-time
// snapshot of sales for the month-bucketed details. The KPIs come from
// totals so a capped snapshot never undercounts them. Monetary sums stay
// exact decimals; no sales yield zero aggregates, not an error. Buckets
// are keyed by month abbreviation regardless of year.
func Summarize(registeredProducts int64, totals repository.SaleTotals, sales []model.SaleDetail) model.DashboardSummary {
	summary := model.DashboardSummary{
		RegisteredProducts: registeredProducts,
		TotalSalesValue:    totals.TotalValue,
		TotalItemsSold:     totals.TotalItems,
		AverageSaleValue:   decimal.Zero,
		SalesByMonth:       []model.MonthlySales{},
	}

	buckets := make(map[string]*model.MonthlySales)
	for _, sale := range sales {
		month := sale.Date.Format("Jan")
		bucket, ok := buckets[month]
		if !ok {
			bucket = &model.MonthlySales{
				Month:      month,
				TotalValue: decimal.Zero,
				Sales:      []model.SaleDetail{},
			}
			buckets[month] = bucket
		}
		bucket.TotalValue = bucket.TotalValue.Add(sale.TotalPrice)
		bucket.TotalItems += int64(sale.Quantity)
		bucket.Sales = append(bucket.Sales, sale)
	}

	if totals.Count > 0 {
		count := decimal.NewFromInt(totals.Count)
		summary.AverageSaleValue = totals.TotalValue.DivRound(count, 2)
	}

	for _, month := range monthOrder {
		if bucket, ok := buckets[month]; ok {
			summary.SalesByMonth = append(summary.SalesByMonth, *bucket)
		}
	}

	return summary
}

// exportHeader fixes the column order of the sales export.
var exportHeader = []string{
	"sale_id", "product_id", "product_name", "product_description",
	"product_price", "product_brand", "category_id", "category_name",
	"quantity", "total_price", "date",
}

func (s *dashboardService) ExportSales(ctx context.Context, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	err := s.saleRepo.ForEachDetail(ctx, func(d model.SaleDetail) error {
		if err := writer.Write(exportRecord(d)); err != nil {
			return fmt.Errorf("write sale %d: %w", d.ID, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("export sales: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func exportRecord(d model.SaleDetail) []string {
	description := ""
	if d.Product.Description != nil {
		description = *d.Product.Description
	}
	brand := ""
	if d.Product.Brand != nil {
		brand = *d.Product.Brand
	}

	return []string{
		strconv.FormatInt(d.ID, 10),
		strconv.FormatInt(d.ProductID, 10),
		d.Product.Name,
		description,
		d.Product.Price.StringFixed(2),
		brand,
		strconv.FormatInt(d.Product.Category.ID, 10),
		d.Product.Category.Name,
		strconv.FormatInt(int64(d.Quantity), 10),
		d.TotalPrice.StringFixed(2),
		d.Date.Format(time.DateOnly),
	}
}
