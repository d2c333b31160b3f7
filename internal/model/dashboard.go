package model

import "github.com/shopspring/decimal"

// MonthlySales groups the sales that fall in one calendar month. The
// grouping key is the 3-letter month abbreviation regardless of year, so
// sales from different years with the same month share a bucket.
type MonthlySales struct {
	Month      string          `json:"month"`
	TotalValue decimal.Decimal `json:"monthly_total_sales_value"`
	TotalItems int64           `json:"monthly_total_items_sold"`
	Sales      []SaleDetail    `json:"sales_details"`
}

// DashboardSummary holds the KPI aggregates plus the month-bucketed sale
// details, optionally scoped to one category.
type DashboardSummary struct {
	RegisteredProducts int64           `json:"registered_products"`
	TotalSalesValue    decimal.Decimal `json:"total_sales_value"`
	TotalItemsSold     int64           `json:"total_items_sold"`
	AverageSaleValue   decimal.Decimal `json:"average_sale_value"`
	SalesByMonth       []MonthlySales  `json:"sales_by_month"`
}
