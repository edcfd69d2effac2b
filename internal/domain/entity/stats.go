package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyOrderCount is the number of orders placed on a calendar day (UTC).
type DailyOrderCount struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Orders int64  `json:"orders"`
}

// MonthlyRevenue aggregates paid orders for one calendar month.
type MonthlyRevenue struct {
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// FulfillmentStats counts orders by fulfillment stage.
type FulfillmentStats struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	InTransit int64 `json:"in_transit"`
	Completed int64 `json:"completed"`
	Rejected  int64 `json:"rejected"`
}

// DashboardStats is the admin dashboard summary, computed per request.
type DashboardStats struct {
	TotalRevenue       decimal.Decimal           `json:"total_revenue"`
	TotalOrders        int64                     `json:"total_orders"`
	TotalUsers         int64                     `json:"total_users"`
	TotalProducts      int64                     `json:"total_products"`
	LowStockProducts   int64                     `json:"low_stock_products"`
	OrderStatusStats   map[OrderStatus]int64     `json:"order_status_stats"`
	FulfillmentStats   FulfillmentStats          `json:"fulfillment_stats"`
	OrdersPerDay       []DailyOrderCount         `json:"orders_per_day"`
	MonthlyRevenueData map[string]MonthlyRevenue `json:"monthly_revenue_data"`
	GeneratedAt        time.Time                 `json:"generated_at"`
}

// MonthKey formats t as the YYYY-MM key used in MonthlyRevenueData.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// DayKey formats t as the YYYY-MM-DD key used in OrdersPerDay.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
