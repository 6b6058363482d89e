package dto

import (
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
)

type Stats struct {
	Totals         Totals          `json:"totals"`
	Trends         Trends          `json:"trends"`
	LowStockAlerts []LowStockAlert `json:"lowStockAlerts"`
	LatestOrders   []model.Order   `json:"latestOrders"`
	LatestProducts []model.Product `json:"latestProducts"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

type Totals struct {
	Products  int64   `json:"products"`
	Customers int64   `json:"customers"`
	Orders    int64   `json:"orders"`
	Stocks    int64   `json:"stocks"`
	Revenue   float64 `json:"revenue"`
}

// Trend compares the current calendar month with the previous one.
type Trend struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Percent  float64 `json:"percent"`
}

type Trends struct {
	Orders    Trend `json:"orders"`
	Revenue   Trend `json:"revenue"`
	Customers Trend `json:"customers"`
}

type LowStockAlert struct {
	ProductID string  `json:"productId"`
	Product   string  `json:"product"`
	SKU       string  `json:"sku"`
	Color     string  `json:"color"`
	Stock     float64 `json:"stock"`
	MinStock  float64 `json:"minStock"`
}
