package dto

import (
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
)

type AdjustmentFilters struct {
	StockID  string
	Product  string
	Color    string
	Page     int
	PageSize int
}

const (
	IntervalDay   = "day"
	IntervalWeek  = "week"
	IntervalMonth = "month"
)

type ReportFilters struct {
	Interval string
	From     *time.Time
	To       *time.Time
	StockID  string
}

type AdjustmentResult struct {
	Adjustment *model.Adjustment `json:"adjustment"`
	Stock      *model.Stock      `json:"stock"`
}
