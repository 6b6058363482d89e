package dto

import "time"

type StockFilters struct {
	Type      string
	Status    string
	Statuses  []string
	ProductID string
	// ProductName widens a ProductID match to stocks linked only by name.
	ProductName string
	Search      string
	Page        int
	PageSize    int
}

type Summary struct {
	TotalDocuments int64            `json:"totalDocuments"`
	TotalQuantity  float64          `json:"totalQuantity"`
	ByStatus       map[string]int64 `json:"byStatus"`
}

type CategoryBreakdown struct {
	Type          string  `json:"type"`
	Documents     int64   `json:"documents"`
	TotalQuantity float64 `json:"totalQuantity"`
}

type MovementReportFilters struct {
	Interval string // day, week or month
	From     *time.Time
	To       *time.Time
	StockID  string
}
