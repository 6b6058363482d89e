package dto

import "go.mongodb.org/mongo-driver/bson/primitive"

type ProductFilters struct {
	Category    string
	SearchQuery string // name, sku, category, tags
	IDs         []primitive.ObjectID
	SortBy      string // name, sku, category, createdAt
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

type ProductName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type TopProduct struct {
	Product  string  `json:"product"`
	Orders   int     `json:"orders"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type RepairResult struct {
	Product  string `json:"product"`
	OldName  string `json:"oldName"`
	Modified int64  `json:"modified"`
}

type StockReconciliation struct {
	StockID string   `json:"stockId"`
	Type    string   `json:"type"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	// Kept lists colors missing from the product that still hold quantity.
	Kept    []string `json:"kept"`
	Status  string   `json:"status"`
	Changed bool     `json:"changed"`
}
