package dto

import (
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
)

// StockInput is the writable part of a stock document. Status is always
// derived, so it is not accepted here.
type StockInput struct {
	ProductID   string               `json:"productId"`
	ProductName string               `json:"productName" binding:"required"`
	Type        string               `json:"type" binding:"required"`
	Variants    []model.StockVariant `json:"variants"`
	Details     map[string]any       `json:"details"`
	BatchNumber string               `json:"batchNumber"`
	Quality     string               `json:"quality"`
	Location    string               `json:"location"`
	Notes       string               `json:"notes"`
	Date        *time.Time           `json:"date"`
}
