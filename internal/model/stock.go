package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock types follow the processing stage of the fabric.
const (
	StockTypeGray    = "Gray Stock"
	StockTypeFactory = "Factory Stock"
	StockTypeDesign  = "Design Stock"
)

const (
	StockStatusOut        = "out"
	StockStatusLow        = "low"
	StockStatusAvailable  = "available"
	StockStatusProcessing = "processing"
)

// LowStockThreshold is the total quantity below which a stock is "low".
const LowStockThreshold = 100

var StockTypes = []string{StockTypeGray, StockTypeFactory, StockTypeDesign}

type Stock struct {
	BaseModel   `bson:",inline"`
	ProductID   *primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string              `bson:"productName" json:"productName"`
	Type        string              `bson:"type" json:"type"`
	Status      string              `bson:"status" json:"status"`
	Variants    []StockVariant      `bson:"variants" json:"variants"`
	Details     map[string]any      `bson:"details,omitempty" json:"details,omitempty"`
	BatchNumber string              `bson:"batchNumber,omitempty" json:"batchNumber,omitempty"`
	Quality     string              `bson:"quality,omitempty" json:"quality,omitempty"`
	Location    string              `bson:"location,omitempty" json:"location,omitempty"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Date        time.Time           `bson:"date" json:"date"`
}

type StockVariant struct {
	Color    string  `bson:"color" json:"color"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
}

// DeriveStockStatus is the single source of truth for Stock.Status.
func DeriveStockStatus(stockType string, total float64) string {
	switch {
	case total <= 0:
		return StockStatusOut
	case stockType == StockTypeFactory:
		return StockStatusProcessing
	case total < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusAvailable
	}
}

func (s *Stock) TotalQuantity() float64 {
	var total float64
	for _, v := range s.Variants {
		total += v.Quantity
	}
	return total
}

// RecomputeStatus refreshes Status from the current variants and returns it.
func (s *Stock) RecomputeStatus() string {
	s.Status = DeriveStockStatus(s.Type, s.TotalQuantity())
	return s.Status
}

// Variant returns the variant for color (case-insensitive) or nil.
func (s *Stock) Variant(color string) *StockVariant {
	for i := range s.Variants {
		if strings.EqualFold(s.Variants[i].Color, color) {
			return &s.Variants[i]
		}
	}
	return nil
}

func IsValidStockType(t string) bool {
	for _, st := range StockTypes {
		if st == t {
			return true
		}
	}
	return false
}
