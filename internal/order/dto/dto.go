package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderFilters struct {
	Status     string
	Customer   string
	CustomerID *primitive.ObjectID
	Search     string
	From       *time.Time
	To         *time.Time
	// ProductID and ProductName select orders with a matching line item.
	ProductID   *primitive.ObjectID
	ProductName string
	Page        int
	PageSize    int
}

type MonthlySales struct {
	Month   int     `json:"month"`
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}
