package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomerFilters struct {
	Type   string
	City   string
	Search string

	// IDs and Names select customers matching either list; used for joins.
	IDs   []primitive.ObjectID
	Names []string

	// CreatedFrom is inclusive, CreatedTo exclusive.
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	Page     int
	PageSize int
}

type TopCustomer struct {
	CustomerID string  `json:"customerId,omitempty"`
	Customer   string  `json:"customer"`
	City       string  `json:"city,omitempty"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
}
