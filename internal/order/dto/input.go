package dto

import "time"

type OrderInput struct {
	CustomerID   string           `json:"customerId"`
	Customer     string           `json:"customer"`
	Status       string           `json:"status"`
	OrderDate    *time.Time       `json:"orderDate"`
	DeliveryDate *time.Time       `json:"deliveryDate"`
	Items        []OrderItemInput `json:"items"`
	// Notes is left unchanged on update when absent.
	Notes        *string          `json:"notes"`
}

type OrderItemInput struct {
	ProductID string  `json:"productId"`
	Product   string  `json:"product"`
	Color     string  `json:"color"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	StockID   string  `json:"stockId"`
}

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}
