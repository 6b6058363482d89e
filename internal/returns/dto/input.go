package dto

type CreateReturnInput struct {
	OrderID  string  `json:"orderId" binding:"required"`
	Customer string  `json:"customer"`
	Product  string  `json:"product" binding:"required"`
	Color    string  `json:"color"`
	Quantity float64 `json:"quantity"`
	Reason   string  `json:"reason"`
}
