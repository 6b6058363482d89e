package dto

type CustomerInput struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	City        string  `json:"city" binding:"required"`
	CreditLimit float64 `json:"creditLimit"`
	Notes       string  `json:"notes"`
}
