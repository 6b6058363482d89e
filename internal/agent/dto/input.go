package dto

type AgentInput struct {
	Name           string  `json:"name" binding:"required"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	City           string  `json:"city"`
	CommissionRate float64 `json:"commissionRate"`
	Active         *bool   `json:"active"`
}
