package dto

type AdminInput struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Role   string `json:"role"`
	Active *bool  `json:"active"`
}
