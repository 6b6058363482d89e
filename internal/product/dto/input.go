package dto

import "github.com/fekuna/textile-erp-service/internal/model"

type ProductInput struct {
	Name        string                 `json:"name" binding:"required"`
	Category    string                 `json:"category"`
	Unit        string                 `json:"unit"`
	Description string                 `json:"description"`
	Variants    []model.ProductVariant `json:"variants"`
	Tags        []string               `json:"tags"`
	Images      []string               `json:"images"`
	MinStock    float64                `json:"minStock"`
	MaxStock    float64                `json:"maxStock"`
}

type RepairInput struct {
	OldName string `json:"oldName"`
}
