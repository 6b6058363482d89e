package dto

type CreateAdjustmentInput struct {
	StockID     string  `json:"stockId" binding:"required"`
	Color       string  `json:"color" binding:"required"`
	NewQuantity float64 `json:"newQuantity"`
	Reason      string  `json:"reason" binding:"required"`
}
