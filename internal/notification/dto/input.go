package dto

type SendMessageInput struct {
	Message string `json:"message" binding:"required"`
}

// SettingsInput carries a partial update; nil toggles are left unchanged.
type SettingsInput struct {
	NewOrder        *bool `json:"newOrder"`
	OrderConfirmed  *bool `json:"orderConfirmed"`
	LowStock        *bool `json:"lowStock"`
	StockAdjustment *bool `json:"stockAdjustment"`
	NewReturn       *bool `json:"newReturn"`
	ReturnProcessed *bool `json:"returnProcessed"`
	NewCustomer     *bool `json:"newCustomer"`
	Manual          *bool `json:"manual"`
}
