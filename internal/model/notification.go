package model

import "time"

// Notification categories; each maps to one toggle in NotificationSettings.
const (
	CategoryNewOrder        = "newOrder"
	CategoryOrderConfirmed  = "orderConfirmed"
	CategoryLowStock        = "lowStock"
	CategoryStockAdjustment = "stockAdjustment"
	CategoryNewReturn       = "newReturn"
	CategoryReturnProcessed = "returnProcessed"
	CategoryNewCustomer     = "newCustomer"
	CategoryManual          = "manual"
)

const (
	MessageStatusSent    = "sent"
	MessageStatusPartial = "partial"
	MessageStatusFailed  = "failed"
	MessageStatusSkipped = "skipped"
)

// SettingsID is the _id of the singleton settings document.
const SettingsID = "default"

type WhatsAppMessage struct {
	BaseModel      `bson:",inline"`
	Message        string `bson:"message" json:"message"`
	RecipientCount int    `bson:"recipientCount" json:"recipientCount"`
	FailedCount    int    `bson:"failedCount" json:"failedCount"`
	Category       string `bson:"category" json:"category"`
	Status         string `bson:"status" json:"status"`
}

type NotificationSettings struct {
	ID              string    `bson:"_id" json:"-"`
	NewOrder        bool      `bson:"newOrder" json:"newOrder"`
	OrderConfirmed  bool      `bson:"orderConfirmed" json:"orderConfirmed"`
	LowStock        bool      `bson:"lowStock" json:"lowStock"`
	StockAdjustment bool      `bson:"stockAdjustment" json:"stockAdjustment"`
	NewReturn       bool      `bson:"newReturn" json:"newReturn"`
	ReturnProcessed bool      `bson:"returnProcessed" json:"returnProcessed"`
	NewCustomer     bool      `bson:"newCustomer" json:"newCustomer"`
	Manual          bool      `bson:"manual" json:"manual"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

func DefaultNotificationSettings() *NotificationSettings {
	return &NotificationSettings{
		ID:              SettingsID,
		NewOrder:        true,
		OrderConfirmed:  true,
		LowStock:        true,
		StockAdjustment: true,
		NewReturn:       true,
		ReturnProcessed: true,
		NewCustomer:     true,
		Manual:          true,
	}
}

// Enabled reports whether category is switched on. Unknown categories are off.
func (s *NotificationSettings) Enabled(category string) bool {
	switch category {
	case CategoryNewOrder:
		return s.NewOrder
	case CategoryOrderConfirmed:
		return s.OrderConfirmed
	case CategoryLowStock:
		return s.LowStock
	case CategoryStockAdjustment:
		return s.StockAdjustment
	case CategoryNewReturn:
		return s.NewReturn
	case CategoryReturnProcessed:
		return s.ReturnProcessed
	case CategoryNewCustomer:
		return s.NewCustomer
	case CategoryManual:
		return s.Manual
	}
	return false
}
