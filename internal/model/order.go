package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

type Order struct {
	BaseModel     `bson:",inline"`
	OrderNumber   int64               `bson:"orderNumber" json:"orderNumber"`
	CustomerID    *primitive.ObjectID `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Customer      string              `bson:"customer" json:"customer"`
	CustomerCity  string              `bson:"-" json:"customerCity,omitempty"`
	Status        string              `bson:"status" json:"status"`
	OrderDate     time.Time           `bson:"orderDate" json:"orderDate"`
	DeliveryDate  *time.Time          `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	Items         []OrderItem         `bson:"items" json:"items"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	StockDeducted bool                `bson:"stockDeducted" json:"stockDeducted"`
}

type OrderItem struct {
	ProductID *primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	Product   string              `bson:"product" json:"product"`
	Color     string              `bson:"color" json:"color"`
	Quantity  float64             `bson:"quantity" json:"quantity"`
	Unit      string              `bson:"unit" json:"unit"`
	Price     float64             `bson:"price" json:"price"`
	StockID   *primitive.ObjectID `bson:"stockId,omitempty" json:"stockId,omitempty"`
}

func (i OrderItem) Amount() decimal.Decimal {
	return decimal.NewFromFloat(i.Quantity).Mul(decimal.NewFromFloat(i.Price))
}

// TotalAmount is Σ quantity × price over the line items.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Amount())
	}
	return total
}

// IsDelivered reports a confirmed order whose delivery date has passed.
func (o *Order) IsDelivered(now time.Time) bool {
	return o.Status == OrderStatusConfirmed && o.DeliveryDate != nil && !o.DeliveryDate.After(now)
}
