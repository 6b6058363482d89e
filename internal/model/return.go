package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

type Return struct {
	BaseModel   `bson:",inline"`
	ReturnID    string             `bson:"returnId" json:"returnId"`
	OrderID     primitive.ObjectID `bson:"orderId" json:"orderId"`
	OrderNumber int64              `bson:"orderNumber" json:"orderNumber"`
	Customer    string             `bson:"customer" json:"customer"`
	Product     string             `bson:"product" json:"product"`
	Color       string             `bson:"color" json:"color"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	Reason      string             `bson:"reason" json:"reason"`
	Approved    bool               `bson:"approved" json:"approved"`
	Rejected    bool               `bson:"rejected" json:"rejected"`
	Status      string             `bson:"status" json:"status"`
	ProcessedAt *time.Time         `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
}

// FormatReturnID renders a sequence number as RET-000042.
func FormatReturnID(seq int64) string {
	return fmt.Sprintf("RET-%06d", seq)
}

func (r *Return) DeriveStatus() string {
	switch {
	case r.Approved:
		r.Status = ReturnStatusApproved
	case r.Rejected:
		r.Status = ReturnStatusRejected
	default:
		r.Status = ReturnStatusPending
	}
	return r.Status
}

func (r *Return) IsTerminal() bool {
	return r.Approved || r.Rejected
}
