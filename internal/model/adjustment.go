package model

import "time"

// Adjustment is one append-only ledger row. It lives in Postgres, not Mongo.
type Adjustment struct {
	ID           string    `db:"id" json:"id"`
	StockID      string    `db:"stock_id" json:"stockId"`
	Product      string    `db:"product" json:"product"`
	StockType    string    `db:"stock_type" json:"type"`
	Color        string    `db:"color" json:"color"`
	PrevQuantity float64   `db:"prev_quantity" json:"prevQuantity"`
	NewQuantity  float64   `db:"new_quantity" json:"newQuantity"`
	Reason       string    `db:"reason" json:"reason"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

func (a *Adjustment) Delta() float64 {
	return a.NewQuantity - a.PrevQuantity
}

// MovementBucket aggregates ledger rows falling into one time bucket.
type MovementBucket struct {
	Period      time.Time `db:"period" json:"period"`
	Adjustments int       `db:"adjustments" json:"adjustments"`
	Delta       float64   `db:"delta" json:"delta"`
}
