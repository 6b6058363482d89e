package model

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ProductUnits = []string{"meter", "yard", "kg", "piece", "roll"}

type Product struct {
	BaseModel   `bson:",inline"`
	Name        string           `bson:"name" json:"name"`
	SKU         string           `bson:"sku" json:"sku"`
	Category    string           `bson:"category" json:"category"`
	Unit        string           `bson:"unit" json:"unit"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Variants    []ProductVariant `bson:"variants" json:"variants"`
	Tags        []string         `bson:"tags" json:"tags"`
	Images      []string         `bson:"images" json:"images"`
	MinStock    float64          `bson:"minStock" json:"minStock"`
	MaxStock    float64          `bson:"maxStock" json:"maxStock"`
}

type ProductVariant struct {
	Color string  `bson:"color" json:"color"`
	Price float64 `bson:"price" json:"price"`
	Stock float64 `bson:"stock" json:"stock"`
}

// SKUFromID derives the product code from the document id: "TX-" plus the
// last six hex digits, upper-cased.
func SKUFromID(id primitive.ObjectID) string {
	hex := id.Hex()
	return "TX-" + strings.ToUpper(hex[len(hex)-6:])
}

func (p *Product) Colors() []string {
	colors := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		colors = append(colors, v.Color)
	}
	return colors
}

func (p *Product) TotalStock() float64 {
	var total float64
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

func IsValidUnit(unit string) bool {
	for _, u := range ProductUnits {
		if u == unit {
			return true
		}
	}
	return false
}
