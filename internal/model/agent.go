package model

// Agent is a field sales agent.
type Agent struct {
	BaseModel      `bson:",inline"`
	Name           string  `bson:"name" json:"name"`
	Phone          string  `bson:"phone" json:"phone"`
	Email          string  `bson:"email,omitempty" json:"email,omitempty"`
	City           string  `bson:"city,omitempty" json:"city,omitempty"`
	CommissionRate float64 `bson:"commissionRate" json:"commissionRate"`
	Active         bool    `bson:"active" json:"active"`
}
