package model

const (
	CustomerTypeWholesale = "wholesale"
	CustomerTypeRetail    = "retail"
)

// Cities is the closed set of cities a customer can be registered in.
var Cities = []string{
	"Karachi", "Lahore", "Faisalabad", "Islamabad", "Rawalpindi", "Multan",
	"Hyderabad", "Peshawar", "Quetta", "Sialkot", "Gujranwala", "Sargodha",
}

type Customer struct {
	BaseModel   `bson:",inline"`
	Name        string  `bson:"name" json:"name"`
	Type        string  `bson:"type" json:"type"`
	Phone       string  `bson:"phone" json:"phone"`
	Email       string  `bson:"email,omitempty" json:"email,omitempty"`
	Address     string  `bson:"address,omitempty" json:"address,omitempty"`
	City        string  `bson:"city" json:"city"`
	CreditLimit float64 `bson:"creditLimit" json:"creditLimit"`
	Notes       string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

func IsValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

func IsValidCustomerType(t string) bool {
	return t == CustomerTypeWholesale || t == CustomerTypeRetail
}
