package model

const (
	AdminRoleOwner   = "owner"
	AdminRoleManager = "manager"
	AdminRoleStaff   = "staff"
)

// Admin is a notification recipient.
type Admin struct {
	BaseModel `bson:",inline"`
	Name      string `bson:"name" json:"name"`
	Phone     string `bson:"phone" json:"phone"`
	Role      string `bson:"role" json:"role"`
	Active    bool   `bson:"active" json:"active"`
}

func IsValidAdminRole(role string) bool {
	switch role {
	case AdminRoleOwner, AdminRoleManager, AdminRoleStaff:
		return true
	}
	return false
}
