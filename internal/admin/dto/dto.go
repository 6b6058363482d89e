package dto

type AdminFilters struct {
	Role     string
	Active   *bool // nil means both
	Search   string
	Page     int
	PageSize int
}
