package dto

type ReturnFilters struct {
	Status   string
	OrderID  string
	Search   string
	Page     int
	PageSize int
}
