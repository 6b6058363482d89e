package dto

type MessageFilters struct {
	Category string
	Status   string
	Page     int
	PageSize int
}
