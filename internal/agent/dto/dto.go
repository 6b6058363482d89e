package dto

type AgentFilters struct {
	City     string
	Active   *bool
	Search   string
	Page     int
	PageSize int
}
