package dashboard

// StatusBreakdown maps a status value to the number of entities in it
type StatusBreakdown map[string]int64

// EntitySummary carries the totals for one entity type
type EntitySummary struct {
	Total    int64           `json:"total"`
	ByStatus StatusBreakdown `json:"by_status"`
}

// Summary is the tenant-wide dashboard snapshot
type Summary struct {
	Companies EntitySummary `json:"companies"`
	Clients   EntitySummary `json:"clients"`
	Projects  EntitySummary `json:"projects"`
	Users     EntitySummary `json:"users"`
}
