package ports

import "context"

// Stats aggregates entity counts across all tenants.
type Stats struct {
	Tenants  int64 `json:"tenants"`
	Users    int64 `json:"users"`
	Projects int64 `json:"projects"`
	Tasks    int64 `json:"tasks"`
}

type StatsService interface {
	Counts(ctx context.Context) (Stats, error)
}
