package ports

import "context"

// Resource names one document of the risk feed.
type Resource string

const (
	ResourceOverview   Resource = "company-risk-overview"
	ResourceIncidents  Resource = "incidents"
	ResourceHistory    Resource = "risk-score-history"
	ResourceCategories Resource = "esg-categories"
	ResourceSeverities Resource = "severity-levels"
	ResourceCritical   Resource = "critical-incidents"
)

// Resources lists every feed document in load and reporting order.
var Resources = []Resource{
	ResourceOverview,
	ResourceIncidents,
	ResourceHistory,
	ResourceCategories,
	ResourceSeverities,
	ResourceCritical,
}

func (r Resource) Valid() bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// Source fetches the raw JSON body of one feed document.
type Source interface {
	Fetch(ctx context.Context, r Resource) ([]byte, error)
}

// DocumentStore is a Source that can also be written, used to seed SQL
// backed feeds.
type DocumentStore interface {
	Source
	Put(ctx context.Context, r Resource, body []byte) error
}
