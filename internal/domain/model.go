package domain

// Records as served by the risk feeds. JSON names follow the feed documents so
// the same types decode the source and encode the API.

type SourceRef struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishDate string `json:"publishDate,omitempty"`
}

type Incident struct {
	ID                  string      `json:"id" validate:"required"`
	Title               string      `json:"title"`
	Date                string      `json:"date"` // ISO-8601, see ParseDate
	Category            string      `json:"category"`
	Subcategory         string      `json:"subcategory,omitempty"`
	Severity            string      `json:"severity"`
	Description         string      `json:"description"`
	DetailedDescription string      `json:"detailedDescription,omitempty"`
	Location            string      `json:"location"`
	RiskScoreImpact     RiskImpact  `json:"riskScoreImpact"`
	Sources             []SourceRef `json:"sources,omitempty"`
}

// Critical projects the incident onto the highlight shape.
func (i Incident) Critical() CriticalIncident {
	return CriticalIncident{
		ID:              i.ID,
		Title:           i.Title,
		Date:            i.Date,
		Category:        i.Category,
		Severity:        i.Severity,
		Location:        i.Location,
		Summary:         i.Description,
		RiskScoreImpact: ImpactScore(i.RiskScoreImpact.Scalar()),
	}
}

// CriticalIncident is the reduced record of the critical-incidents feed. Its ID
// keys into the full incident collection.
type CriticalIncident struct {
	ID              string      `json:"id" validate:"required"`
	Title           string      `json:"title"`
	Date            string      `json:"date"`
	Category        string      `json:"category"`
	Severity        string      `json:"severity"`
	Location        string      `json:"location"`
	Summary         string      `json:"summary"`
	RiskScoreImpact ImpactScore `json:"riskScoreImpact"`
}

type Subcategory struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

type EsgCategory struct {
	ID            string        `json:"id" validate:"required"`
	Name          string        `json:"name" validate:"required"`
	Description   string        `json:"description,omitempty"`
	Color         string        `json:"color,omitempty"`
	Subcategories []Subcategory `json:"subcategories" validate:"dive"`
}

type SeverityLevel struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type HistoricalPoint struct {
	Date          string  `json:"date"`
	Overall       float64 `json:"overall"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

type Trend struct {
	Direction  string  `json:"direction"`
	Percentage float64 `json:"percentage"`
}

type CategoryScore struct {
	Score            float64 `json:"score"`
	Trend            string  `json:"trend"`
	ChangePercentage float64 `json:"changePercentage"`
}

type CategoryScores struct {
	Environmental CategoryScore `json:"environmental"`
	Social        CategoryScore `json:"social"`
	Governance    CategoryScore `json:"governance"`
}

// RiskOverview is the company-level summary document.
type RiskOverview struct {
	CompanyID        string         `json:"companyId"`
	CompanyName      string         `json:"companyName"`
	OverallRiskScore float64        `json:"overallRiskScore"`
	Trend            Trend          `json:"trend"`
	LastUpdated      string         `json:"lastUpdated"`
	Categories       CategoryScores `json:"categories"`
}
