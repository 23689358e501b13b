package incidents

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"esgwatch/internal/critical"
	"esgwatch/internal/domain"
	"esgwatch/internal/ports"
	"esgwatch/internal/present"
	"esgwatch/internal/store"
	"esgwatch/internal/taxonomy"
	"esgwatch/internal/timeline"
)

type Service struct {
	state    *store.State
	selector *critical.Selector
	now      func() time.Time
	log      *zap.Logger
}

// New wires the service. A nil clock means time.Now.
func New(state *store.State, selector *critical.Selector, now func() time.Time, log *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{state: state, selector: selector, now: now, log: log}
}

func (s *Service) Timeline(ctx context.Context, f timeline.Filter, selected string) (present.Timeline, error) {
	snap := s.state.Snapshot()
	if err := snap.Ready(ports.ResourceIncidents); err != nil {
		return present.Timeline{}, err
	}
	reg := taxonomy.New(snap.Categories, snap.Severities)

	sess := timeline.NewSession(snap.Incidents)
	sess.SetDateRange(f.Start, f.End)
	sess.SetTitle(f.Title)
	sess.SetCategory(f.Category)
	if f.Subcategory != "" {
		sess.SetSubcategory(f.Subcategory)
	}
	sess.SetSeverity(f.Severity)

	view := sess.View()
	out := present.Timeline{
		Incidents: make([]present.IncidentRow, 0, len(view)),
		Total:     len(snap.Incidents),
		Matched:   len(view),
	}
	for _, inc := range view {
		out.Incidents = append(out.Incidents, present.IncidentRow{
			Incident:      inc,
			SeverityRank:  reg.Rank(inc.Severity),
			SeverityColor: present.SeverityColor(inc.Severity),
		})
	}
	if selected != "" && sess.Select(selected) {
		inc, _ := sess.Selected()
		d := detail(inc, reg)
		out.Selected = &d
	}
	return out, nil
}

func (s *Service) Detail(ctx context.Context, id string) (present.IncidentDetail, error) {
	snap := s.state.Snapshot()
	if err := snap.Ready(ports.ResourceIncidents); err != nil {
		return present.IncidentDetail{}, err
	}
	inc, ok := snap.Incident(id)
	if !ok {
		return present.IncidentDetail{}, fmt.Errorf("incident %q: %w", id, ports.ErrNotFound)
	}
	return detail(inc, taxonomy.New(snap.Categories, snap.Severities)), nil
}

// Critical highlights recent serious incidents. It reads the dedicated feed
// and falls back to the full incident list when that feed is unavailable.
func (s *Service) Critical(ctx context.Context) ([]present.CriticalRow, error) {
	snap := s.state.Snapshot()
	var candidates []domain.CriticalIncident
	if err := snap.Ready(ports.ResourceCritical); err == nil {
		candidates = snap.Critical
	} else if snap.Ready(ports.ResourceIncidents) == nil {
		s.log.Debug("critical feed unavailable, deriving from incidents", zap.Error(err))
		candidates = critical.FromIncidents(snap.Incidents)
	} else {
		return nil, err
	}

	picked := s.selector.Select(candidates, s.now())
	out := make([]present.CriticalRow, 0, len(picked))
	for _, ci := range picked {
		out = append(out, present.CriticalRow{
			CriticalIncident: ci,
			SeverityColor:    present.SeverityColor(ci.Severity),
		})
	}
	return out, nil
}

func detail(inc domain.Incident, reg *taxonomy.Registry) present.IncidentDetail {
	d := present.IncidentDetail{
		ID:                  inc.ID,
		Title:               inc.Title,
		Date:                inc.Date,
		Category:            inc.Category,
		CategoryName:        reg.CategoryName(inc.Category),
		Subcategory:         present.OrNA(inc.Subcategory),
		SubcategoryName:     present.NotAvailable,
		Severity:            inc.Severity,
		SeverityName:        reg.SeverityName(inc.Severity),
		SeverityColor:       present.SeverityColor(inc.Severity),
		Description:         inc.Description,
		DetailedDescription: present.OrNA(inc.DetailedDescription),
		Location:            inc.Location,
		RiskScoreImpact:     inc.RiskScoreImpact,
		Sources:             make([]present.SourceLink, 0, len(inc.Sources)),
	}
	if inc.Subcategory != "" {
		d.SubcategoryName = reg.SubcategoryName(inc.Category, inc.Subcategory)
	}
	for _, src := range inc.Sources {
		d.Sources = append(d.Sources, present.SourceLink{
			Title:       src.Title,
			URL:         src.URL,
			Publisher:   publisher(src.URL),
			PublishDate: present.OrNA(src.PublishDate),
		})
	}
	if len(d.Sources) == 0 {
		d.SourcesNote = present.NoSources
	}
	return d
}

// publisher reduces a source URL to its registrable domain, so that
// news.bbc.co.uk and www.bbc.co.uk both read bbc.co.uk.
func publisher(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil || u.Hostname() == "" {
		return present.NotAvailable
	}
	host := u.Hostname()
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}
