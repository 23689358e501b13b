package overview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgwatch/internal/domain"
	"esgwatch/internal/ports"
	"esgwatch/internal/present"
	"esgwatch/internal/store"
)

func TestOverview(t *testing.T) {
	st := store.New()
	svc := New(st)

	_, err := svc.Overview(context.Background())
	assert.ErrorIs(t, err, ports.ErrLoading)

	st.SetOverview(domain.RiskOverview{CompanyID: "C-1", CompanyName: "Acme", OverallRiskScore: 64})
	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", o.CompanyName)
	assert.Equal(t, present.BandMedium, o.Overall.Band)

	st.MarkError(ports.ResourceOverview, "Simulated API failure for risk data")
	_, err = svc.Overview(context.Background())
	assert.EqualError(t, err, "company-risk-overview: Simulated API failure for risk data")
}
