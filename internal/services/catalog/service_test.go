package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgwatch/internal/domain"
	"esgwatch/internal/ports"
	"esgwatch/internal/store"
)

func TestCatalog(t *testing.T) {
	st := store.New()
	svc := New(st)

	_, err := svc.Categories(context.Background())
	assert.ErrorIs(t, err, ports.ErrLoading)

	require.NoError(t, st.SetCategories([]domain.EsgCategory{{ID: "social", Name: "Social"}}))
	require.NoError(t, st.SetSeverities(nil))

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Social", cats[0].Name)

	sevs, err := svc.Severities(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sevs)
	assert.Empty(t, sevs)
}
