package reconcile

import (
	"context"
	"testing"

	"api-mirror/core/entity"
	"api-mirror/core/remote"
	"api-mirror/core/remote/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateServiceCopy(t *testing.T) {
	ctx := context.Background()
	source := memory.New(1000)
	target := memory.New(500000)
	sourceID := source.AddService(entity.Fields{
		entity.FieldName:             "Echo API",
		entity.FieldSystemName:       "echo",
		entity.FieldDeploymentOption: "hosted",
		"description":                "not copied",
	})

	created, err := CreateServiceCopy(ctx, source, target, sourceID, "")
	require.NoError(t, err)
	assert.Equal(t, "echo", created.SystemName)
	assert.Equal(t, "Echo API", created.Name)
	assert.NotContains(t, created.Extra, "description")

	metrics, err := target.ListMetrics(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.True(t, metrics[0].IsHits())

	renamed, err := CreateServiceCopy(ctx, source, target, sourceID, "echo_staging")
	require.NoError(t, err)
	assert.Equal(t, "echo_staging", renamed.SystemName)

	_, err = CreateServiceCopy(ctx, source, target, sourceID, "echo")
	assert.ErrorIs(t, err, remote.ErrRejected)

	_, err = CreateServiceCopy(ctx, source, target, 42, "")
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestCreateServiceCopy_ThenRun(t *testing.T) {
	f := newFixture(t)

	created, err := CreateServiceCopy(f.ctx, f.source, f.target, f.sourceID, "echo_mirror")
	require.NoError(t, err)

	report, err := New(f.source, f.target, f.sourceID, created.ID, nil, Options{}).Run(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Summary.CreatedMappingRules)
}
