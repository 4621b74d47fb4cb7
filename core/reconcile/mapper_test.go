package reconcile

import (
	"errors"
	"testing"

	"api-mirror/core/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMapping(t *testing.T) {
	source := []entity.Metric{
		{ID: 1, SystemName: "hits"},
		{ID: 2, SystemName: "search"},
		{ID: 3, SystemName: "only_source"},
	}
	target := []entity.Metric{
		{ID: 30, SystemName: "only_target"},
		{ID: 20, SystemName: "search"},
		{ID: 10, SystemName: "hits"},
	}

	m := BuildMapping("metric", source, target, metricKeys, metricID)

	assert.Equal(t, 2, m.Len())
	id, err := m.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.True(t, m.Maps(2, 20))
	assert.False(t, m.Maps(2, 10))

	_, err = m.Lookup(3)
	assert.ErrorIs(t, err, ErrUnmappedReference)
	assert.Contains(t, err.Error(), "metric 3")
}

func TestBuildMapping_FirstTargetWins(t *testing.T) {
	source := []entity.Metric{{ID: 1, SystemName: "hits"}}
	target := []entity.Metric{{ID: 10, SystemName: "hits"}, {ID: 11, SystemName: "hits"}}

	m := BuildMapping("metric", source, target, metricKeys, metricID)

	id, err := m.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.Equal(t, 1, m.Len())
}

func TestMapping_EachFollowsTargetOrder(t *testing.T) {
	source := []entity.ApplicationPlan{{ID: 1, SystemName: "basic"}, {ID: 2, SystemName: "pro"}}
	target := []entity.ApplicationPlan{{ID: 20, SystemName: "pro"}, {ID: 10, SystemName: "basic"}}
	m := BuildMapping("application plan", source, target, planKeys, planID)

	var pairs [][2]int64
	err := m.Each(func(s, t int64) error {
		pairs = append(pairs, [2]int64{s, t})
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, [][2]int64{{2, 20}, {1, 10}}, pairs)
}

func TestMapping_EachStopsOnError(t *testing.T) {
	source := []entity.ApplicationPlan{{ID: 1, SystemName: "basic"}, {ID: 2, SystemName: "pro"}}
	m := BuildMapping("application plan", source, source, planKeys, planID)
	boom := errors.New("boom")

	calls := 0
	err := m.Each(func(_, _ int64) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
