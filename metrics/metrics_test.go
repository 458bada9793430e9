package metrics

import (
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/osuushi/navmesh/advanced"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObservesMesh(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg, "test")
	require.NoError(t, err)

	config := advanced.DefaultConfig(r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 100}))
	config.Observer = collector
	mesh, err := advanced.New(config)
	require.NoError(t, err)
	// The four domain corners
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.VerticesInserted))

	square := []r2.Point{{X: 40, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 60}, {X: 40, Y: 60}, {X: 40, Y: 40}}
	destroyed := mesh.Update(square, []int{len(square)}, []advanced.ObstacleID{1}, nil)
	assert.Equal(t, 8.0, testutil.ToFloat64(collector.VerticesInserted))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Updates))
	assert.Equal(t, float64(len(destroyed)), testutil.ToFloat64(collector.TrianglesDestroyed))

	mesh.Update(nil, nil, nil, []advanced.ObstacleID{1})
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.VerticesRemoved))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.Updates))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.UpdateDuration))
}

func TestCollectorCounts(t *testing.T) {
	collector, err := NewCollector(prometheus.NewRegistry(), "")
	require.NoError(t, err)

	collector.ObserveFlip()
	collector.ObserveFlip()
	collector.ObserveSupport()
	collector.ObserveUpdate(3*time.Millisecond, 7)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.Flips))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.SupportsCreated))
	assert.Equal(t, 7.0, testutil.ToFloat64(collector.TrianglesDestroyed))
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg, "dup")
	require.NoError(t, err)
	_, err = NewCollector(reg, "dup")
	assert.Error(t, err)
}
