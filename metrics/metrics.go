// Package metrics exports the work done by navmeshes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/osuushi/navmesh/advanced"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements advanced.Observer. One collector may be shared by any
// number of meshes.
type Collector struct {
	Flips              prometheus.Counter
	VerticesInserted   prometheus.Counter
	VerticesRemoved    prometheus.Counter
	SupportsCreated    prometheus.Counter
	TrianglesDestroyed prometheus.Counter
	Updates            prometheus.Counter
	UpdateDuration     prometheus.Histogram
}

var _ advanced.Observer = (*Collector)(nil)

// NewCollector creates the metrics under the given namespace and registers
// them on reg.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "navmesh",
			Name:      name,
			Help:      help,
		})
	}
	c := &Collector{
		Flips:              counter("flips_total", "Edge flips performed to restore the Delaunay property."),
		VerticesInserted:   counter("vertices_inserted_total", "Vertices added to the triangulation."),
		VerticesRemoved:    counter("vertices_removed_total", "Vertices removed from the triangulation."),
		SupportsCreated:    counter("supports_created_total", "Support vertices created where constraints cross."),
		TrianglesDestroyed: counter("triangles_destroyed_total", "Faces reported destroyed by updates."),
		Updates:            counter("updates_total", "Batch updates applied."),
		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "navmesh",
			Name:      "update_duration_seconds",
			Help:      "Time spent applying batch updates.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
	for _, collector := range []prometheus.Collector{
		c.Flips, c.VerticesInserted, c.VerticesRemoved, c.SupportsCreated,
		c.TrianglesDestroyed, c.Updates, c.UpdateDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) ObserveFlip() { c.Flips.Inc() }

func (c *Collector) ObserveVertexInserted() { c.VerticesInserted.Inc() }

func (c *Collector) ObserveVertexRemoved() { c.VerticesRemoved.Inc() }

func (c *Collector) ObserveSupport() { c.SupportsCreated.Inc() }

func (c *Collector) ObserveUpdate(elapsed time.Duration, destroyed int) {
	c.Updates.Inc()
	c.TrianglesDestroyed.Add(float64(destroyed))
	c.UpdateDuration.Observe(elapsed.Seconds())
}
