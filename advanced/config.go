package advanced

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	// The domain rectangle. Everything inserted must lie at least Epsilon inside
	// it.
	Extent r2.Rect
	// Minimum feature size. Points closer than this are the same vertex.
	Epsilon float64
	// How far a vertex may sit off the line through its two constrained
	// neighbours and still be fused away once it is no longer needed.
	CollinearMargin float64
	// Cell size of the nearest vertex grid. Zero picks one from the extent.
	CellSize float64
	// Iteration bound for every mesh walk. Zero scales it with the mesh size.
	WatchdogLimit int
	// Seeds the random choices of the point location walk
	Seed int64

	Logger   *zap.Logger
	Observer Observer
}

const (
	// Epsilon relative to the larger side of the extent
	defaultRelativeEpsilon = 1e-6
	// Cells per side of the nearest vertex grid
	defaultGridResolution = 64
	maxGridResolution     = 1024
)

func DefaultConfig(extent r2.Rect) Config {
	size := extent.Size()
	eps := defaultRelativeEpsilon * math.Max(size.X, size.Y)
	return Config{
		Extent:          extent,
		Epsilon:         eps,
		CollinearMargin: eps,
		Seed:            1,
		Logger:          zap.NewNop(),
	}
}

func (c Config) Validate() error {
	if c.Extent.IsEmpty() {
		return errors.New("extent is empty")
	}
	for _, v := range []float64{c.Extent.X.Lo, c.Extent.X.Hi, c.Extent.Y.Lo, c.Extent.Y.Hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("extent %v is not finite", c.Extent)
		}
	}
	if !(c.Epsilon > 0) {
		return errors.Errorf("epsilon must be positive, got %v", c.Epsilon)
	}
	size := c.Extent.Size()
	if 4*c.Epsilon >= math.Min(size.X, size.Y) {
		return errors.Errorf("epsilon %v is too large for extent %v", c.Epsilon, c.Extent)
	}
	if c.CollinearMargin < 0 {
		return errors.Errorf("collinear margin must not be negative, got %v", c.CollinearMargin)
	}
	if c.CellSize < 0 {
		return errors.Errorf("cell size must not be negative, got %v", c.CellSize)
	}
	if c.WatchdogLimit < 0 {
		return errors.Errorf("watchdog limit must not be negative, got %v", c.WatchdogLimit)
	}
	return nil
}
