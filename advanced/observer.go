package advanced

import "time"

// An Observer is told about the work a mesh does. Implementations must be
// cheap, since some of these fire inside the innermost loops.
type Observer interface {
	ObserveFlip()
	ObserveVertexInserted()
	ObserveVertexRemoved()
	// A support vertex was created to resolve a crossing between constraints
	ObserveSupport()
	ObserveUpdate(elapsed time.Duration, destroyed int)
}

type nopObserver struct{}

func (nopObserver) ObserveFlip() {}
func (nopObserver) ObserveVertexInserted() {}
func (nopObserver) ObserveVertexRemoved() {}
func (nopObserver) ObserveSupport() {}
func (nopObserver) ObserveUpdate(time.Duration, int) {}
