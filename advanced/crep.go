package advanced

import "slices"

// A Crep is the sorted set of obstacles bordering an edge. An edge is
// constrained iff its crep is non-empty; unconstrained edges hold nil.
type Crep []ObstacleID

func (c Crep) Contains(id ObstacleID) bool {
	_, found := slices.BinarySearch(c, id)
	return found
}

func (c Crep) Equal(other Crep) bool {
	return slices.Equal(c, other)
}

func (c Crep) add(id ObstacleID) Crep {
	i, found := slices.BinarySearch(c, id)
	if found {
		return c
	}
	return slices.Insert(c, i, id)
}

func (c Crep) remove(id ObstacleID) Crep {
	i, found := slices.BinarySearch(c, id)
	if !found {
		return c
	}
	return slices.Delete(c, i, i+1)
}

// Recycles the backing arrays of creps, since constraints come and go
// constantly while obstacles move.
type crepPool struct {
	free []Crep
	// Number of creps handed out and not yet returned
	outstanding int
}

func (p *crepPool) get() Crep {
	p.outstanding++
	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free = p.free[:n-1]
		return c[:0]
	}
	return make(Crep, 0, 2)
}

func (p *crepPool) clone(c Crep) Crep {
	return append(p.get(), c...)
}

func (p *crepPool) put(c Crep) {
	if c == nil {
		return
	}
	p.outstanding--
	p.free = append(p.free, c[:0])
}

func (p *crepPool) reset() {
	p.free = nil
	p.outstanding = 0
}
