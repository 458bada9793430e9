package advanced

// Records live in fixed size blocks, so a pointer returned by get stays valid
// for as long as the slot is alive, no matter how much the arena grows.
const arenaBlockSize = 256

// An arena hands out int32 slots and recycles released ones through a free
// list. Released slots are zeroed again when they are reused.
type arena[T any] struct {
	blocks [][]T
	alive  []bool
	free   []int32
	size   int32
	count  int
}

func (a *arena[T]) alloc() (int32, *T) {
	var id int32
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = a.size
		if int(id)/arenaBlockSize == len(a.blocks) {
			a.blocks = append(a.blocks, make([]T, arenaBlockSize))
		}
		a.size++
		a.alive = append(a.alive, false)
	}
	a.alive[id] = true
	a.count++
	record := a.get(id)
	var zero T
	*record = zero
	return id, record
}

func (a *arena[T]) get(id int32) *T {
	return &a.blocks[id/arenaBlockSize][id%arenaBlockSize]
}

func (a *arena[T]) release(id int32) {
	if !a.isAlive(id) {
		fatalf("double release of arena slot %d", id)
	}
	a.alive[id] = false
	a.free = append(a.free, id)
	a.count--
}

func (a *arena[T]) isAlive(id int32) bool {
	return id >= 0 && id < a.size && a.alive[id]
}

// Number of live slots
func (a *arena[T]) len() int { return a.count }

// Drop every block. The arena is usable again afterwards, starting empty.
func (a *arena[T]) reset() {
	a.blocks = nil
	a.alive = nil
	a.free = nil
	a.size = 0
	a.count = 0
}
