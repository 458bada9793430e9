package advanced

// Bounds every walk over the mesh. A walk that runs away means the mesh is
// corrupt or the input is malformed, so tripping is fatal.
type watchdog struct {
	op    string
	n     int
	limit int
}

const minWatchdogLimit = 4096

func (m *Mesh) newWatchdog(op string) watchdog {
	limit := m.config.WatchdogLimit
	if limit <= 0 {
		limit = max(minWatchdogLimit, 64*m.quads.len())
	}
	return watchdog{op: op, limit: limit}
}

func (w *watchdog) tick() {
	w.n++
	if w.n > w.limit {
		fatalf("%s: watchdog tripped after %d iterations", w.op, w.limit)
	}
}
