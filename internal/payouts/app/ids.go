package app

import "time"

// idGenerator hands out millisecond timestamps, bumping past the last id
// when two requests land in the same millisecond or the clock steps back.
// Callers serialize access.
type idGenerator struct {
	last int64
}

func (g *idGenerator) next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
