package client

import "sync/atomic"

// Generation guards against a superseded fetch clobbering newer state. Each
// fetch tags itself with Next() at dispatch; when it completes, the caller
// applies the result only if Latest still reports true for that tag.
//
//	gen := guard.Next()
//	cars, err := api.GetCars(ctx, query)
//	if guard.Latest(gen) {
//		// apply cars
//	}
type Generation struct {
	current atomic.Int64
}

// Next marks the start of a new fetch and returns its tag. Every earlier
// tag becomes stale.
func (g *Generation) Next() int64 {
	return g.current.Add(1)
}

// Latest reports whether gen is still the most recently dispatched fetch.
func (g *Generation) Latest(gen int64) bool {
	return g.current.Load() == gen
}
