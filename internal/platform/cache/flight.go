package cache

import "golang.org/x/sync/singleflight"

// flightGroup is a typed singleflight.Group. A panicking fn releases its
// waiters and the panic is re-raised in the caller.
type flightGroup[V any] struct {
	group singleflight.Group
}

// Do runs fn once per key at a time. Callers arriving while fn runs wait and
// share its result; shared reports whether that happened.
func (g *flightGroup[V]) Do(key string, fn func() (V, error)) (V, error, bool) {
	raw, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	var zero V
	if err != nil {
		return zero, err, shared
	}
	val, ok := raw.(V)
	if !ok {
		return zero, nil, shared
	}
	return val, nil, shared
}
