package state

// cacheElement is a lazily recomputed slice of derived quantities, one
// entry per joint or per body. Setters mark it dirty; the update pass
// that fills it marks it clean. A pass may fill several elements at once
// and must clear every flag it satisfies.
type cacheElement[T any] struct {
	data  []T
	dirty bool
}

func newCacheElement[T any](n int) cacheElement[T] {
	return cacheElement[T]{data: make([]T, n), dirty: true}
}

func (c *cacheElement[T]) invalidate() { c.dirty = true }

// get returns the cached slice, running update first if the element is
// dirty. update must fill data and clear the flag.
func (c *cacheElement[T]) get(update func()) []T {
	if c.dirty {
		update()
	}
	return c.data
}
