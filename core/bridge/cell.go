package bridge

import "sync"

// Cell is a lazily initialized, memoized value. The first Get runs init and
// every later Get returns the same value and error for the life of the
// process: the first caller wins. Cells are not re-entrant; calling Get on a
// cell from inside its own init deadlocks.
type Cell[T any] struct {
	once sync.Once
	init func() (T, error)
	val  T
	err  error
}

func NewCell[T any](init func() (T, error)) *Cell[T] {
	return &Cell[T]{init: init}
}

func (c *Cell[T]) Get() (T, error) {
	c.once.Do(func() {
		c.val, c.err = c.init()
		c.init = nil
	})
	return c.val, c.err
}

