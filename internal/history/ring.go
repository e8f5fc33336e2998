// Package history provides bounded FIFO buffers for trails and diagnostic
// series. Buffers are output-only: models write into a Ring after a step
// and hand out a View, which has no mutating methods, to painters and
// metrics.
package history

// Ring is a fixed-capacity FIFO. Pushing onto a full ring evicts the oldest
// entry.
type Ring[T any] struct {
	buf   []T
	start int
	n     int
}

// NewRing returns an empty ring holding at most capacity entries.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

func (r *Ring[T]) Push(v T) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.start, r.n = 0, 0
}

func (r *Ring[T]) Len() int { return r.n }
func (r *Ring[T]) Cap() int { return len(r.buf) }

// At returns the i-th entry, oldest first.
func (r *Ring[T]) At(i int) T {
	return r.buf[(r.start+i)%len(r.buf)]
}

// View exposes the ring read-only.
func (r *Ring[T]) View() View[T] { return View[T]{r: r} }

// Clone returns an independent copy with the same contents and capacity.
func (r *Ring[T]) Clone() *Ring[T] {
	c := &Ring[T]{buf: make([]T, len(r.buf)), start: r.start, n: r.n}
	copy(c.buf, r.buf)
	return c
}

// View is a read-only window onto a Ring. The zero View is empty.
type View[T any] struct {
	r *Ring[T]
}

func (v View[T]) Len() int {
	if v.r == nil {
		return 0
	}
	return v.r.n
}

// At returns the i-th entry, oldest first.
func (v View[T]) At(i int) T { return v.r.At(i) }

// Last returns the newest entry.
func (v View[T]) Last() (T, bool) {
	if v.Len() == 0 {
		var zero T
		return zero, false
	}
	return v.r.At(v.r.n - 1), true
}

// Slice copies the contents, oldest first.
func (v View[T]) Slice() []T {
	out := make([]T, v.Len())
	for i := range out {
		out[i] = v.r.At(i)
	}
	return out
}

// Each calls fn for every entry, oldest first. age is 0 for the newest.
func (v View[T]) Each(fn func(age int, x T)) {
	n := v.Len()
	for i := 0; i < n; i++ {
		fn(n-1-i, v.r.At(i))
	}
}
