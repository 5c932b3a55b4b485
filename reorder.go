package wiktscan

// A ReorderBuffer puts back in order values that finish out of order.
//
// Sequence numbers start at zero and must each be pushed exactly once.
// It is not safe for concurrent use; it belongs to whoever consumes the
// results.
type ReorderBuffer[T any] struct {
	next    int64
	pending map[int64]T
}

// NewReorderBuffer gets an empty buffer expecting sequence zero first.
func NewReorderBuffer[T any]() *ReorderBuffer[T] {
	return &ReorderBuffer[T]{pending: map[int64]T{}}
}

// Push adds the value for seq and returns every value that is now
// ready, in sequence order.  The result is empty while a gap remains
// before seq.
func (b *ReorderBuffer[T]) Push(seq int64, v T) []T {
	if seq != b.next {
		b.pending[seq] = v
		return nil
	}
	rv := []T{v}
	b.next++
	for {
		v, ok := b.pending[b.next]
		if !ok {
			return rv
		}
		delete(b.pending, b.next)
		rv = append(rv, v)
		b.next++
	}
}

// Pending is the number of values held back waiting for a gap to fill.
func (b *ReorderBuffer[T]) Pending() int {
	return len(b.pending)
}
