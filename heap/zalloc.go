package heap

import "math"

// Calloc implements spec §4.5: allocate room for count elements of size
// bytes each, with overflow detection on the multiplication, and zero the
// returned payload. Either a zero count or a zero size yields a zero-length
// request, which Allocate already rejects with nil.
func (a *Allocator) Calloc(count, size int) []byte {
	if count < 0 || size < 0 {
		return nil
	}
	if count == 0 || size == 0 {
		return nil
	}
	if size > math.MaxInt/count {
		return nil
	}

	block := a.Allocate(count * size)
	if block == nil {
		return nil
	}
	clear(block)
	return block
}
