package parallel

import (
	"math/bits"
	"sync/atomic"
)

// BandSet records which bands of a plan have been composited, using an
// atomic bitmap with one bit per band.
//
// Mark reports whether it set a new bit and whether that bit was the last
// one missing, so a caller counts each band once even if a result is
// delivered twice, and exactly one caller sees the plan complete. All
// methods are safe for concurrent use.
type BandSet struct {
	// words holds the bitmap, 64 bands per word.
	words []atomic.Uint64

	// n is the number of bands tracked.
	n int

	// marked counts distinct bands marked so far.
	marked atomic.Int64
}

// NewBandSet creates a set tracking n bands, all unmarked.
// Returns nil if n is negative.
func NewBandSet(n int) *BandSet {
	if n < 0 {
		return nil
	}
	return &BandSet{
		words: make([]atomic.Uint64, (n+63)/64),
		n:     n,
	}
}

// Mark sets the bit for band i. added is true only for the call that changed
// the bit from unset to set; repeated or out-of-range marks return false.
// last is true for the single call that completed the set.
func (s *BandSet) Mark(i int) (added, last bool) {
	if i < 0 || i >= s.n {
		return false, false
	}
	bit := uint64(1) << (i & 63)
	old := s.words[i/64].Or(bit)
	if old&bit != 0 {
		return false, false
	}
	return true, s.marked.Add(1) == int64(s.n)
}

// Count returns the number of marked bands.
func (s *BandSet) Count() int {
	return int(s.marked.Load())
}

// Full reports whether every band is marked.
func (s *BandSet) Full() bool {
	return s.Count() == s.n
}

// Len returns the number of bands tracked.
func (s *BandSet) Len() int {
	return s.n
}

// Missing returns the indices of unmarked bands in ascending order.
func (s *BandSet) Missing() []int {
	var missing []int
	for w := range s.words {
		// Invert so unmarked bands become set bits.
		word := ^s.words[w].Load()
		for word != 0 {
			b := bits.TrailingZeros64(word)
			i := w*64 + b
			if i >= s.n {
				break
			}
			missing = append(missing, i)
			word &^= 1 << b
		}
	}
	return missing
}
