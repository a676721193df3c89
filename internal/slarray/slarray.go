// Package slarray implements SLArray: a counter array that
// spends one byte per slot in the common case and promotes overflowing
// slots into a sparse side table, so the bulk of the array never pays for
// wide counters it does not need.
package slarray

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

const sentinel = 255

// SLArray is a counter array of fixed length. Reading a slot whose byte
// has reached the sentinel returns its promoted count from overflow
// instead of the byte value.
type SLArray struct {
	bytes    []byte
	overflow *treemap.Map // int index -> uint64 promoted count
}

// New allocates an SLArray of length n, all counters zero.
func New(n int) *SLArray {
	return &SLArray{
		bytes:    make([]byte, n),
		overflow: treemap.NewWith(utils.IntComparator),
	}
}

// Len returns the number of counters.
func (s *SLArray) Len() int { return len(s.bytes) }

// Get returns the current count at index i.
func (s *SLArray) Get(i int) uint64 {
	if s.bytes[i] != sentinel {
		return uint64(s.bytes[i])
	}
	v, _ := s.overflow.Get(i)
	return v.(uint64)
}

// Increment bumps the counter at index i by one, promoting it into the
// overflow map on the transition from 254 to 255.
func (s *SLArray) Increment(i int) {
	if s.bytes[i] < sentinel-1 {
		s.bytes[i]++
		return
	}
	if s.bytes[i] == sentinel-1 {
		s.bytes[i] = sentinel
		s.overflow.Put(i, uint64(sentinel))
		return
	}
	v, _ := s.overflow.Get(i)
	s.overflow.Put(i, v.(uint64)+1)
}

// Clear releases all storage held by the array.
func (s *SLArray) Clear() {
	s.bytes = nil
	s.overflow = treemap.NewWith(utils.IntComparator)
}
