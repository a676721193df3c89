// Package lcp implements the LCP support structure over a rank-ordered
// unique-key array: a packed kmer_lcp vector, an O(1)
// range-minimum-query structure over it, and the min_lcp/max_lcp/
// extendRange operations the doubling driver uses to compare PathNode
// label ranges.
package lcp

import (
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/xiles84/gcsa/kmer"
	"github.com/xiles84/gcsa/pathnode"
)

// LCP owns kmer_lcp and an O(1) range-minimum-query sparse table over it.
// It is immutable once built and may be shared read-only by any
// concurrent helpers a caller introduces.
type LCP struct {
	KmerLength int
	TotalKeys  int
	KmerLCP    []uint8 // packed: k <= 16 fits comfortably in a byte.

	// sparse table: table[j][i] = index of the minimum in KmerLCP[i, i+2^j).
	table [][]int32
}

// Build fills kmer_lcp[i] = Key.LCP(keys[i-1], keys[i], kmerLength) for
// i>=1, kmer_lcp[0]=0, then constructs the RMQ sparse table.
func Build(keys []kmer.Key, kmerLength int) *LCP {
	l := &LCP{KmerLength: kmerLength, TotalKeys: len(keys), KmerLCP: make([]uint8, len(keys))}
	for i := 1; i < len(keys); i++ {
		l.KmerLCP[i] = uint8(kmer.LCP(keys[i-1], keys[i], kmerLength))
	}
	l.buildRMQ()
	return l
}

func (l *LCP) buildRMQ() {
	n := len(l.KmerLCP)
	if n == 0 {
		return
	}
	levels := bits.Len(uint(n)) // enough levels to cover [i, i+2^levels)
	l.table = make([][]int32, levels)
	l.table[0] = make([]int32, n)
	for i := range l.table[0] {
		l.table[0][i] = int32(i)
	}
	for j := 1; j < levels; j++ {
		half := 1 << (j - 1)
		size := n - (1 << j) + 1
		if size <= 0 {
			l.table = l.table[:j]
			break
		}
		l.table[j] = make([]int32, size)
		for i := 0; i < size; i++ {
			left := l.table[j-1][i]
			right := l.table[j-1][i+half]
			if l.KmerLCP[right] < l.KmerLCP[left] {
				l.table[j][i] = right
			} else {
				l.table[j][i] = left
			}
		}
	}
}

// rmq returns the index of the minimum of KmerLCP[lo, hi] (inclusive).
func (l *LCP) rmq(lo, hi int) int {
	if lo == hi {
		return lo
	}
	j := bits.Len(uint(hi-lo+1)) - 1
	left := l.table[j][lo]
	right := l.table[j][hi-(1<<j)+1]
	if l.KmerLCP[right] < l.KmerLCP[left] {
		return int(right)
	}
	return int(left)
}

// RangeMin returns min(KmerLCP[lo..hi]) inclusive.
func (l *LCP) RangeMin(lo, hi int) int {
	return int(l.KmerLCP[l.rmq(lo, hi)])
}

// CharLCP is the LCP in characters of the first diverging kmer at a given
// rank-order position; OrderLCP is the number of leading ranks shared.
type CharLCP struct {
	OrderLCP int
	Chars    int
}

// MinLCP computes the minimal LCP of the path labels of a and b: a must
// precede b in lexicographic order with disjoint ranges.
func (l *LCP) MinLCP(a, b pathnode.PathNode) CharLCP {
	return l.lcpBetween(a.LastLabel[:a.Order()], b.FirstLabel[:b.Order()])
}

// MaxLCP computes the maximal LCP using the symmetric extremes
// (a.FirstLabel, b.LastLabel).
func (l *LCP) MaxLCP(a, b pathnode.PathNode) CharLCP {
	return l.lcpBetween(a.FirstLabel[:a.Order()], b.LastLabel[:b.Order()])
}

func (l *LCP) lcpBetween(left, right []uint32) CharLCP {
	orderLCP := 0
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for orderLCP < n && left[orderLCP] == right[orderLCP] {
		orderLCP++
	}
	if orderLCP == n {
		// One sequence is a prefix of the other along the whole compared
		// range; no diverging kmer to look up.
		return CharLCP{OrderLCP: orderLCP, Chars: 0}
	}
	lo, hi := left[orderLCP], right[orderLCP]
	if lo > hi {
		lo, hi = hi, lo
	}
	chars := l.RangeMin(int(lo)+1, int(hi))
	return CharLCP{OrderLCP: orderLCP, Chars: chars}
}

// Increment advances lcp by one character, carrying into OrderLCP on
// overflow past kmer_length.
func (l *LCP) Increment(v CharLCP) CharLCP {
	if v.Chars+1 < l.KmerLength {
		v.Chars++
	} else {
		v.OrderLCP++
		v.Chars = 0
	}
	return v
}

// RankRange is an inclusive [Lo, Hi] range of unique-key ranks.
type RankRange struct {
	Lo, Hi int
}

// ExtendRange widens range outward as long as the boundary kmer_lcp
// values are >= lcp, producing the maximal contiguous run of keys sharing
// an LCP >= lcp with the seed range.
func (l *LCP) ExtendRange(r RankRange, lcpVal int) RankRange {
	for r.Lo > 0 && int(l.KmerLCP[r.Lo]) >= lcpVal {
		r.Lo--
	}
	for r.Hi+1 < l.TotalKeys && int(l.KmerLCP[r.Hi+1]) >= lcpVal {
		r.Hi++
	}
	return r
}

// Save writes kmer_length, total_keys, and kmer_lcp, followed by an
// xxhash64 checksum trailer.
func (l *LCP) Save(out io.Writer) error {
	h := xxhash.New()
	w := io.MultiWriter(out, h)
	if err := binary.Write(w, binary.BigEndian, uint64(l.KmerLength)); err != nil {
		return errors.Wrap(err, "lcp: write kmer_length")
	}
	if err := binary.Write(w, binary.BigEndian, uint64(l.TotalKeys)); err != nil {
		return errors.Wrap(err, "lcp: write total_keys")
	}
	if err := binary.Write(w, binary.BigEndian, l.KmerLCP); err != nil {
		return errors.Wrap(err, "lcp: write kmer_lcp")
	}
	if err := binary.Write(out, binary.BigEndian, h.Sum64()); err != nil {
		return errors.Wrap(err, "lcp: write checksum")
	}
	return nil
}

// Load reads an LCP previously written by Save, rebuilding the RMQ
// sparse table, and rejects a mismatched checksum trailer.
func Load(in io.Reader) (*LCP, error) {
	h := xxhash.New()
	r := io.TeeReader(in, h)

	var kmerLength, totalKeys uint64
	if err := binary.Read(r, binary.BigEndian, &kmerLength); err != nil {
		return nil, errors.Wrap(err, "lcp: read kmer_length")
	}
	if err := binary.Read(r, binary.BigEndian, &totalKeys); err != nil {
		return nil, errors.Wrap(err, "lcp: read total_keys")
	}
	l := &LCP{KmerLength: int(kmerLength), TotalKeys: int(totalKeys), KmerLCP: make([]uint8, totalKeys)}
	if err := binary.Read(r, binary.BigEndian, l.KmerLCP); err != nil {
		return nil, errors.Wrap(err, "lcp: read kmer_lcp")
	}

	want := h.Sum64()
	var got uint64
	if err := binary.Read(in, binary.BigEndian, &got); err != nil {
		return nil, errors.Wrap(err, "lcp: read checksum")
	}
	if got != want {
		return nil, errors.New("lcp: checksum mismatch, corrupt index")
	}

	l.buildRMQ()
	return l, nil
}
