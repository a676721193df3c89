// Package pathnode implements the PathNode type: a pair of
// kmer-rank sequences describing a lexicographic range of path labels,
// used by the doubling driver to grow distinguishing prefixes.
package pathnode

import (
	"github.com/xiles84/gcsa/gcsaerr"
	"github.com/xiles84/gcsa/kmer"
)

// LabelLength is the rank-sequence capacity L.
// A doubling driver configured with DoublingSteps rounds needs
// 1<<DoublingSteps to be at least LabelLength.
const LabelLength = 8

// fields bit layout:
//
//	bits 0..7   predecessor comp mask
//	bits 8..11  order, in [1,8]
//	bits 12..15 lcp, in [0,order)
//	bits 16..55 reserved ("pointer to label data", unimplemented upstream)
const (
	fieldsPredMask  = 0xFF
	fieldsOrderMask = 0xF00
	fieldsOrderShift = 8
	fieldsLCPMask    = 0xF000
	fieldsLCPShift   = 12
)

// PathNode is a lexicographic range of path labels. From/To are position
// tokens during construction; after the doubling phase they are
// repurposed to store degree counters.
type PathNode struct {
	From, To   kmer.Node
	FirstLabel [LabelLength]uint32
	LastLabel  [LabelLength]uint32
	fields     uint64
}

// New builds the initial, order-1 PathNode representing a single kmer
// record.
func New(k kmer.KMer, rank uint32) PathNode {
	pn := PathNode{From: k.From, To: k.To}
	pn.FirstLabel[0] = rank
	pn.LastLabel[0] = rank
	pn.setOrder(1)
	pn.setPredecessors(kmer.Predecessors(k.Key))
	pn.setLCP(0)
	return pn
}

// Fuse builds a new PathNode from the concatenation of left and right,
// for use by the doubling driver when left.To == right.From. If
// left.Order()+right.Order() exceeds LabelLength, no node is built and a
// Capacity error is returned.
func Fuse(left, right PathNode) (PathNode, error) {
	sum := left.Order() + right.Order()
	if sum > LabelLength {
		return PathNode{}, gcsaerr.Wrapf(gcsaerr.Capacity,
			"fuse: order %d + %d exceeds LabelLength %d", left.Order(), right.Order(), LabelLength)
	}

	var pn PathNode
	pn.From = left.From
	pn.To = right.To
	copy(pn.FirstLabel[:left.Order()], left.FirstLabel[:left.Order()])
	copy(pn.FirstLabel[left.Order():sum], right.FirstLabel[:right.Order()])
	copy(pn.LastLabel[:left.Order()], left.LastLabel[:left.Order()])
	copy(pn.LastLabel[left.Order():sum], right.LastLabel[:right.Order()])
	pn.setOrder(sum)
	pn.setPredecessors(left.Predecessors())
	pn.setLCP(sharedPrefixLen(pn.FirstLabel[:sum], pn.LastLabel[:sum]))
	return pn, nil
}

func sharedPrefixLen(a, b []uint32) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// RawFields exposes the packed fields word for serialization by the
// recordio package, which lives outside this package and cannot see the
// unexported field directly.
func (pn PathNode) RawFields() uint64 { return pn.fields }

// FromRaw reconstructs a PathNode from its serialized parts, the inverse
// of RawFields plus the exported From/To/FirstLabel/LastLabel fields.
func FromRaw(from, to kmer.Node, first, last [LabelLength]uint32, fields uint64) PathNode {
	return PathNode{From: from, To: to, FirstLabel: first, LastLabel: last, fields: fields}
}

// Sorted reports whether this path node's label is already unique.
func (pn PathNode) Sorted() bool { return pn.To == kmer.Sorted }

// MakeSorted marks pn as sorted/terminal.
func (pn *PathNode) MakeSorted() { pn.To = kmer.Sorted }

// Order is the length, in ranks, of FirstLabel/LastLabel actually in use.
func (pn PathNode) Order() int { return int((pn.fields & fieldsOrderMask) >> fieldsOrderShift) }

func (pn *PathNode) setOrder(order int) {
	pn.fields &^= fieldsOrderMask
	pn.fields |= uint64(order) << fieldsOrderShift
}

// LCP is the length of the common prefix of FirstLabel and LastLabel, in ranks.
func (pn PathNode) LCP() int { return int((pn.fields & fieldsLCPMask) >> fieldsLCPShift) }

func (pn *PathNode) setLCP(lcp int) {
	if lcp >= pn.Order() {
		lcp = pn.Order() - 1
		if lcp < 0 {
			lcp = 0
		}
	}
	pn.fields &^= fieldsLCPMask
	pn.fields |= uint64(lcp) << fieldsLCPShift
}

// Predecessors returns the predecessor comp mask.
func (pn PathNode) Predecessors() byte { return byte(pn.fields & fieldsPredMask) }

func (pn *PathNode) setPredecessors(preds byte) {
	pn.fields &^= fieldsPredMask
	pn.fields |= uint64(preds)
}

// HasPredecessor reports whether comp may precede this path node's label.
func (pn PathNode) HasPredecessor(comp byte) bool {
	return pn.fields&(1<<comp) != 0
}

// AddPredecessors ORs another's predecessor mask into pn.
func (pn *PathNode) AddPredecessors(other PathNode) {
	pn.setPredecessors(pn.Predecessors() | other.Predecessors())
}

// InitDegree zeroes To in preparation for degree counting.
func (pn *PathNode) InitDegree() { pn.To = 0 }

// IncrementOutdegree bumps the low 32 bits of To.
func (pn *PathNode) IncrementOutdegree() { pn.To++ }

// Outdegree returns the low 32 bits of To.
func (pn PathNode) Outdegree() uint32 { return uint32(pn.To) }

// IncrementIndegree bumps the high 32 bits of To.
func (pn *PathNode) IncrementIndegree() { pn.To += kmer.Node(1) << 32 }

// Indegree returns the high 32 bits of To.
func (pn PathNode) Indegree() uint32 { return uint32(pn.To >> 32) }

// Less implements the asymmetric "proper prefix is smaller" ordering on
// FirstLabel.
func (pn PathNode) Less(other PathNode) bool {
	ord := min(pn.Order(), other.Order())
	for i := 0; i < ord; i++ {
		if pn.FirstLabel[i] != other.FirstLabel[i] {
			return pn.FirstLabel[i] < other.FirstLabel[i]
		}
	}
	return pn.Order() < other.Order()
}

// CompareLast implements the mirror ordering on LastLabel: a proper
// prefix is larger.
func (pn PathNode) CompareLast(other PathNode) bool {
	ord := min(pn.Order(), other.Order())
	for i := 0; i < ord; i++ {
		if pn.LastLabel[i] != other.LastLabel[i] {
			return pn.LastLabel[i] < other.LastLabel[i]
		}
	}
	return other.Order() < pn.Order()
}

// Intersect reports whether the closed label ranges [FirstLabel,LastLabel]
// of pn and other overlap, using the asymmetric prefix tie-break.
func (pn PathNode) Intersect(other PathNode) bool {
	// pn does not end before other begins, and other does not end before
	// pn begins.
	return !pn.endsBefore(other) && !other.endsBefore(pn)
}

// endsBefore reports whether pn's range ends (by LastLabel, larger-biased
// proper prefix) strictly before other's range begins (by FirstLabel,
// smaller-biased proper prefix). If the two sequences agree throughout
// the shorter one's length, the shorter side's bias (larger for LastLabel,
// smaller for FirstLabel) always resolves to "not before": a proper
// prefix under LastLabel's convention extends arbitrarily far, and a
// proper prefix under FirstLabel's convention is already at its minimum,
// so the ranges touch or overlap regardless of which side is shorter.
func (pn PathNode) endsBefore(other PathNode) bool {
	ord := min(pn.Order(), other.Order())
	for i := 0; i < ord; i++ {
		if pn.LastLabel[i] != other.FirstLabel[i] {
			return pn.LastLabel[i] < other.FirstLabel[i]
		}
	}
	return false
}

// MinLCP returns the LCP-in-ranks of pn and other, where pn < other and
// their ranges are disjoint.
func (pn PathNode) MinLCP(other PathNode) int {
	return sharedPrefixLen(pn.LastLabel[:pn.Order()], other.FirstLabel[:other.Order()])
}

// MaxLCP returns the symmetric extreme: the LCP-in-ranks of pn.FirstLabel
// and other.LastLabel.
func (pn PathNode) MaxLCP(other PathNode) int {
	return sharedPrefixLen(pn.FirstLabel[:pn.Order()], other.LastLabel[:other.Order()])
}
