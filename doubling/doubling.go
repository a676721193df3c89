// Package doubling implements the iterative path-doubling driver:
// repeatedly fusing adjacent path nodes whose label ranges concatenate,
// until every path node's label is unique or the rank sequence capacity
// is exhausted.
package doubling

import (
	"context"
	"sort"

	"github.com/ngaut/log"

	"github.com/xiles84/gcsa/gcsaerr"
	"github.com/xiles84/gcsa/internal/valueindex"
	"github.com/xiles84/gcsa/kmer"
	"github.com/xiles84/gcsa/lcp"
	"github.com/xiles84/gcsa/pathnode"
)

// GraphSuccessors looks up the graph nodes a path may continue into from
// a position token, for the edge-generation phase. Graph traversal itself
// is an external collaborator: callers supply this.
type GraphSuccessors func(from kmer.Node) []kmer.Node

// Driver runs the doubling rounds over an LCP support structure built
// from the same unique-key rank space as the path nodes it operates on.
type Driver struct {
	LCP   *lcp.LCP
	Steps int // cap on rounds; order must not exceed pathnode.LabelLength
}

// New returns a Driver bounded to steps rounds.
func New(support *lcp.LCP, steps int) *Driver {
	return &Driver{LCP: support, Steps: steps}
}

// Run executes doubling rounds until every path node is sorted or Steps
// rounds have elapsed, checking ctx once per round.
func (d *Driver) Run(ctx context.Context, nodes []pathnode.PathNode) ([]pathnode.PathNode, error) {
	for round := 0; round < d.Steps; round++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sort.Slice(nodes, func(i, j int) bool { return nodes[i].From < nodes[j].From })

		merged, changed, err := d.fuseRound(nodes)
		if err != nil {
			return nil, err
		}
		if !changed {
			log.Infof("doubling round %d: no fusable path nodes, stopping early", round)
			break
		}

		sort.Slice(merged, func(i, j int) bool { return merged[i].Less(merged[j]) })
		d.markSorted(merged)
		nodes = merged

		log.Infof("doubling round %d: %d active path nodes", round, len(nodes))
		if allSorted(nodes) {
			break
		}
	}
	return nodes, nil
}

// fuseRound fuses each path node whose label is not yet unique and whose
// order has headroom with every path node beginning where it ends (the
// Cartesian product of matching left/right pairs). nodes must already be
// sorted by From.
func (d *Driver) fuseRound(nodes []pathnode.PathNode) (merged []pathnode.PathNode, changed bool, err error) {
	merged = make([]pathnode.PathNode, 0, len(nodes))
	for _, left := range nodes {
		if left.Sorted() || left.Order() >= pathnode.LabelLength {
			merged = append(merged, left)
			continue
		}

		lo, hi := rangeByFrom(nodes, left.To)
		if lo == hi {
			// Dead end: nothing continues this path node's range this round.
			merged = append(merged, left)
			continue
		}

		overflowed := false
		for _, right := range nodes[lo:hi] {
			fused, ferr := pathnode.Fuse(left, right)
			if ferr != nil {
				if gcsaerr.Is(ferr, gcsaerr.Capacity) {
					overflowed = true
					continue
				}
				return nil, false, ferr
			}
			merged = append(merged, fused)
			changed = true
		}
		if overflowed {
			merged = append(merged, left)
		}
	}
	return merged, changed, nil
}

// rangeByFrom returns the half-open index range of nodes (sorted by From)
// whose From equals target.
func rangeByFrom(nodes []pathnode.PathNode, target kmer.Node) (lo, hi int) {
	lo = sort.Search(len(nodes), func(i int) bool { return nodes[i].From >= target })
	hi = sort.Search(len(nodes), func(i int) bool { return nodes[i].From > target })
	return lo, hi
}

// markSorted flags a path node sorted when its label range does not
// overlap either sorted-order neighbor, meaning its label is already
// unique; otherwise it remains pending for another round.
func (d *Driver) markSorted(nodes []pathnode.PathNode) {
	for i := range nodes {
		overlapsPrev := i > 0 && nodes[i-1].Intersect(nodes[i])
		overlapsNext := i+1 < len(nodes) && nodes[i].Intersect(nodes[i+1])
		if !overlapsPrev && !overlapsNext {
			nodes[i].MakeSorted()
		}
	}
}

func allSorted(nodes []pathnode.PathNode) bool {
	for _, pn := range nodes {
		if !pn.Sorted() {
			return false
		}
	}
	return true
}

// GenerateEdges runs the post-doubling edge-generation phase: for each
// surviving path node, scan its From position's graph successors and
// bump the origin's outdegree and the accepting path node's indegree.
// nodes must have unique, rank-sorted From values for the lookup to be
// O(log n) amortized via ValueIndex.
func GenerateEdges(nodes []pathnode.PathNode, successors GraphSuccessors) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].From < nodes[j].From })
	for i := range nodes {
		nodes[i].InitDegree()
	}

	index := valueindex.Build(nodes, func(pn pathnode.PathNode) uint64 { return uint64(pn.From) })
	for i := range nodes {
		for _, next := range successors(nodes[i].From) {
			j := index.Find(uint64(next))
			if j >= len(nodes) {
				continue
			}
			nodes[i].IncrementOutdegree()
			nodes[j].IncrementIndegree()
		}
	}
}
