package doubling

import (
	"context"
	"testing"

	"github.com/xiles84/gcsa/alphabet"
	"github.com/xiles84/gcsa/kmer"
	"github.com/xiles84/gcsa/lcp"
	"github.com/xiles84/gcsa/pathnode"
)

func testAlphabet() *alphabet.Alphabet {
	return alphabet.FromCounts(make([]uint64, 5), alphabet.DefaultChar2Comp, []byte{'$', 'A', 'C', 'G', 'T'})
}

func TestDoublingConvergesOnSimpleChain(t *testing.T) {
	a := testAlphabet()
	n1, n2, n3, n4 := kmer.EncodeNode(1, 0), kmer.EncodeNode(2, 0), kmer.EncodeNode(3, 0), kmer.EncodeNode(4, 0)

	keys := []kmer.Key{
		kmer.EncodeKey(a, "A", 0, 0),
		kmer.EncodeKey(a, "C", 0, 0),
		kmer.EncodeKey(a, "G", 0, 0),
	}
	support := lcp.Build(keys, 1)

	pn0 := pathnode.New(kmer.KMer{Key: kmer.Replace(keys[0], 0), From: n1, To: n2}, 0)
	pn1 := pathnode.New(kmer.KMer{Key: kmer.Replace(keys[1], 1), From: n2, To: n3}, 1)
	pn2 := pathnode.New(kmer.KMer{Key: kmer.Replace(keys[2], 2), From: n3, To: n4}, 2)

	driver := New(support, 4)
	result, err := driver.Run(context.Background(), []pathnode.PathNode{pn0, pn1, pn2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, pn := range result {
		if !pn.Sorted() {
			t.Errorf("result[%d] not sorted: %+v", i, pn)
		}
	}
	// The chain fully fuses down to two order-2 nodes (0,1) and (1,2), plus
	// the dead-end order-1 node (2) that never found a continuation.
	if len(result) != 3 {
		t.Fatalf("len(result) = %d, want 3", len(result))
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	a := testAlphabet()
	keys := []kmer.Key{kmer.EncodeKey(a, "A", 0, 0)}
	support := lcp.Build(keys, 1)
	driver := New(support, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Run(ctx, nil); err == nil {
		t.Fatalf("expected context cancellation error")
	}
}

func TestGenerateEdgesCountsDegrees(t *testing.T) {
	n1, n2, n3 := kmer.EncodeNode(1, 0), kmer.EncodeNode(2, 0), kmer.EncodeNode(3, 0)
	nodes := []pathnode.PathNode{
		{From: n1, To: n2},
		{From: n2, To: n3},
	}
	successors := func(from kmer.Node) []kmer.Node {
		if from == n1 {
			return []kmer.Node{n2}
		}
		return nil
	}
	GenerateEdges(nodes, successors)
	if nodes[0].Outdegree() != 1 {
		t.Errorf("outdegree = %d, want 1", nodes[0].Outdegree())
	}
	if nodes[1].Indegree() != 1 {
		t.Errorf("indegree = %d, want 1", nodes[1].Indegree())
	}
}
