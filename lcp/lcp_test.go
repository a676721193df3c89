package lcp

import (
	"bytes"
	"testing"

	"github.com/xiles84/gcsa/alphabet"
	"github.com/xiles84/gcsa/kmer"
	"github.com/xiles84/gcsa/pathnode"
)

func testAlphabet() *alphabet.Alphabet {
	return alphabet.FromCounts(make([]uint64, 5), alphabet.DefaultChar2Comp, []byte{'$', 'A', 'C', 'G', 'T'})
}

func TestKmerLCPScenario(t *testing.T) {
	a := testAlphabet()
	keys := []kmer.Key{
		kmer.EncodeKey(a, "AAA", 0, 0),
		kmer.EncodeKey(a, "AAT", 0, 0),
		kmer.EncodeKey(a, "ACG", 0, 0),
	}
	l := Build(keys, 3)
	want := []uint8{0, 2, 1}
	for i, w := range want {
		if l.KmerLCP[i] != w {
			t.Errorf("kmer_lcp[%d] = %d, want %d", i, l.KmerLCP[i], w)
		}
	}
	if got := l.RangeMin(1, 1); got != 2 {
		t.Errorf("RangeMin(1,1) = %d, want 2", got)
	}
	if got := l.RangeMin(1, 2); got != 1 {
		t.Errorf("RangeMin(1,2) = %d, want 1", got)
	}
}

func TestRMQAgainstBruteForce(t *testing.T) {
	a := testAlphabet()
	labels := []string{"AAAA", "AAAT", "AACG", "AACT", "AGGG", "AGTT", "CCCC", "CCCT", "TTTT"}
	keys := make([]kmer.Key, len(labels))
	for i, s := range labels {
		keys[i] = kmer.EncodeKey(a, s, 0, 0)
	}
	l := Build(keys, 4)

	brute := func(lo, hi int) int {
		m := int(l.KmerLCP[lo])
		for i := lo + 1; i <= hi; i++ {
			if int(l.KmerLCP[i]) < m {
				m = int(l.KmerLCP[i])
			}
		}
		return m
	}
	for lo := 0; lo < len(keys); lo++ {
		for hi := lo; hi < len(keys); hi++ {
			if got, want := l.RangeMin(lo, hi), brute(lo, hi); got != want {
				t.Errorf("RangeMin(%d,%d) = %d, want %d", lo, hi, got, want)
			}
		}
	}
}

func TestExtendRangeIdempotent(t *testing.T) {
	a := testAlphabet()
	labels := []string{"AAAA", "AAAT", "AATT", "ACGG", "ACGT", "GGGG"}
	keys := make([]kmer.Key, len(labels))
	for i, s := range labels {
		keys[i] = kmer.EncodeKey(a, s, 0, 0)
	}
	l := Build(keys, 4)

	seed := RankRange{Lo: 1, Hi: 1}
	once := l.ExtendRange(seed, 2)
	twice := l.ExtendRange(once, 2)
	if once != twice {
		t.Errorf("ExtendRange not idempotent: %v vs %v", once, twice)
	}
}

func TestMinLCPMonotonicity(t *testing.T) {
	a := testAlphabet()
	labels := []string{"AAAA", "AAAT", "AACC", "AAGG", "ATTT"}
	keys := make([]kmer.Key, len(labels))
	for i, s := range labels {
		keys[i] = kmer.EncodeKey(a, s, 0, 0)
	}
	l := Build(keys, 4)

	pn := func(rank uint32) pathnode.PathNode {
		return pathnode.New(kmer.KMer{Key: kmer.Replace(0, uint64(rank))}, rank)
	}
	na, nb, nc := pn(0), pn(1), pn(2)

	ab := l.MinLCP(na, nb)
	bc := l.MinLCP(nb, nc)
	ac := l.MinLCP(na, nc)

	minOf := func(x, y CharLCP) CharLCP {
		if x.OrderLCP != y.OrderLCP {
			if x.OrderLCP < y.OrderLCP {
				return x
			}
			return y
		}
		if x.Chars <= y.Chars {
			return x
		}
		return y
	}
	m := minOf(ab, bc)
	if ac.OrderLCP > m.OrderLCP || (ac.OrderLCP == m.OrderLCP && ac.Chars > m.Chars) {
		t.Errorf("min_lcp(a,c)=%v exceeds min(min_lcp(a,b),min_lcp(b,c))=%v", ac, m)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := testAlphabet()
	labels := []string{"AAAA", "AAAT", "AACG", "ACGT"}
	keys := make([]kmer.Key, len(labels))
	for i, s := range labels {
		keys[i] = kmer.EncodeKey(a, s, 0, 0)
	}
	l := Build(keys, 4)

	var buf bytes.Buffer
	if err := l.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.KmerLength != l.KmerLength || loaded.TotalKeys != l.TotalKeys {
		t.Fatalf("header mismatch")
	}
	for i := range l.KmerLCP {
		if l.KmerLCP[i] != loaded.KmerLCP[i] {
			t.Fatalf("kmer_lcp[%d] mismatch after round trip", i)
		}
	}
}

func TestLoadRejectsCorruption(t *testing.T) {
	a := testAlphabet()
	keys := []kmer.Key{kmer.EncodeKey(a, "AAAA", 0, 0), kmer.EncodeKey(a, "AAAT", 0, 0)}
	l := Build(keys, 4)

	var buf bytes.Buffer
	if err := l.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF
	if _, err := Load(bytes.NewReader(corrupted)); err == nil {
		t.Fatalf("expected checksum error on corrupted data")
	}
}
