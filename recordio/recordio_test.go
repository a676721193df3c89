package recordio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xiles84/gcsa/alphabet"
	"github.com/xiles84/gcsa/kmer"
	"github.com/xiles84/gcsa/pathnode"
)

func testAlphabet() *alphabet.Alphabet {
	return alphabet.FromCounts(make([]uint64, 5), alphabet.DefaultChar2Comp, []byte{'$', 'A', 'C', 'G', 'T'})
}

func TestKMerRecordRoundTrip(t *testing.T) {
	k := kmer.KMer{Key: kmer.Key(0x0102030405060708), From: kmer.EncodeNode(5, 3), To: kmer.EncodeNode(9, 7)}
	rec := EncodeKMer(k)
	require.Equal(t, k, rec.Decode())
}

func TestPathNodeRecordRoundTrip(t *testing.T) {
	kmerRec := kmer.KMer{Key: kmer.EncodeKey(testAlphabet(), "ACG", 0x01, 0x02), From: kmer.EncodeNode(1, 0), To: kmer.EncodeNode(2, 0)}
	pn := pathnode.New(kmerRec, 4)

	rec := EncodePathNode(pn)
	got := rec.Decode()
	require.Equal(t, pn.Order(), got.Order())
	require.Equal(t, pn.LCP(), got.LCP())
	require.Equal(t, pn.Predecessors(), got.Predecessors())
	require.Equal(t, pn.From, got.From)
	require.Equal(t, pn.To, got.To)
	for i := 0; i < pathnode.LabelLength; i++ {
		require.Equal(t, pn.FirstLabel[i], got.FirstLabel[i], "FirstLabel[%d]", i)
		require.Equal(t, pn.LastLabel[i], got.LastLabel[i], "LastLabel[%d]", i)
	}
}

func TestKeyRecordRoundTrip(t *testing.T) {
	a := testAlphabet()
	keys := []kmer.Key{
		kmer.EncodeKey(a, "AAA", 0, 0),
		kmer.EncodeKey(a, "AAT", 0, 0),
		kmer.EncodeKey(a, "ACG", 0, 0),
	}
	lastChar := []byte{a.Comp('A'), a.Comp('T'), a.Comp('G')}

	records := EncodeKeys(keys, lastChar)
	require.Len(t, records, len(keys))
	for i, rec := range records {
		gotKey, gotLast := rec.Decode()
		require.Equal(t, keys[i], gotKey, "key %d", i)
		require.Equal(t, lastChar[i], gotLast, "lastChar %d", i)
	}
}

func TestBinaryStreamRoundTrip(t *testing.T) {
	records := []KMerRecord{
		{Key: 1, From: 2, To: 3},
		{Key: 4, From: 5, To: 6},
	}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, false)
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, WriteRecord(w, r))
	}
	require.NoError(t, w.Close())

	r, err := OpenReader(bufio.NewReader(&buf))
	require.NoError(t, err)
	for _, want := range records {
		var got KMerRecord
		require.NoError(t, binary.Read(r, binary.BigEndian, &got))
		require.Equal(t, want, got)
	}
}

func TestGzipSpillRoundTrip(t *testing.T) {
	records := []KMerRecord{{Key: 10, From: 20, To: 30}}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, true)
	require.NoError(t, err)
	for _, rec := range records {
		require.NoError(t, WriteRecord(w, rec))
	}
	require.NoError(t, w.Close())

	r, err := OpenReader(bufio.NewReader(&buf))
	require.NoError(t, err)
	var got KMerRecord
	require.NoError(t, binary.Read(r, binary.BigEndian, &got))
	require.Equal(t, records[0], got)
}
