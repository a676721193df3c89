package kmer

// KMer is a parsed input kmer record: its packed key, and the source/
// destination position tokens delimiting its path in the graph, half-open
//.
type KMer struct {
	Key  Key
	From Node
	To   Node
}

// Sorted reports whether this record's label is already unique and needs
// no further doubling.
func (k KMer) Sorted() bool { return k.To == Sorted }

// MakeSorted marks k as sorted/terminal.
func (k *KMer) MakeSorted() { k.To = Sorted }

// Less orders KMer records by label only,
func (k KMer) Less(other KMer) bool {
	return Label(k.Key) < Label(other.Key)
}

// KeyLessKMer compares a bare Key's label against a KMer's label, for use
// in binary search over a label-sorted KMer slice.
func KeyLessKMer(key Key, k KMer) bool {
	return Label(key) < Label(k.Key)
}

// ByLabel sorts a []KMer slice by label ascending; it satisfies
// sort.Interface so callers can pick stable or unstable sort as needed.
type ByLabel []KMer

func (s ByLabel) Len() int           { return len(s) }
func (s ByLabel) Less(i, j int) bool { return s[i].Less(s[j]) }
func (s ByLabel) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
