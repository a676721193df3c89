package kmer

import "sort"

// UniqueKeys performs the uniquing and rank-replacement pass:
// it sorts kmers by label, merges the predecessor/successor masks of
// records sharing a label into one distinct key per group, records the
// last character of each distinct label, and rewrites every kmer's key to
// carry its group's rank in the label field, using that record's own
// predecessor/successor bits, not the merged group mask, since individual
// kmer incidence is still needed downstream.
//
// kmers is sorted in place. It returns the distinct keys in rank order and
// a parallel slice of each distinct label's last character.
func UniqueKeys(kmers []KMer) (keys []Key, lastChar []byte) {
	sort.Stable(ByLabel(kmers))

	keys = make([]Key, 0, len(kmers))
	lastChar = make([]byte, 0, len(kmers))

	i := 0
	for i < len(kmers) {
		j := i
		merged := kmers[i].Key
		for j+1 < len(kmers) && Label(kmers[j+1].Key) == Label(merged) {
			j++
			merged = Merge(merged, kmers[j].Key)
		}

		rank := uint64(len(keys))
		keys = append(keys, merged)
		lastChar = append(lastChar, Last(merged))

		for idx := i; idx <= j; idx++ {
			kmers[idx].Key = Replace(kmers[idx].Key, rank)
		}

		i = j + 1
	}

	return keys, lastChar
}
