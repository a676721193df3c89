// Package alphabet implements the bidirectional mapping between raw byte
// symbols and compact comp codes used throughout the GCSA construction
// pipeline.
package alphabet

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// MaxSigma is the largest alphabet size DEFAULT tables support; the
// effective alphabet used by key encoding (kmer package) is capped at 8
// comp values by the Non-goals.
const MaxSigma = 256

// DefaultChar2Comp maps '$' (terminator) to comp 0 and A, C, G, T, N to
// comps 1..5, leaving every other byte mapped to 0 ({$=0, A=1, C=2, G=3,
// T=4}, extended with N for ambiguous bases).
var (
	DefaultChar2Comp [MaxSigma]byte
	DefaultComp2Char = []byte{'$', 'A', 'C', 'G', 'T', 'N'}
)

func init() {
	for i, c := range DefaultComp2Char {
		DefaultChar2Comp[c] = byte(i)
	}
}

// Alphabet is a bidirectional byte<->comp mapping plus cumulative comp
// counts. C[i] is the number of occurrences of comp values < i; C[sigma]
// is the total count.
type Alphabet struct {
	Char2Comp [MaxSigma]byte
	Comp2Char []byte
	C         []uint64
	Sigma     int
}

// ByteSequence is anything FromSequence can scan linearly; satisfied
// by []byte and string.
type ByteSequence interface {
	~string | ~[]byte
}

// FromCounts builds an Alphabet directly from a precomputed per-comp
// count vector).
func FromCounts(counts []uint64, char2comp [MaxSigma]byte, comp2char []byte) *Alphabet {
	a := &Alphabet{
		Char2Comp: char2comp,
		Comp2Char: append([]byte(nil), comp2char...),
		Sigma:     len(comp2char),
		C:         make([]uint64, len(comp2char)+1),
	}
	prefixSum(a.C, counts)
	return a
}

// FromSequence builds an Alphabet by scanning a raw byte sequence and
// building counts via char2comp, then prefix-summing into C).
func FromSequence[S ByteSequence](seq S, char2comp [MaxSigma]byte, comp2char []byte) *Alphabet {
	a := &Alphabet{
		Char2Comp: char2comp,
		Comp2Char: append([]byte(nil), comp2char...),
		Sigma:     len(comp2char),
		C:         make([]uint64, len(comp2char)+1),
	}
	if len(seq) == 0 {
		return a
	}
	counts := make([]uint64, len(comp2char))
	s := string(seq)
	for i := 0; i < len(s); i++ {
		counts[char2comp[s[i]]]++
	}
	prefixSum(a.C, counts)
	return a
}

// Default returns the alphabet described by DefaultChar2Comp/DefaultComp2Char,
// with an all-zero count vector (no characters counted yet).
func Default() *Alphabet {
	return FromCounts(make([]uint64, len(DefaultComp2Char)), DefaultChar2Comp, DefaultComp2Char)
}

func prefixSum(c []uint64, counts []uint64) {
	var sum uint64
	for i, cnt := range counts {
		c[i] = sum
		sum += cnt
	}
	c[len(counts)] = sum
}

// Swap exchanges the contents of a and b.
func (a *Alphabet) Swap(b *Alphabet) {
	*a, *b = *b, *a
}

// Copy returns a deep copy of a.
func (a *Alphabet) Copy() *Alphabet {
	cp := *a
	cp.Comp2Char = append([]byte(nil), a.Comp2Char...)
	cp.C = append([]uint64(nil), a.C...)
	return &cp
}

// Comp returns the comp value for raw byte c.
func (a *Alphabet) Comp(c byte) byte { return a.Char2Comp[c] }

// Char returns the raw byte for comp value c.
func (a *Alphabet) Char(c byte) byte { return a.Comp2Char[c] }

// Serialize writes sigma, comp2char, and C to out.
func (a *Alphabet) Serialize(out io.Writer) error {
	if err := binary.Write(out, binary.BigEndian, uint64(a.Sigma)); err != nil {
		return errors.Wrap(err, "alphabet: write sigma")
	}
	if err := binary.Write(out, binary.BigEndian, a.Comp2Char); err != nil {
		return errors.Wrap(err, "alphabet: write comp2char")
	}
	if err := binary.Write(out, binary.BigEndian, a.C); err != nil {
		return errors.Wrap(err, "alphabet: write C")
	}
	return nil
}

// Load reads an Alphabet previously written by Serialize, reconstructing
// Char2Comp from Comp2Char.
func Load(in io.Reader) (*Alphabet, error) {
	var sigma uint64
	if err := binary.Read(in, binary.BigEndian, &sigma); err != nil {
		return nil, errors.Wrap(err, "alphabet: read sigma")
	}
	a := &Alphabet{Sigma: int(sigma), Comp2Char: make([]byte, sigma), C: make([]uint64, sigma+1)}
	if err := binary.Read(in, binary.BigEndian, a.Comp2Char); err != nil {
		return nil, errors.Wrap(err, "alphabet: read comp2char")
	}
	if err := binary.Read(in, binary.BigEndian, a.C); err != nil {
		return nil, errors.Wrap(err, "alphabet: read C")
	}
	for i, c := range a.Comp2Char {
		a.Char2Comp[c] = byte(i)
	}
	return a, nil
}
