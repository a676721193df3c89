// Package recordio implements the fixed-size binary codecs
// that ReadBuffer reads records through, plus optional gzip framing for
// record files (the cmd front end uses it for its .keys and .pathnodes
// outputs).
package recordio

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/xiles84/gcsa/gcsaerr"
	"github.com/xiles84/gcsa/kmer"
	"github.com/xiles84/gcsa/pathnode"
)

// KMerRecord is the 24-byte on-disk form of a kmer.KMer.
type KMerRecord struct {
	Key  uint64
	From uint64
	To   uint64
}

// EncodeKMer converts a kmer.KMer into its wire record.
func EncodeKMer(k kmer.KMer) KMerRecord {
	return KMerRecord{Key: uint64(k.Key), From: uint64(k.From), To: uint64(k.To)}
}

// Decode converts a wire record back into a kmer.KMer.
func (r KMerRecord) Decode() kmer.KMer {
	return kmer.KMer{Key: kmer.Key(r.Key), From: kmer.Node(r.From), To: kmer.Node(r.To)}
}

// KeyRecord is the 9-byte on-disk form of one distinct unique-key entry:
// its packed kmer.Key plus the label's last character (comp value).
type KeyRecord struct {
	Key      uint64
	LastChar byte
}

// EncodeKeys pairs the unique-keys pass's rank-ordered keys with their
// parallel last-character vector into wire records.
func EncodeKeys(keys []kmer.Key, lastChar []byte) []KeyRecord {
	records := make([]KeyRecord, len(keys))
	for i, k := range keys {
		records[i] = KeyRecord{Key: uint64(k), LastChar: lastChar[i]}
	}
	return records
}

// Decode converts a wire record back into its key and last character.
func (r KeyRecord) Decode() (kmer.Key, byte) {
	return kmer.Key(r.Key), r.LastChar
}

// PathNodeRecord is the 88-byte on-disk form of a pathnode.PathNode:
// 8 first_label ranks + 8 last_label ranks (uint32 each), from, to
// (uint64 each), and the packed fields word.
type PathNodeRecord struct {
	FirstLabel [pathnode.LabelLength]uint32
	LastLabel  [pathnode.LabelLength]uint32
	From       uint64
	To         uint64
	Fields     uint64
}

// EncodePathNode converts a pathnode.PathNode into its wire record.
func EncodePathNode(pn pathnode.PathNode) PathNodeRecord {
	return PathNodeRecord{
		FirstLabel: pn.FirstLabel,
		LastLabel:  pn.LastLabel,
		From:       uint64(pn.From),
		To:         uint64(pn.To),
		Fields:     pn.RawFields(),
	}
}

// Decode converts a wire record back into a pathnode.PathNode.
func (r PathNodeRecord) Decode() pathnode.PathNode {
	return pathnode.FromRaw(kmer.Node(r.From), kmer.Node(r.To), r.FirstLabel, r.LastLabel, r.Fields)
}

// gzipMagic is checked by OpenReader to sniff a gzip-framed record file
// without requiring a separate sidecar flag.
var gzipMagic = [2]byte{0x1f, 0x8b}

// NewWriter wraps w for writing fixed-size records (see WriteRecord) via
// encoding/binary big endian, gzip-compressing the stream when compress
// is true.
func NewWriter(w io.Writer, compress bool) (io.WriteCloser, error) {
	if !compress {
		return nopCloser{bufio.NewWriter(w)}, nil
	}
	gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
	if err != nil {
		return nil, gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "recordio: open gzip writer"))
	}
	return gz, nil
}

type nopCloser struct{ w *bufio.Writer }

func (n nopCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopCloser) Close() error                { return n.w.Flush() }

// WriteRecord encodes v via encoding/binary big endian onto w.
func WriteRecord[T any](w io.Writer, v T) error {
	if err := binary.Write(w, binary.BigEndian, v); err != nil {
		return gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "recordio: write record"))
	}
	return nil
}

// OpenReader detects a gzip-framed spill file by sniffing its magic bytes
// and transparently decompresses it, matching the plain-file case
// otherwise.
func OpenReader(r *bufio.Reader) (io.Reader, error) {
	magic, err := r.Peek(2)
	if err != nil && err != io.EOF {
		return nil, gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "recordio: peek magic"))
	}
	if len(magic) == 2 && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "recordio: open gzip reader"))
		}
		return gz, nil
	}
	return r, nil
}
