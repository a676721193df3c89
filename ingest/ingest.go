// Package ingest parses the text k-mer record format into kmer.KMer
// values ready for the unique-keys pass, using a line-oriented
// bufio.Scanner reader.
package ingest

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/xiles84/gcsa/alphabet"
	"github.com/xiles84/gcsa/gcsaerr"
	"github.com/xiles84/gcsa/kmer"
)

// Load reads whitespace-separated k-mer records, one per line, from r:
//
//	label from to1:succ1 to2:succ2 ...
//
// Each toN:succN pair produces one kmer.KMer sharing label and from, with
// the successor mask bit succN set and the predecessor mask bit set at
// the comp value of label's first character. A malformed
// line is a fatal input-integrity error naming its 1-based line number.
func Load(r io.Reader, alpha *alphabet.Alphabet, kmerLength int) ([]kmer.KMer, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var out []kmer.KMer
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, gcsaerr.Wrapf(gcsaerr.InputIntegrity,
				"ingest: line %d: expected \"label from to:succ...\", got %q", lineNo, line)
		}

		label := fields[0]
		if len(label) > kmer.MaxLength {
			return nil, gcsaerr.Wrapf(gcsaerr.InputIntegrity,
				"ingest: line %d: label %q longer than %d", lineNo, label, kmer.MaxLength)
		}
		if len(label) != kmerLength {
			return nil, gcsaerr.Wrapf(gcsaerr.InputIntegrity,
				"ingest: line %d: label %q has length %d, want %d", lineNo, label, len(label), kmerLength)
		}
		for i := 0; i < len(label); i++ {
			if alpha.Comp(label[i]) == 0 && label[i] != '$' {
				return nil, gcsaerr.Wrapf(gcsaerr.InputIntegrity,
					"ingest: line %d: character %q not in alphabet", lineNo, label[i])
			}
		}

		from, err := kmer.ParseNode(fields[1])
		if err != nil {
			return nil, gcsaerr.Wrapf(gcsaerr.InputIntegrity, "ingest: line %d: %v", lineNo, err)
		}

		pred := byte(1) << alpha.Comp(label[0])

		for _, toField := range fields[2:] {
			to, succBit, err := parseSuccessor(toField)
			if err != nil {
				return nil, gcsaerr.Wrapf(gcsaerr.InputIntegrity, "ingest: line %d: %v", lineNo, err)
			}
			key := kmer.EncodeKey(alpha, label, pred, byte(1)<<succBit)
			out = append(out, kmer.KMer{Key: key, From: from, To: to})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "ingest: scan"))
	}
	return out, nil
}

func parseSuccessor(field string) (kmer.Node, byte, error) {
	idx := strings.LastIndexByte(field, ':')
	if idx < 0 {
		return 0, 0, errors.Errorf("successor field %q: expected \"token:idx:succ\"", field)
	}
	nodeToken, succToken := field[:idx], field[idx+1:]
	to, err := kmer.ParseNode(nodeToken)
	if err != nil {
		return 0, 0, err
	}
	succIdx, err := parseSuccessorIndex(succToken)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "successor field %q", field)
	}
	return to, succIdx, nil
}

func parseSuccessorIndex(s string) (byte, error) {
	if len(s) != 1 || s[0] < '0' || s[0] > '7' {
		return 0, errors.Errorf("successor index %q out of range [0,8)", s)
	}
	return s[0] - '0', nil
}
