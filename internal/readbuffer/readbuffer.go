// Package readbuffer implements ReadBuffer: a bounded, mostly
// sequential window over a binary file of fixed-size records, sized to
// avoid a disk seek for the common access pattern of walking forward.
package readbuffer

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/xiles84/gcsa/gcsaerr"
)

const megabyte = 1 << 20

// ReadBuffer wraps a binary file of fixed-size T records and maintains an
// in-memory window [offset, offset+len(buffer)).
type ReadBuffer[T any] struct {
	file       *os.File
	br         *bufio.Reader
	recordSize int
	elements   int
	offset     int
	buffer     []T

	bufferTarget int // records worth roughly 1 MiB
	minimumSize  int // half of bufferTarget

	seekCount int // instrumentation only, not part of the contract
}

// Open opens path, computing element count from file size / record size,
// and fills the initial window. A failure to open is fatal: the caller
// should treat the returned error as unrecoverable.
func Open[T any](path string) (*ReadBuffer[T], error) {
	recordSize := binary.Size(*new(T))
	if recordSize <= 0 {
		return nil, gcsaerr.Wrapf(gcsaerr.Invariant, "readbuffer: record type has no fixed binary size")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "readbuffer: open"))
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "readbuffer: stat"))
	}

	target := megabyte / recordSize
	if target < 1 {
		target = 1
	}
	rb := &ReadBuffer[T]{
		file:         f,
		br:           bufio.NewReader(f),
		recordSize:   recordSize,
		elements:     int(info.Size()) / recordSize,
		bufferTarget: target,
		minimumSize:  target / 2,
	}
	if err := rb.fill(); err != nil {
		f.Close()
		return nil, err
	}
	return rb, nil
}

// Len returns the number of records in the file.
func (rb *ReadBuffer[T]) Len() int { return rb.elements }

// Buffered reports whether index i falls within the current window.
func (rb *ReadBuffer[T]) Buffered(i int) bool {
	return i >= rb.offset && i < rb.offset+len(rb.buffer)
}

func (rb *ReadBuffer[T]) pop() {
	rb.buffer = rb.buffer[1:]
	rb.offset++
}

// Seek moves the window so that index i is buffered: popping forward
// within the current window when possible, refilling if the window has
// fallen below the minimum, or discarding and reseeking the file
// otherwise.
func (rb *ReadBuffer[T]) Seek(i int) error {
	if i >= rb.elements {
		return nil
	}
	if rb.Buffered(i) {
		for rb.offset < i {
			rb.pop()
		}
		if len(rb.buffer) < rb.minimumSize {
			return rb.fill()
		}
		return nil
	}

	rb.buffer = rb.buffer[:0]
	if _, err := rb.file.Seek(int64(i)*int64(rb.recordSize), io.SeekStart); err != nil {
		return gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "readbuffer: seek"))
	}
	rb.br.Reset(rb.file)
	rb.offset = i
	rb.seekCount++
	return rb.fill()
}

// fill reads enough records to bring the window up to bufferTarget,
// treating a mid-record EOF as an input-integrity failure: a truncated
// record means the file was not written completely.
func (rb *ReadBuffer[T]) fill() error {
	target := rb.bufferTarget
	if remaining := rb.elements - rb.offset; remaining < target {
		target = remaining
	}
	if len(rb.buffer) >= target {
		return nil
	}
	for len(rb.buffer) < target {
		var v T
		if err := binary.Read(rb.br, binary.BigEndian, &v); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return gcsaerr.Wrap(gcsaerr.InputIntegrity, errors.Wrap(err, "readbuffer: truncated record"))
			}
			return gcsaerr.Wrap(gcsaerr.IO, errors.Wrap(err, "readbuffer: read"))
		}
		rb.buffer = append(rb.buffer, v)
	}
	return nil
}

// At returns the record at index i, seeking first if it falls outside
// the current window.
func (rb *ReadBuffer[T]) At(i int) (T, error) {
	if !rb.Buffered(i) {
		if err := rb.Seek(i); err != nil {
			var zero T
			return zero, err
		}
	}
	return rb.buffer[i-rb.offset], nil
}

// SeekCount returns the number of hard reseeks performed so far
// (instrumentation for tests, not part of the file format or contract).
func (rb *ReadBuffer[T]) SeekCount() int { return rb.seekCount }

// Clear releases the buffer and closes the file handle. Every exit path,
// including construction failures, must eventually reach this.
func (rb *ReadBuffer[T]) Clear() error {
	rb.buffer = nil
	if rb.file == nil {
		return nil
	}
	err := rb.file.Close()
	rb.file = nil
	return err
}
