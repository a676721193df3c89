package kmer

import (
	"strconv"
	"strings"

	"github.com/xiles84/gcsa/gcsaerr"
)

// Node is a position token: the upper 54 bits hold a graph node id, the
// lower 10 bits an offset within that node.
type Node uint64

const (
	offsetBits = 10
	offsetMask = 0x3FF
)

// Sorted is the sentinel Node value (all bits set) meaning "terminal, do
// not extend".
const Sorted Node = ^Node(0)

// EncodeNode packs a graph node id and an in-node offset into a Node.
func EncodeNode(id, offset uint64) Node {
	return Node((id << offsetBits) | (offset & offsetMask))
}

// ID returns the graph node id encoded in n.
func (n Node) ID() uint64 { return uint64(n) >> offsetBits }

// Offset returns the in-node offset encoded in n.
func (n Node) Offset() uint64 { return uint64(n) & offsetMask }

// String renders n as "id:offset".
func (n Node) String() string {
	return strconv.FormatUint(n.ID(), 10) + ":" + strconv.FormatUint(n.Offset(), 10)
}

// ParseNode parses the "id:offset" textual form produced by String,
// rejecting a non-numeric or out-of-range ([0,1024)) offset.
func ParseNode(token string) (Node, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return 0, gcsaerr.Wrapf(gcsaerr.InputIntegrity, "node token %q: expected \"id:offset\"", token)
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, gcsaerr.Wrapf(gcsaerr.InputIntegrity, "node token %q: non-numeric id", token)
	}
	offset, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || offset >= 1024 {
		return 0, gcsaerr.Wrapf(gcsaerr.InputIntegrity, "node token %q: offset out of range [0,1024)", token)
	}
	return EncodeNode(id, offset), nil
}
