package huffpack

import (
	"bytes"

	"github.com/icza/bitio"
)

// maxPadding is the largest padding count accepted by Decode.  Encoder never
// writes more than 7, but streams from writers that always pad, even when
// already aligned, carry a full byte of padding.
const maxPadding = 8

// Decoder reconstructs Symbols from an encoded stream by walking a Tree one
// bit at a time: 0 selects the left child, 1 the right child, and reaching
// a leaf emits its symbol and restarts from the root.
type Decoder struct {
	tree *Tree
}

// NewDecoder is a convenience function that constructs a Decoder.
func NewDecoder(t *Tree) Decoder {
	var d Decoder
	d.Init(t)
	return d
}

// Init initializes this Decoder to use the given Tree.  The Tree must be
// built from the same frequencies as the one used for encoding.
func (d *Decoder) Init(t *Tree) {
	*d = Decoder{tree: t}
}

// Tree returns the Tree used by this Decoder.
func (d Decoder) Tree() *Tree {
	return d.tree
}

// Decode decodes an encoded stream produced by Encoder.
//
// Every failure is a *CorruptError.  Beyond malformed padding, Decode checks
// that the bits end exactly on a code boundary and that the number of
// decoded symbols equals the total frequency of the tree, which catches
// streams truncated at a code boundary as well as trailing garbage.
//
func (d Decoder) Decode(stream []byte) ([]Symbol, error) {
	if len(stream) == 0 {
		return nil, corruptf("payload", 0, "missing padding header")
	}

	padding := stream[0]
	if padding > maxPadding {
		return nil, corruptf("payload", 0, "padding count %d exceeds %d", padding, maxPadding)
	}

	payloadBits := uint64(len(stream)-1) * 8
	if uint64(padding) > payloadBits {
		return nil, corruptf("payload", 0, "padding count %d exceeds %d payload bits", padding, payloadBits)
	}
	dataBits := payloadBits - uint64(padding)

	t := d.tree
	if t == nil || t.Len() == 0 {
		if len(stream) != 1 || padding != 0 {
			return nil, corruptf("payload", 0, "%d payload bytes for an empty alphabet", len(stream)-1)
		}
		return nil, nil
	}

	total := t.Total()
	capHint := dataBits
	if capHint > total {
		capHint = total
	}
	out := make([]Symbol, 0, capHint)

	emit := func(bitOffset uint64, id NodeID) error {
		if uint64(len(out)) >= total {
			return corruptf("payload", int64(bitOffset), "more than %d symbols decoded", total)
		}
		out = append(out, t.Symbol(id))
		return nil
	}

	br := bitio.NewReader(bytes.NewReader(stream[1:]))
	root := t.Root()
	rootIsLeaf := t.IsLeaf(root)
	node := root
	for i := uint64(0); i < dataBits; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, corruptf("payload", int64(i), "%v", err)
		}

		if rootIsLeaf {
			if bit {
				return nil, corruptf("payload", int64(i), "bit 1 is not a valid code for a single-symbol alphabet")
			}
			if err := emit(i, root); err != nil {
				return nil, err
			}
			continue
		}

		node = t.Child(node, bit)
		if t.IsLeaf(node) {
			if err := emit(i, node); err != nil {
				return nil, err
			}
			node = root
		}
	}

	if node != root {
		return nil, corruptf("payload", int64(dataBits), "stream ends in the middle of a code")
	}

	for i := uint64(0); i < uint64(padding); i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, corruptf("payload", int64(dataBits+i), "%v", err)
		}
		if bit {
			return nil, corruptf("payload", int64(dataBits+i), "non-zero padding bit")
		}
	}

	if uint64(len(out)) != total {
		return nil, corruptf("payload", int64(dataBits), "decoded %d symbols, expected %d", len(out), total)
	}
	return out, nil
}
