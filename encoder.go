package huffpack

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// Encoder packs a sequence of Symbols into an encoded stream using a
// CodeTable.
//
// The stream starts with one byte holding the number of zero bits, 0 to 7,
// appended after the last code to reach a byte boundary.  The codes follow,
// most significant bit first within each byte, then the padding.
type Encoder struct {
	table *CodeTable
}

// NewEncoder is a convenience function that constructs an Encoder.
func NewEncoder(ct *CodeTable) Encoder {
	var e Encoder
	e.Init(ct)
	return e
}

// Init initializes this Encoder to use the given CodeTable.
func (e *Encoder) Init(ct *CodeTable) {
	*e = Encoder{table: ct}
}

// Table returns the CodeTable used by this Encoder.
func (e Encoder) Table() *CodeTable {
	return e.table
}

// EncodedBits returns the number of code bits that Encode will produce for
// symbols, excluding the padding header and the padding itself.
func (e Encoder) EncodedBits(symbols []Symbol) uint64 {
	var total uint64
	for _, symbol := range symbols {
		total += uint64(e.table.Encode(symbol).Size)
	}
	return total
}

// Encode writes the encoded stream for symbols to w and returns the number
// of bytes written.
//
// Every symbol must be present in the CodeTable; a missing symbol is a
// programming error and panics.  An empty sequence encodes to a single zero
// byte.
//
func (e Encoder) Encode(w io.Writer, symbols []Symbol) (int64, error) {
	totalBits := e.EncodedBits(symbols)
	padding := byte((8 - totalBits%8) % 8)
	size := int64(1 + (totalBits+uint64(padding))/8)

	bw := bitio.NewWriter(w)
	if err := bw.WriteByte(padding); err != nil {
		return 0, err
	}
	for _, symbol := range symbols {
		hc := e.table.Encode(symbol)
		if err := bw.WriteBits(hc.Bits, hc.Size); err != nil {
			return 0, err
		}
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}
	return size, nil
}

// EncodeToBytes is a convenience wrapper around Encode that returns the
// encoded stream as a byte slice.
func (e Encoder) EncodeToBytes(symbols []Symbol) []byte {
	var buf bytes.Buffer
	if _, err := e.Encode(&buf, symbols); err != nil {
		// bytes.Buffer never fails to write.
		panic(err)
	}
	return buf.Bytes()
}
