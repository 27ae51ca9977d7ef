package huffpack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Container layout:
//
//   offset 0      2 bytes, big-endian   N, the number of distinct symbols
//   offset 2      N × 5 bytes           symbol (1 byte), frequency (4 bytes, big-endian)
//   offset 2+5N   ≥1 byte               encoded stream (see Encoder)
//
// Records appear in the insertion order of the FrequencyTable, which for
// Compress is the order of first occurrence in the input.

const (
	countSize     = 2
	recordSize    = 5
	maxHeaderSyms = math.MaxUint16
)

// Archive is one compressed container, either about to be written or just
// parsed.
type Archive struct {
	// Frequencies is the table stored in the header.
	Frequencies *FrequencyTable

	// Tree is rebuilt from Frequencies.  It is nil when Frequencies is
	// empty.
	Tree *Tree

	// Codes is the code table derived from Tree.  It is only populated by
	// CompressArchive.
	Codes *CodeTable

	// Stream is the encoded stream that follows the header.
	Stream []byte
}

// CompressArchive runs the full compression pipeline over data, treating each
// byte as one Symbol.
func CompressArchive(data []byte) (*Archive, error) {
	ft := CountBytes(data)
	a := &Archive{Frequencies: ft}
	if ft.Len() == 0 {
		a.Codes = NewCodeTable(new(Tree))
		a.Stream = NewEncoder(a.Codes).EncodeToBytes(nil)
		return a, nil
	}

	tree, err := NewTree(ft)
	if err != nil {
		return nil, err
	}
	a.Tree = tree
	a.Codes = NewCodeTable(tree)
	a.Stream = NewEncoder(a.Codes).EncodeToBytes(SymbolsFromBytes(data))
	return a, nil
}

// ReadArchive parses a container, validates its header, and rebuilds the
// code tree.  The encoded stream is not decoded until Decode is called.
func ReadArchive(data []byte) (*Archive, error) {
	r := bytes.NewReader(data)
	ft, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	offset := len(data) - r.Len()
	a := &Archive{Frequencies: ft, Stream: data[offset:]}
	if ft.Len() != 0 {
		tree, err := NewTree(ft)
		if err != nil {
			return nil, err
		}
		a.Tree = tree
	}
	return a, nil
}

// WriteTo writes the header followed by the encoded stream.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	n, err := WriteHeader(w, a.Frequencies)
	if err != nil {
		return n, err
	}
	m, err := w.Write(a.Stream)
	return n + int64(m), err
}

// Decode decodes the archive's stream back into bytes.
func (a *Archive) Decode() ([]byte, error) {
	symbols, err := NewDecoder(a.Tree).Decode(a.Stream)
	if err != nil {
		return nil, err
	}
	return BytesFromSymbols(symbols)
}

// Compress returns the compressed container for data.
func Compress(data []byte) ([]byte, error) {
	a, err := CompressArchive(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(countSize + recordSize*a.Frequencies.Len() + len(a.Stream))
	if _, err := a.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.  Malformed input yields an error for which
// errors.Is(err, ErrCorruptStream) is true.
func Decompress(data []byte) ([]byte, error) {
	a, err := ReadArchive(data)
	if err != nil {
		return nil, err
	}
	return a.Decode()
}

// WriteHeader writes the frequency table header for ft.  Every symbol must
// fit in one byte and every count in 32 bits.
func WriteHeader(w io.Writer, ft *FrequencyTable) (int64, error) {
	if ft.Len() > maxHeaderSyms {
		return 0, fmt.Errorf("frequency table has %d symbols, max %d", ft.Len(), maxHeaderSyms)
	}

	buf := make([]byte, countSize, countSize+recordSize*ft.Len())
	binary.BigEndian.PutUint16(buf, uint16(ft.Len()))
	for _, symbol := range ft.order {
		if symbol < 0 || symbol > MaxByteSymbol {
			return 0, fmt.Errorf("symbol %d cannot be stored in a one-byte header record", symbol)
		}
		count := ft.counts[symbol]
		if count > math.MaxUint32 {
			return 0, fmt.Errorf("count %d for symbol %d exceeds the 32-bit header field", count, symbol)
		}
		var record [recordSize]byte
		record[0] = byte(symbol)
		binary.BigEndian.PutUint32(record[1:], uint32(count))
		buf = append(buf, record[:]...)
	}

	n, err := w.Write(buf)
	return int64(n), err
}

// ReadHeader reads a frequency table header from r.  A short header or a
// repeated symbol is reported as a *CorruptError.
func ReadHeader(r io.Reader) (*FrequencyTable, error) {
	var countBuf [countSize]byte
	if err := readFull(r, countBuf[:], 0, "symbol count"); err != nil {
		return nil, err
	}
	n := int(binary.BigEndian.Uint16(countBuf[:]))

	ft := &FrequencyTable{
		order:  make([]Symbol, 0, n),
		counts: make(map[Symbol]uint64, n),
	}
	for index := 0; index < n; index++ {
		offset := int64(countSize + recordSize*index)
		var record [recordSize]byte
		if err := readFull(r, record[:], offset, fmt.Sprintf("record %d of %d", index+1, n)); err != nil {
			return nil, err
		}
		symbol := Symbol(record[0])
		if _, found := ft.counts[symbol]; found {
			return nil, corruptf("header", offset, "duplicate symbol %d", symbol)
		}
		ft.Add(symbol, uint64(binary.BigEndian.Uint32(record[1:])))
	}
	return ft, nil
}

func readFull(r io.Reader, buf []byte, offset int64, what string) error {
	_, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corruptf("header", offset, "truncated %s", what)
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	return nil
}
