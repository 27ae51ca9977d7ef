package huffpack

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable maps each Symbol to the number of times it occurs.  The
// table remembers the order in which symbols were first added; that order
// is the serialization order of the container header.
//
// The zero value is an empty table ready for use.
type FrequencyTable struct {
	order  []Symbol
	counts map[Symbol]uint64
}

// CountFrequencies makes a single pass over symbols and returns their
// frequency table.  Symbols are recorded in order of first occurrence.
func CountFrequencies(symbols []Symbol) *FrequencyTable {
	ft := &FrequencyTable{}
	for _, symbol := range symbols {
		ft.Add(symbol, 1)
	}
	return ft
}

// CountBytes is CountFrequencies for raw bytes, one Symbol per byte.
func CountBytes(data []byte) *FrequencyTable {
	var counts [256]uint64
	var order []Symbol
	for _, b := range data {
		if counts[b] == 0 {
			order = append(order, Symbol(b))
		}
		counts[b]++
	}
	ft := &FrequencyTable{
		order:  order,
		counts: make(map[Symbol]uint64, len(order)),
	}
	for _, symbol := range order {
		ft.counts[symbol] = counts[symbol]
	}
	return ft
}

// Add increments the count for symbol by n, inserting the symbol at the end
// of the table if it is not yet present.  Adding 0 still inserts it.
func (ft *FrequencyTable) Add(symbol Symbol, n uint64) {
	if ft.counts == nil {
		ft.counts = make(map[Symbol]uint64)
	}
	old, found := ft.counts[symbol]
	if !found {
		ft.order = append(ft.order, symbol)
	}
	ft.counts[symbol] = addSaturating(old, n)
}

// Count returns the count for symbol and whether the symbol is present.
func (ft *FrequencyTable) Count(symbol Symbol) (uint64, bool) {
	n, found := ft.counts[symbol]
	return n, found
}

// Len returns the number of distinct symbols in the table.
func (ft *FrequencyTable) Len() int {
	return len(ft.order)
}

// Total returns the sum of all counts.
func (ft *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, symbol := range ft.order {
		sum = addSaturating(sum, ft.counts[symbol])
	}
	return sum
}

// Symbols returns a copy of the table's symbols in insertion order.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, len(ft.order))
	copy(out, ft.order)
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", ft.Len())
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.Total())
	for _, symbol := range ft.order {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", symbol, ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
