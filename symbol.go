package huffpack

import (
	"fmt"
	"math"
)

// Symbol represents a symbol in an arbitrary alphabet.  Negative symbols are
// not valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// MaxByteSymbol is the maximum symbol that the container format can store.
const MaxByteSymbol = Symbol(math.MaxUint8)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// SymbolsFromBytes converts raw bytes into one Symbol per byte.
func SymbolsFromBytes(data []byte) []Symbol {
	out := make([]Symbol, len(data))
	for i, b := range data {
		out[i] = Symbol(b)
	}
	return out
}

// BytesFromSymbols is the inverse of SymbolsFromBytes.  It returns an error
// if any symbol lies outside 0 .. MaxByteSymbol.
func BytesFromSymbols(symbols []Symbol) ([]byte, error) {
	out := make([]byte, len(symbols))
	for i, symbol := range symbols {
		if symbol < 0 || symbol > MaxByteSymbol {
			return nil, fmt.Errorf("symbol %d at index %d does not fit in a byte", symbol, i)
		}
		out[i] = byte(symbol)
	}
	return out, nil
}
