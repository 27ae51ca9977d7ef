package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each leaf Symbol of a Tree to its Code.  The codes are
// prefix-free because each one is the unique root-to-leaf path of its
// symbol: "0" for every left branch and "1" for every right branch.
type CodeTable struct {
	codes   map[Symbol]Code
	order   []Symbol
	minSize byte
	maxSize byte
}

// NewCodeTable is a convenience function that allocates a CodeTable and
// initializes it from t.
func NewCodeTable(t *Tree) *CodeTable {
	ct := new(CodeTable)
	ct.Init(t)
	return ct
}

// Init initializes this CodeTable from the leaves of t.  If the root of t is
// itself a leaf, that symbol is assigned the one-bit code "0".  An empty Tree
// produces an empty CodeTable.
func (ct *CodeTable) Init(t *Tree) {
	*ct = CodeTable{
		codes: make(map[Symbol]Code, t.NumLeaves()),
		order: make([]Symbol, 0, t.NumLeaves()),
	}

	if t.Len() == 0 {
		return
	}

	root := t.Root()
	if t.IsLeaf(root) {
		ct.add(t.Symbol(root), MakeCode(1, 0))
		return
	}

	// Walk the tree with an explicit stack.  Each stackItem carries the
	// path accumulated on the way down, so nothing is shared between
	// branches.  The right child is pushed first so that the left subtree
	// is visited first.

	type stackItem struct {
		id   NodeID
		path Code
	}

	stack := make([]stackItem, 0, log2uint32(uint32(t.Len())))
	stack = append(stack, stackItem{id: root})
	for len(stack) != 0 {
		last := len(stack) - 1
		top := stack[last]
		stack[last] = stackItem{}
		stack = stack[:last]

		if t.IsLeaf(top.id) {
			ct.add(t.Symbol(top.id), top.path)
			continue
		}

		assert.Assertf(top.path.Size < maxBitsPerCode, "code tree is deeper than %d bits", maxBitsPerCode)
		stack = append(stack, stackItem{t.Right(top.id), top.path.Append(true)})
		stack = append(stack, stackItem{t.Left(top.id), top.path.Append(false)})
	}
}

func (ct *CodeTable) add(symbol Symbol, hc Code) {
	if len(ct.order) == 0 {
		ct.minSize = hc.Size
		ct.maxSize = hc.Size
	} else if ct.minSize > hc.Size {
		ct.minSize = hc.Size
	} else if ct.maxSize < hc.Size {
		ct.maxSize = hc.Size
	}
	ct.codes[symbol] = hc
	ct.order = append(ct.order, symbol)
}

// Lookup returns the Code for symbol and whether the symbol is present.
func (ct *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	hc, found := ct.codes[symbol]
	return hc, found
}

// Encode returns the Code for symbol.  Asking for a symbol that is not in
// the table is a programming error and panics.
func (ct *CodeTable) Encode(symbol Symbol) Code {
	hc, found := ct.codes[symbol]
	assert.Assertf(found, "symbol %d is not in the code table", symbol)
	return hc
}

// Len returns the number of symbols in the table.
func (ct *CodeTable) Len() int {
	return len(ct.order)
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}

// Symbols returns the table's symbols in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make(bySymbol, len(ct.order))
	copy(out, ct.order)
	out.Sort()
	return out
}

// Dump writes a programmer-readable debugging dump of the CodeTable's
// current state to the given writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type bySymbol {{{

type bySymbol []Symbol

func (list bySymbol) Sort() {
	sort.Sort(list)
}

func (list bySymbol) Len() int {
	return len(list)
}

func (list bySymbol) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySymbol) Less(i, j int) bool {
	return list[i] < list[j]
}

var _ sort.Interface = bySymbol(nil)

// }}}
