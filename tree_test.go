package huffpack

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/icza/huffman"
)

func makeTestTree(t *testing.T, data string) *Tree {
	t.Helper()
	tree, err := NewTree(CountBytes([]byte(data)))
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	return tree
}

func TestTree_Dump(t *testing.T) {
	tree := makeTestTree(t, "AAAAABBBCC")

	expectDump := strings.Join([]string{
		"Tree{\n",
		"\tRoot() = 4\n",
		"\tNode(0) = leaf {symbol: 65, freq: 5}\n",
		"\tNode(1) = leaf {symbol: 66, freq: 3}\n",
		"\tNode(2) = leaf {symbol: 67, freq: 2}\n",
		"\tNode(3) = internal {freq: 5, left: 2, right: 1}\n",
		"\tNode(4) = internal {freq: 10, left: 0, right: 3}\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = tree.Dump(&buf)
	actualDump := buf.String()
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	if tree.Total() != 10 {
		t.Errorf("expected total 10, got %d", tree.Total())
	}
	if tree.NumLeaves() != 3 || tree.Len() != 5 {
		t.Errorf("expected 3 leaves and 5 nodes, got %d and %d", tree.NumLeaves(), tree.Len())
	}
	if wpl := tree.WeightedPathLength(); wpl != 15 {
		t.Errorf("expected weighted path length 15, got %d", wpl)
	}
}

func TestTree_Empty(t *testing.T) {
	var tree Tree
	err := tree.Init(&FrequencyTable{})
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
	if tree.Root() != InvalidNode {
		t.Errorf("expected InvalidNode root, got %d", tree.Root())
	}
}

func TestTree_SingleLeaf(t *testing.T) {
	tree := makeTestTree(t, "zzzz")
	root := tree.Root()
	if !tree.IsLeaf(root) {
		t.Fatalf("expected root to be a leaf")
	}
	if tree.Symbol(root) != 'z' || tree.Freq(root) != 4 {
		t.Errorf("expected leaf {z, 4}, got {%d, %d}", tree.Symbol(root), tree.Freq(root))
	}
	if tree.Left(root) != InvalidNode || tree.Right(root) != InvalidNode {
		t.Errorf("expected a leaf to have no children")
	}
	if wpl := tree.WeightedPathLength(); wpl != 4 {
		t.Errorf("expected weighted path length 4, got %d", wpl)
	}
}

func TestTree_IndependentOfInsertionOrder(t *testing.T) {
	var a, b FrequencyTable
	pairs := []struct {
		symbol Symbol
		freq   uint64
	}{
		{'a', 4}, {'b', 4}, {'c', 2}, {'d', 2}, {'e', 2}, {'f', 8}, {'g', 1}, {'h', 1},
	}
	for _, p := range pairs {
		a.Add(p.symbol, p.freq)
	}
	for i := len(pairs) - 1; i >= 0; i-- {
		b.Add(pairs[i].symbol, pairs[i].freq)
	}

	treeA, err := NewTree(&a)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	treeB, err := NewTree(&b)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	var dumpA, dumpB strings.Builder
	_, _ = NewCodeTable(treeA).Dump(&dumpA)
	_, _ = NewCodeTable(treeB).Dump(&dumpB)
	if dumpA.String() != dumpB.String() {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", dumpA.String(), dumpB.String())
	}
}

// bruteForceCost returns the minimum weighted path length over every binary
// tree with the given leaf weights, by trying every possible pair merge.
func bruteForceCost(weights []uint64) uint64 {
	if len(weights) < 2 {
		return 0
	}
	best := ^uint64(0)
	for i := 0; i < len(weights); i++ {
		for j := i + 1; j < len(weights); j++ {
			merged := weights[i] + weights[j]
			rest := make([]uint64, 0, len(weights)-1)
			for k, w := range weights {
				if k != i && k != j {
					rest = append(rest, w)
				}
			}
			rest = append(rest, merged)
			if cost := merged + bruteForceCost(rest); cost < best {
				best = cost
			}
		}
	}
	return best
}

func randomTable(rng *rand.Rand, numSymbols int, maxFreq int) *FrequencyTable {
	ft := &FrequencyTable{}
	for _, index := range rng.Perm(numSymbols) {
		ft.Add(Symbol(index), uint64(1+rng.Intn(maxFreq)))
	}
	return ft
}

func TestTree_OptimalAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		ft := randomTable(rng, 2+rng.Intn(5), 1+rng.Intn(20))

		weights := make([]uint64, 0, ft.Len())
		for _, symbol := range ft.Symbols() {
			n, _ := ft.Count(symbol)
			weights = append(weights, n)
		}

		tree, err := NewTree(ft)
		if err != nil {
			t.Fatalf("NewTree failed: %v", err)
		}
		expect := bruteForceCost(weights)
		actual := tree.WeightedPathLength()
		if expect != actual {
			t.Errorf("weights %v: expected optimal cost %d, got %d", weights, expect, actual)
		}
	}
}

func TestTree_OptimalAgainstReferenceBuilder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		ft := randomTable(rng, 2+rng.Intn(200), 1+rng.Intn(10000))

		leaves := make([]*huffman.Node, 0, ft.Len())
		for _, symbol := range ft.Symbols() {
			n, _ := ft.Count(symbol)
			leaves = append(leaves, &huffman.Node{Value: huffman.ValueType(symbol), Count: int(n)})
		}
		sorted := make([]*huffman.Node, len(leaves))
		copy(sorted, leaves)
		huffman.Build(sorted)

		var expect uint64
		for _, leaf := range leaves {
			_, bits := leaf.Code()
			expect += uint64(bits) * uint64(leaf.Count)
		}

		tree, err := NewTree(ft)
		if err != nil {
			t.Fatalf("NewTree failed: %v", err)
		}
		if actual := tree.WeightedPathLength(); expect != actual {
			t.Errorf("iteration %d: expected cost %d, got %d", iter, expect, actual)
		}
	}
}
