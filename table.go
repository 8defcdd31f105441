package phuffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	mathbits "math/bits"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps every symbol of the alphabet to its canonical Huffman
// code.  A table is constructed once, either from raw data or from a
// stored array of 256 codelengths, and is read-only afterward.
type CodeTable struct {
	codes      [AlphabetSize]Code
	maxCodeLen byte
	lookup     map[Code]Symbol
}

// NewTableFromData derives a table from raw data: occurrence counts
// feed a greedy tree merge, whose leaf depths become the codelengths
// for canonical assignment.  data must be non-empty and no larger than
// MaxDataSize.
func NewTableFromData(data []byte) *CodeTable {
	t := new(CodeTable)
	t.build(resolveDepths(data))
	return t
}

// NewTableFromLengths reconstructs a table from its serialized form: a
// codelength for each of the 256 symbols, 0 marking unused symbols.
// This is the receiving half of the canonical-code contract: the
// bit-patterns are regenerated, never transmitted.
//
// The lengths are validated: any length outside [0, MaxCodeLen) is
// rejected, as is a length multiset that violates Kraft's inequality,
// since either would yield a table that is not a prefix code.
func NewTableFromLengths(lengths []byte) (*CodeTable, error) {
	assert.Assertf(len(lengths) == AlphabetSize, "got %d lengths, alphabet has %d symbols", len(lengths), AlphabetSize)

	var kraft uint64
	leaves := make([]symbolDepth, 0, AlphabetSize)
	for symbol := 0; symbol < AlphabetSize; symbol++ {
		length := lengths[symbol]
		if length == 0 {
			continue
		}
		if length >= MaxCodeLen {
			return nil, fmt.Errorf("invalid codelength for symbol %d: got %d, max %d", symbol, length, MaxCodeLen-1)
		}
		kraft += 1 << (MaxCodeLen - uint32(length))
		leaves = append(leaves, symbolDepth{symbol: Symbol(symbol), depth: length})
	}

	if len(leaves) == 0 {
		return nil, fmt.Errorf("codelength array assigns no codes")
	}
	if kraft > 1<<MaxCodeLen {
		return nil, fmt.Errorf("codelengths violate Kraft's inequality: not a prefix code")
	}

	t := new(CodeTable)
	t.build(leaves)
	return t, nil
}

// build performs canonical code assignment over the resolved
// (symbol, codelength) pairs, longest code first.  Processing in
// (length descending, symbol ascending) order with an
// increment-then-shift counter reproduces the standard canonical table
// uniquely from the lengths alone.
func (t *CodeTable) build(leaves []symbolDepth) {
	assert.Assertf(len(leaves) > 0, "cannot build a code table with no symbols")
	byCanonicalOrder(leaves).Sort()

	// The longest code is all zero bits.
	last := MakeCode(leaves[0].depth, 0)
	t.maxCodeLen = last.Size
	t.codes[leaves[0].symbol] = last

	for _, leaf := range leaves[1:] {
		if leaf.depth == last.Size {
			last.Bits++
		} else {
			// Shorter code: advance the counter, then drop the
			// trailing bits to re-align it to the new width.
			last.Bits = (last.Bits + 1) >> (last.Size - leaf.depth)
			last.Size = leaf.depth
		}
		t.codes[leaf.symbol] = last
	}

	// len(lookup) is approximately n×log2(n) when filled.
	numLeaves := uint32(len(leaves))
	t.lookup = make(map[Code]Symbol, numLeaves*log2uint32(numLeaves))
	for symbol := 0; symbol < AlphabetSize; symbol++ {
		if c := t.codes[symbol]; c.Size != 0 {
			t.lookup[c] = Symbol(symbol)
		}
	}
}

// At returns the code assigned to the symbol at index.  A zero-Size
// code means the symbol is unused.
func (t *CodeTable) At(index int) Code {
	assert.Assertf(index >= 0 && index < AlphabetSize, "symbol index %d out of range [0, %d)", index, AlphabetSize)
	return t.codes[index]
}

// MaxCodeLen is the bit length of the longest assigned code.  A
// decoder needs at most this much lookahead to disambiguate any
// codeword.
func (t *CodeTable) MaxCodeLen() byte {
	return t.maxCodeLen
}

// Lengths returns the table's canonical serialized form: one
// codelength per symbol.  NewTableFromLengths rebuilds an identical
// table from this array.
func (t *CodeTable) Lengths() []byte {
	out := make([]byte, AlphabetSize)
	for symbol := 0; symbol < AlphabetSize; symbol++ {
		out[symbol] = t.codes[symbol].Size
	}
	return out
}

// Equal reports whether both tables assign the identical
// (pattern, length) pair to every symbol.
func (t *CodeTable) Equal(other *CodeTable) bool {
	return t.codes == other.codes
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (t *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMaxCodeLen() = %d\n", t.maxCodeLen)
	for symbol := 0; symbol < AlphabetSize; symbol++ {
		if c := t.codes[symbol]; c.Size != 0 {
			fmt.Fprintf(&buf, "\tAt(%d) = %s\n", symbol, c)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// MarshalJSON renders the table as its 256-entry codelength array.
func (t *CodeTable) MarshalJSON() ([]byte, error) {
	lengths := t.Lengths()
	numbers := make([]uint16, len(lengths))
	for i, length := range lengths {
		numbers[i] = uint16(length)
	}
	return json.Marshal(numbers)
}

// UnmarshalJSON rebuilds the table from a 256-entry codelength array.
func (t *CodeTable) UnmarshalJSON(raw []byte) error {
	var numbers []uint16
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return err
	}
	if len(numbers) != AlphabetSize {
		return fmt.Errorf("got %d lengths, alphabet has %d symbols", len(numbers), AlphabetSize)
	}
	lengths := make([]byte, len(numbers))
	for i, number := range numbers {
		if number >= MaxCodeLen {
			return fmt.Errorf("invalid codelength for symbol %d: got %d, max %d", i, number, MaxCodeLen-1)
		}
		lengths[i] = byte(number)
	}
	rebuilt, err := NewTableFromLengths(lengths)
	if err != nil {
		return err
	}
	*t = *rebuilt
	return nil
}

var (
	_ json.Marshaler   = (*CodeTable)(nil)
	_ json.Unmarshaler = (*CodeTable)(nil)
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// type byCanonicalOrder {{{

// byCanonicalOrder sorts (symbol, codelength) pairs by codelength
// descending, then symbol ascending, the order canonical assignment
// walks them in.
type byCanonicalOrder []symbolDepth

func (list byCanonicalOrder) Len() int {
	return len(list)
}

func (list byCanonicalOrder) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCanonicalOrder) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.symbol < b.symbol
}

func (list byCanonicalOrder) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = byCanonicalOrder(nil)

// }}}
