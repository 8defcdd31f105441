package phuffman

import (
	"github.com/chronos-tachyon/assert"
)

// EncodeBlocks packs data through the table into a 32-bit word stream
// partitioned into blocks of wordsPerBlock words, recording for each
// block the bit offset of its first codeword and the number of symbols
// it carries.  Every byte of data must have a code assigned in the
// table.
func EncodeBlocks(data []byte, table *CodeTable, wordsPerBlock int) *EncodedStream {
	assert.Assertf(table != nil, "nil code table")
	assert.Assertf(wordsPerBlock >= 1, "wordsPerBlock %d < 1", wordsPerBlock)
	assert.Assertf(len(data) <= MaxDataSize, "data size %d > MaxDataSize %d", len(data), MaxDataSize)

	blockBits := wordsPerBlock * WordBits
	s := &EncodedStream{
		WordsPerBlock: wordsPerBlock,
		BitOffsets:    []byte{0},
		SymbolCounts:  []uint32{0},
	}

	var cur uint32 // word under construction
	var pos int    // absolute bit position of the next codeword
	for _, b := range data {
		c := table.codes[b]
		assert.Assertf(c.Size != 0, "symbol %d has no code in table", b)

		// A codeword may straddle a block boundary; it belongs to
		// the block it starts in, and the next block's offset skips
		// its tail.  wordsPerBlock >= 1 and codes are < WordBits
		// long, so consecutive starts can never skip a whole block.
		block := pos / blockBits
		if block == len(s.SymbolCounts) {
			s.BitOffsets = append(s.BitOffsets, byte(pos-block*blockBits))
			s.SymbolCounts = append(s.SymbolCounts, 0)
		}
		s.SymbolCounts[block]++

		for i := int(c.Size) - 1; i >= 0; i-- {
			bit := (c.Bits >> uint(i)) & 1
			cur = cur<<1 | bit
			pos++
			if pos%WordBits == 0 {
				s.Words = append(s.Words, cur)
				cur = 0
			}
		}
	}

	// Zero-fill the final partial word; the decoder is told how many
	// of its low bits are padding.
	if rem := pos % WordBits; rem != 0 {
		s.TrailingZeroBits = byte(WordBits - rem)
		s.Words = append(s.Words, cur<<uint(s.TrailingZeroBits))
	}
	return s
}
