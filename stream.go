package phuffman

// WordBits is the width of the words the encoded bitstream is packed
// into.  Codewords are laid into each word most significant bit first,
// back to back across word boundaries, with no block-aligned padding.
const WordBits = 32

// EncodedStream is a packed bitstream together with the block
// partition metadata needed to decode any block independently.
//
// Block i covers the WordsPerBlock words starting at word
// i*WordsPerBlock (the final block's region may be shorter).  Its
// first codeword begins BitOffsets[i] bits into that region, because
// a codeword may straddle the boundary from the previous block; it
// holds exactly SymbolCounts[i] symbols.
type EncodedStream struct {
	// Words holds the packed bitstream.
	Words []uint32

	// TrailingZeroBits counts the padding bits appended to the final
	// word purely to complete it.  They never encode a symbol.
	TrailingZeroBits byte

	// WordsPerBlock is the partition width, in words.
	WordsPerBlock int

	// BitOffsets[i] is the bit position, counted from the most
	// significant bit of block i's first word, where the block's
	// first codeword begins.
	BitOffsets []byte

	// SymbolCounts[i] is the number of symbols block i decodes to.
	SymbolCounts []uint32
}

// BlockCount returns the number of blocks in the partition.
func (s *EncodedStream) BlockCount() int {
	return len(s.SymbolCounts)
}

// SymbolTotal returns the number of symbols across all blocks, which
// is the byte length of the decoded output.
func (s *EncodedStream) SymbolTotal() int {
	var total int
	for _, count := range s.SymbolCounts {
		total += int(count)
	}
	return total
}

// bitLength returns the number of payload bits in the stream.
func (s *EncodedStream) bitLength() int {
	return len(s.Words)*WordBits - int(s.TrailingZeroBits)
}

// bitAt returns the bit at absolute position pos, MSB-first within
// each word.
func (s *EncodedStream) bitAt(pos int) uint32 {
	return (s.Words[pos/WordBits] >> (WordBits - 1 - uint(pos%WordBits))) & 1
}
