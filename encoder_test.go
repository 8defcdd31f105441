package phuffman

import (
	"testing"
)

func TestEncodeBlocks_Packing(t *testing.T) {
	table := makeTestTable()

	// "aaabbc" encodes as 1 1 1 00 00 01, nine bits packed MSB-first:
	// 11100000 1 followed by 23 bits of padding.
	s := EncodeBlocks([]byte("aaabbc"), table, 1)

	if len(s.Words) != 1 || s.Words[0] != 0xE0800000 {
		t.Errorf("expected words [0xE0800000], got %#v", s.Words)
	}
	if s.TrailingZeroBits != 23 {
		t.Errorf("expected 23 trailing zero bits, got %d", s.TrailingZeroBits)
	}
	if s.BlockCount() != 1 || s.SymbolCounts[0] != 6 || s.BitOffsets[0] != 0 {
		t.Errorf("expected one block of 6 symbols at offset 0, got counts %v offsets %v", s.SymbolCounts, s.BitOffsets)
	}
}

func TestEncodeBlocks_StraddlingBoundary(t *testing.T) {
	// Eight symbols with 3-bit codes: canonical assignment gives
	// symbol k the pattern k.  Twelve symbols fill 36 bits, so the
	// twelfth codeword starts 1 bit into the second one-word block.
	lengths := make([]byte, AlphabetSize)
	for symbol := 0; symbol < 8; symbol++ {
		lengths[symbol] = 3
	}
	table, err := NewTableFromLengths(lengths)
	if err != nil {
		t.Fatalf("NewTableFromLengths failed: %v", err)
	}

	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3}
	s := EncodeBlocks(data, table, 1)

	if s.BlockCount() != 2 {
		t.Fatalf("expected 2 blocks, got %d", s.BlockCount())
	}
	if s.SymbolCounts[0] != 11 || s.SymbolCounts[1] != 1 {
		t.Errorf("expected symbol counts [11 1], got %v", s.SymbolCounts)
	}
	if s.BitOffsets[0] != 0 || s.BitOffsets[1] != 1 {
		t.Errorf("expected bit offsets [0 1], got %v", s.BitOffsets)
	}
	if len(s.Words) != 2 || s.TrailingZeroBits != 28 {
		t.Errorf("expected 2 words with 28 trailing zero bits, got %d words with %d", len(s.Words), s.TrailingZeroBits)
	}
}
