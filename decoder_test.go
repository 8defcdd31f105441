package phuffman

import (
	"bytes"
	"math/rand"
	"testing"
)

const randSeed = 0x7a11e7

func randomData(rng *rand.Rand, size int, distinct int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(rng.Intn(distinct))
	}
	return data
}

func TestDecode_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))

	type testRow struct {
		name          string
		data          []byte
		wordsPerBlock int
	}

	testData := [...]testRow{
		{name: "example", data: []byte("aaabbc"), wordsPerBlock: 1},
		{name: "single symbol", data: bytes.Repeat([]byte{'z'}, 50), wordsPerBlock: 1},
		{name: "one block", data: randomData(rng, 40, 6), wordsPerBlock: 64},
		{name: "many blocks", data: randomData(rng, 5000, 30), wordsPerBlock: 2},
		{name: "all byte values", data: randomData(rng, 10000, 256), wordsPerBlock: 8},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			table := NewTableFromData(row.data)
			s := EncodeBlocks(row.data, table, row.wordsPerBlock)

			decoded, err := Decode(table, s)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(decoded, row.data) {
				t.Errorf("round trip mismatch: expected %d bytes, got %d", len(row.data), len(decoded))
			}
		})
	}
}

func TestDecodeBlock_Independence(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	data := randomData(rng, 3000, 12)

	table := NewTableFromData(data)
	s := EncodeBlocks(data, table, 2)
	if s.BlockCount() < 3 {
		t.Fatalf("want several blocks to make the test meaningful, got %d", s.BlockCount())
	}

	// Decode the blocks one at a time in reverse order, each against
	// a fresh buffer; every block must reproduce its own slice of the
	// input with no other block ever having been decoded.
	var start int
	starts := make([]int, s.BlockCount())
	for i := 0; i < s.BlockCount(); i++ {
		starts[i] = start
		start += int(s.SymbolCounts[i])
	}
	for i := s.BlockCount() - 1; i >= 0; i-- {
		dst := make([]byte, s.SymbolCounts[i])
		if err := DecodeBlock(table, s, i, dst); err != nil {
			t.Fatalf("block %d failed: %v", i, err)
		}
		expect := data[starts[i] : starts[i]+int(s.SymbolCounts[i])]
		if !bytes.Equal(dst, expect) {
			t.Errorf("block %d decoded wrong: expected %q, got %q", i, expect, dst)
		}
	}
}

func TestDecode_CorruptStream(t *testing.T) {
	// Only symbol 5 has a code ("00"), so a stream starting 01 cannot
	// match any prefix within MaxCodeLen() bits.
	lengths := make([]byte, AlphabetSize)
	lengths[5] = 2
	table, err := NewTableFromLengths(lengths)
	if err != nil {
		t.Fatalf("NewTableFromLengths failed: %v", err)
	}

	s := &EncodedStream{
		Words:            []uint32{0x40000000},
		TrailingZeroBits: 30,
		WordsPerBlock:    1,
		BitOffsets:       []byte{0},
		SymbolCounts:     []uint32{1},
	}

	_, err = Decode(table, s)
	corrupt, ok := err.(*CorruptStreamError)
	if !ok {
		t.Fatalf("expected *CorruptStreamError, got %v", err)
	}
	if corrupt.Block != 0 || corrupt.BitOffset != 0 {
		t.Errorf("expected corruption at block 0 bit 0, got block %d bit %d", corrupt.Block, corrupt.BitOffset)
	}
}

func TestDecode_TrailingZeroBitsNotInterpreted(t *testing.T) {
	// The lone symbol's code is "0", indistinguishable from padding;
	// only the declared symbol count keeps the decoder honest.
	data := []byte("aaaa")
	table := NewTableFromData(data)
	s := EncodeBlocks(data, table, 1)

	decoded, err := Decode(table, s)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("expected %q, got %q", data, decoded)
	}

	// Claiming one extra symbol would force the decoder into the
	// padding region, which must be reported as corruption.
	s.SymbolCounts[0]++
	_, err = Decode(table, s)
	corrupt, ok := err.(*CorruptStreamError)
	if !ok {
		t.Fatalf("expected *CorruptStreamError, got %v", err)
	}
	if corrupt.Block != 0 || corrupt.BitOffset != 4 {
		t.Errorf("expected corruption at block 0 bit 4, got block %d bit %d", corrupt.Block, corrupt.BitOffset)
	}
}

func TestDecode_BitFlipDetected(t *testing.T) {
	// Flip a bit in a sparse code space so that no valid prefix
	// matches at the damaged position.
	lengths := make([]byte, AlphabetSize)
	lengths[1] = 2
	lengths[2] = 2
	table, err := NewTableFromLengths(lengths)
	if err != nil {
		t.Fatalf("NewTableFromLengths failed: %v", err)
	}
	// Canonical codes: symbol 1 = "00", symbol 2 = "01".

	data := []byte{1, 2, 1, 2}
	s := EncodeBlocks(data, table, 1)
	if decoded, err := Decode(table, s); err != nil || !bytes.Equal(decoded, data) {
		t.Fatalf("clean stream failed to decode: %v", err)
	}

	// Setting the first bit turns "00..." into "10...", which no code
	// has as a prefix.
	s.Words[0] |= 0x80000000
	_, err = Decode(table, s)
	if _, ok := err.(*CorruptStreamError); !ok {
		t.Fatalf("expected *CorruptStreamError after bit flip, got %v", err)
	}
}
