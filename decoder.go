package phuffman

import (
	"fmt"
	"sync"

	"github.com/chronos-tachyon/assert"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("phuffman")

// CorruptStreamError reports that a block's bits stopped matching any
// assigned code.  The stream itself is malformed; the decode is not
// retryable.
type CorruptStreamError struct {
	// Block is the index of the block that failed to decode.
	Block int

	// BitOffset is the absolute bit position in the stream at which
	// no code prefix matched within MaxCodeLen() bits.
	BitOffset int
}

func (e *CorruptStreamError) Error() string {
	return fmt.Sprintf("corrupt stream: block %d has no matching code at bit offset %d", e.Block, e.BitOffset)
}

var _ error = (*CorruptStreamError)(nil)

// DecodeBlock decodes block i of the stream into dst, which must hold
// exactly SymbolCounts[i] bytes.  It depends only on the table and
// block i's own metadata, never on any other block's decode progress,
// so disjoint blocks may be decoded in any order or concurrently.
func DecodeBlock(table *CodeTable, s *EncodedStream, i int, dst []byte) error {
	assert.Assertf(table != nil, "nil code table")
	assert.Assertf(i >= 0 && i < s.BlockCount(), "block index %d out of range [0, %d)", i, s.BlockCount())
	assert.Assertf(len(s.BitOffsets) == s.BlockCount(), "got %d bit offsets for %d blocks", len(s.BitOffsets), s.BlockCount())
	assert.Assertf(len(dst) == int(s.SymbolCounts[i]), "got %d output bytes for %d symbols", len(dst), s.SymbolCounts[i])

	pos := i*s.WordsPerBlock*WordBits + int(s.BitOffsets[i])
	limit := s.bitLength()
	maxCodeLen := table.MaxCodeLen()

	for n := range dst {
		start := pos
		var c Code
		for {
			if c.Size >= maxCodeLen || pos >= limit {
				return &CorruptStreamError{Block: i, BitOffset: start}
			}
			c = c.appended(s.bitAt(pos))
			pos++
			if symbol, ok := table.lookup[c]; ok {
				dst[n] = byte(symbol)
				break
			}
		}
	}
	return nil
}

// Decode decodes the whole stream, one goroutine per block.  Each
// worker owns a disjoint region of the output buffer, computed from
// the prefix sums of the block symbol counts, and only reads the
// shared table and word array, so no locking is needed.  The first
// corrupt block's error is returned and the whole result discarded: a
// corrupt block invalidates the declared total length guarantee.
func Decode(table *CodeTable, s *EncodedStream) ([]byte, error) {
	assert.Assertf(table != nil, "nil code table")
	assert.Assertf(len(s.BitOffsets) == s.BlockCount(), "got %d bit offsets for %d blocks", len(s.BitOffsets), s.BlockCount())
	assert.Assertf(s.WordsPerBlock >= 1, "wordsPerBlock %d < 1", s.WordsPerBlock)

	out := make([]byte, s.SymbolTotal())
	errs := make([]error, s.BlockCount())

	var wg sync.WaitGroup
	var offset int
	for i := 0; i < s.BlockCount(); i++ {
		dst := out[offset : offset+int(s.SymbolCounts[i])]
		offset += int(s.SymbolCounts[i])

		wg.Add(1)
		go func(i int, dst []byte) {
			defer wg.Done()
			errs[i] = DecodeBlock(table, s, i, dst)
		}(i, dst)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Errorf("decode failed: %v", err)
			return nil, err
		}
	}
	return out, nil
}
