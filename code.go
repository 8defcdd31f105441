package phuffman

import (
	"fmt"
	"strconv"
)

// MaxCodeLen is the bit-width ceiling imposed by Code.Bits.  Valid
// codelengths lie in [1, MaxCodeLen); a codelength of 0 means the
// symbol is unused and has no code assigned.
const MaxCodeLen = 32

// Code represents a symbol's assigned bit-pattern.
type Code struct {
	// Size holds the number of valid bits.  Zero means no code.
	Size byte

	// Bits holds the pattern, right-aligned: the most significant of
	// the Size valid bits is the first bit laid into the stream.
	Bits uint32
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// appended returns the code extended by one trailing bit.
func (c Code) appended(bit uint32) Code {
	return Code{Size: c.Size + 1, Bits: c.Bits<<1 | bit}
}

// String returns the string representation of this Code.
func (c Code) String() string {
	if c.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(c.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, c.Bits))
}

var _ fmt.Stringer = Code{}
