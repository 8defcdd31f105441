package phuffman

// Symbol represents a symbol in the codec's alphabet.  The alphabet is
// fixed at one symbol per possible byte value.
type Symbol byte

// AlphabetSize is the number of symbols in the alphabet.
const AlphabetSize = 256
