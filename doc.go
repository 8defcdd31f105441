// Package phuffman implements canonical Huffman code tables for a
// byte-oriented codec, plus block-parallel decoding of the packed
// bitstream.
//
// A table is built either from raw data (frequency analysis + greedy
// tree merge) or from a previously stored array of 256 code lengths.
// Canonical assignment makes the table reconstructible from the
// lengths alone, so only the lengths ever need to be transmitted.
//
// The encoded stream is packed into 32-bit words and partitioned into
// fixed-size blocks; each block records the bit offset at which its
// first codeword begins and the number of symbols it holds, so any
// block can be decoded with no knowledge of the others.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
package phuffman
