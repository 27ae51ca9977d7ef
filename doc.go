// Package huffpack implements a Huffman entropy coder for finite alphabets.
// It counts symbol frequencies, builds an optimal prefix-free code tree from
// them, packs a symbol sequence into a byte-aligned bit stream, and decodes
// the stream back by walking the tree one bit at a time.
//
// Compress and Decompress wrap the whole pipeline in a small container that
// stores the frequency table ahead of the encoded stream, so the receiving
// end can rebuild the identical tree.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
