// Package huffman implements a deterministic canonical Huffman encoder over
// any totally ordered alphabet.
//
// Encoding runs as a forward pipeline: symbol frequencies are counted, a
// Huffman tree is built by repeated minimum-pair merging (ties broken by the
// smallest symbol in each subtree), the tree yields one bit length per
// symbol, and the lengths alone are renumbered into a canonical code.  The
// input is then packed into a bit sequence, rendered as hexadecimal.
//
// Two encoders given the same frequency table, or just the same length
// table, always agree bit for bit.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
