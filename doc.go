// Package deflate implements the entropy-coding half of the DEFLATE
// compressed data format: canonical length-limited Huffman code construction,
// stored / static / dynamic block selection, and LSB-first bit-level output.
//
// The caller is expected to provide its own LZ77 match finder.  Matches and
// literals are fed to a Writer one token at a time, and the Writer takes care
// of frequency analysis, code assignment, and block emission.  The emitted
// bitstream is compatible with any RFC 1951 decoder, and the block-splitting
// and code-length decisions match those made by the widely deployed C
// implementation, so output sizes are directly comparable.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package deflate
