package deflate

import (
	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/huffman"
)

// Code tables for the fixed block type defined by RFC 1951 section 3.2.6,
// built once at startup.  The LL table follows the usual canonical rule; the
// distance table is deliberately incomplete, spending 5 bits on each of 30
// symbols and leaving two codes unused.
var (
	fixedLLCodes [physicalNumLLCodes]huffman.Code
	fixedLLSizes [physicalNumLLCodes]byte
	fixedDCodes  [numDCodes]huffman.Code
	fixedDSizes  [numDCodes]byte

	fixedLL coder
	fixedD  coder
)

func init() {
	for n := range fixedLLSizes {
		var size byte
		switch {
		case n < 144:
			size = 8
		case n < 256:
			size = 9
		case n < 280:
			size = 7
		default:
			size = 8
		}
		fixedLLSizes[n] = size
	}

	var countBySize [maxCodeSize + 1]uint16
	for _, size := range fixedLLSizes {
		countBySize[size]++
	}
	assignCodes(fixedLLCodes[:], fixedLLSizes[:], &countBySize)

	for n := range fixedDCodes {
		fixedDSizes[n] = 5
		fixedDCodes[n] = huffman.MakeReversedCode(5, uint32(n))
	}

	fixedLL = coder{codes: fixedLLCodes[:], maxCode: physicalNumLLCodes - 1}
	fixedD = coder{codes: fixedDCodes[:], maxCode: numDCodes - 1}
}

// assignCodes fills codes with the canonical code for each symbol, given the
// per-symbol sizes and the number of symbols at each size.  All codes of a
// given size are consecutive integers, assigned in symbol order, and the
// whole assignment must describe a complete prefix code.  Symbols with size
// zero get no code.  The bits of each code are reversed for LSB-first
// transmission.
func assignCodes(codes []huffman.Code, sizes []byte, countBySize *[maxCodeSize + 1]uint16) {
	var nextCode [maxCodeSize + 1]uint16
	var code uint16
	for size := 1; size <= maxCodeSize; size++ {
		code = (code + countBySize[size-1]) << 1
		nextCode[size] = code
	}
	assert.Assertf(code+countBySize[maxCodeSize]-1 == 1<<maxCodeSize-1,
		"inconsistent size counts: %d codes of size %d after %d",
		countBySize[maxCodeSize], maxCodeSize, code)

	for n, size := range sizes {
		if size == 0 {
			continue
		}
		codes[n] = huffman.MakeReversedCode(size, uint32(nextCode[size]))
		nextCode[size]++
	}
}
