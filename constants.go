package deflate

import (
	"github.com/chronos-tachyon/assert"
)

const (
	// minMatchLength and maxMatchLength bound the length of a single copy
	// token, and maxMatchDistance bounds how far back it may reach.
	minMatchLength   = 3
	maxMatchLength   = 258
	maxMatchDistance = 1 << 15

	// numLiterals counts the literal byte symbols 0..255 of the LL
	// alphabet.  Symbol 256 terminates a block, and the 29 symbols after
	// that encode match length categories.
	numLiterals    = 256
	endBlockSymbol = 256
	numLengthCodes = 29

	numLLCodes = numLiterals + 1 + numLengthCodes
	numDCodes  = 30
	numXCodes  = 19

	// X alphabet symbols 0..15 transmit literal code sizes.  The last
	// three symbols are run-length instructions.
	dupSymbol          = 16 // repeat previous size 3..6 times
	zeroRunShortSymbol = 17 // run of 3..10 zero sizes
	zeroRunLongSymbol  = 18 // run of 11..138 zero sizes

	// physicalNumLLCodes is the size of the fixed LL code table.  Codes
	// 286 and 287 participate in code construction but never appear in a
	// compressed stream.
	physicalNumLLCodes = numLLCodes + 2

	maxCodeSize  = 15
	maxXCodeSize = 7

	// maxStoredBlockSize is the largest payload expressible by the 16-bit
	// LEN field of a stored block.
	maxStoredBlockSize = 1<<16 - 1
)

// block is the bit accumulator word.  Bits enter at the top and leave from
// the bottom, 16 at a time.
type block uint16

const (
	bitsPerBlock  = 16
	bytesPerBlock = 2
)

func makeMask(size byte) block {
	return block(1)<<size - 1
}

// extraLLBits[code] is the number of extra bits that follow length symbol
// 257+code, extraDBits[code] the number that follow distance symbol code, and
// extraXBits[sym] the number that follow X alphabet symbol sym.
var extraLLBits = [numLengthCodes]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var extraDBits = [numDCodes]byte{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

var extraXBits = [numXCodes]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 3, 7,
}

// scramble is the order in which X alphabet code sizes are transmitted in a
// dynamic block header, arranged so that the sizes most likely to be zero
// come last and can be omitted.
var scramble = [numXCodes]byte{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

var (
	// lengthCodes[length-3] is the length category for a match of the
	// given length, and baseLength[code] is the smallest length-3 value
	// in that category.
	lengthCodes [numLiterals]byte
	baseLength  [numLengthCodes]uint16

	// distCodes maps distance-1 values to distance categories: the first
	// 256 entries are indexed directly, the rest by (distance-1)>>7.
	// baseDist[code] is the smallest distance-1 value in that category.
	distCodes [2 * numLiterals]byte
	baseDist  [numDCodes]uint16
)

func init() {
	length := 0
	for code := 0; code < numLengthCodes-1; code++ {
		baseLength[code] = uint16(length)
		for n := 0; n < 1<<extraLLBits[code]; n++ {
			lengthCodes[length] = byte(code)
			length++
		}
	}
	assert.Assertf(length == numLiterals, "length is %d, expected %d", length, numLiterals)

	// A length of 258 gets its own category with no extra bits, stealing
	// the top slot of the previous category.
	lengthCodes[numLiterals-1] = numLengthCodes - 1

	dist := 0
	for code := 0; code < 16; code++ {
		baseDist[code] = uint16(dist)
		for n := 0; n < 1<<extraDBits[code]; n++ {
			distCodes[dist] = byte(code)
			dist++
		}
	}
	assert.Assertf(dist == numLiterals, "dist is %d, expected %d", dist, numLiterals)

	dist >>= 7
	for code := 16; code < numDCodes; code++ {
		baseDist[code] = uint16(dist << 7)
		for n := 0; n < 1<<(extraDBits[code]-7); n++ {
			distCodes[numLiterals+dist] = byte(code)
			dist++
		}
	}
	assert.Assertf(dist == numLiterals, "dist is %d, expected %d", dist, numLiterals)
}

// distCode returns the distance category for a distance-1 value.
func distCode(dist0 uint16) byte {
	if dist0 < numLiterals {
		return distCodes[dist0]
	}
	return distCodes[numLiterals+(dist0>>7)]
}
