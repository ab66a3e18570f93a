package deflate

import (
	"github.com/chronos-tachyon/huffman"
)

// scanTreeSizes run-length encodes the code size list of c into X alphabet
// tokens, appended to xtokens.  A repeated nonzero size becomes one literal
// size followed by dup tokens; runs of zeros get their own run tokens.
//
// More than one tokenization is usually valid.  The grouping rules here,
// down to when a run is cut short and when a literal is re-sent, reproduce
// the choices of the classic encoder, so that the emitted headers match it
// bit for bit.
func scanTreeSizes(xtokens []token, c *coder) []token {
	maxCode := c.maxCode

	prevSize := -1
	nextSize := int(c.size(0))
	count := 0
	maxCount := 7
	minCount := 4

	if nextSize == 0 {
		maxCount = 138
		minCount = 3
	}

	for n := 0; n <= maxCode; n++ {
		curSize := nextSize
		if n < maxCode {
			nextSize = int(c.size(huffman.Symbol(n + 1)))
		} else {
			// Sentinel which no real size can equal, so the final
			// group always closes.
			nextSize = -1
		}

		count++
		if count < maxCount && curSize == nextSize {
			continue
		}

		switch {
		case count < minCount:
			for ; count != 0; count-- {
				xtokens = append(xtokens, makeTreeLenToken(byte(curSize)))
			}

		case curSize != 0:
			if curSize != prevSize {
				xtokens = append(xtokens, makeTreeLenToken(byte(curSize)))
				count--
			}
			xtokens = append(xtokens, makeTreeDupToken(uint(count)))

		default:
			xtokens = append(xtokens, makeTreeZeroRunToken(uint(count)))
		}

		count = 0
		prevSize = curSize
		switch {
		case nextSize == 0:
			maxCount = 138
			minCount = 3
		case curSize == nextSize:
			maxCount = 6
			minCount = 3
		default:
			maxCount = 7
			minCount = 4
		}
	}
	return xtokens
}

func studyFrequenciesX(xtokens []token, freqX []uint32) {
	for i := range freqX {
		freqX[i] = 0
	}
	for _, t := range xtokens {
		if symX, _, _ := t.symbolX(); symX >= 0 {
			freqX[symX]++
		}
	}
}

// countXSizes returns how many X code sizes a dynamic block header must
// transmit: trailing zero sizes, in scramble order, can be omitted.
func countXSizes(cX *coder) int {
	maxIndex := numXCodes - 1
	for maxIndex >= 3 {
		if cX.size(huffman.Symbol(scramble[maxIndex])) != 0 {
			break
		}
		maxIndex--
	}
	return maxIndex + 1
}

// detectDataType guesses whether the data behind the tallied literal
// frequencies is text or binary.  The guess never affects the compressed
// bits; it is reported to tracers and callers as a convenience.
func detectDataType(freqLL []uint32) DataType {
	// Any control byte other than HT, LF, CR, and a few rare-in-text
	// others means binary.
	blockMask := uint32(0xf3ffc07f)
	for n := 0; n <= 31; n++ {
		if blockMask&1 != 0 && freqLL[n] != 0 {
			return BinaryData
		}
		blockMask >>= 1
	}

	// Common whitespace or any printable byte means text.
	if freqLL[9] != 0 || freqLL[10] != 0 || freqLL[13] != 0 {
		return TextData
	}
	for n := 32; n < numLiterals; n++ {
		if freqLL[n] != 0 {
			return TextData
		}
	}

	// No literals at all, or nothing conclusive either way.
	return BinaryData
}
