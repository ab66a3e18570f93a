package deflate

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/huffman"
	"github.com/hashicorp/go-multierror"
)

// Token is one unit of input to the compressor: a single literal byte, or an
// LZ77 back-reference which copies bytes from earlier in the stream.
type Token struct {
	// Distance is 0 for a literal token, or the back-reference distance
	// (1 to 32768) for a copy token.
	Distance uint

	// Length is the number of bytes which a copy token copies, 3 to 258.
	// Ignored for literal tokens.
	Length uint

	// Literal is the byte value of a literal token.  Ignored for copy
	// tokens.
	Literal byte
}

// IsCopy returns true if this Token is a back-reference copy.
func (t Token) IsCopy() bool {
	return t.Distance != 0
}

// TokenSource yields a stream of Tokens, usually from an LZ77 match finder.
type TokenSource interface {
	// NextToken returns the next token.  After the last token it returns
	// io.EOF.
	NextToken() (Token, error)
}

func checkToken(t Token) error {
	if t.Distance == 0 {
		return nil
	}

	var errlist []error
	if t.Distance > maxMatchDistance {
		errlist = append(errlist, fmt.Errorf("Token.Distance is %d, beyond the %d byte window", t.Distance, maxMatchDistance))
	}
	if t.Length < minMatchLength || t.Length > maxMatchLength {
		errlist = append(errlist, fmt.Errorf("Token.Length is %d, expected a value in [%d, %d]", t.Length, minMatchLength, maxMatchLength))
	}

	if len(errlist) == 0 {
		return nil
	}
	if len(errlist) == 1 {
		return errlist[0]
	}
	return &multierror.Error{Errors: errlist}
}

type tokenType byte

const (
	invalidToken tokenType = iota
	literalToken
	copyToken
	stopToken
	treeLenToken
	treeDupToken
	treeZeroRunToken
)

// token is one unit of work for the block encoder: a literal byte, a copy, or
// the end-of-block marker.  Tree tokens only appear in the run-length encoded
// code size lists of a dynamic block header.
type token struct {
	kind     tokenType
	ch       byte
	length   uint16
	distance uint16
}

func makeLiteralToken(ch byte) token {
	return token{kind: literalToken, ch: ch}
}

func makeCopyToken(length uint, distance uint) token {
	assert.Assertf(length >= minMatchLength && length <= maxMatchLength,
		"copy length is %d, expected a value in [%d, %d]",
		length, minMatchLength, maxMatchLength)
	assert.Assertf(distance >= 1 && distance <= maxMatchDistance,
		"copy distance is %d, expected a value in [1, %d]",
		distance, maxMatchDistance)
	return token{kind: copyToken, length: uint16(length), distance: uint16(distance)}
}

func makeStopToken() token {
	return token{kind: stopToken}
}

func makeTreeLenToken(size byte) token {
	assert.Assertf(size <= maxCodeSize, "code size is %d, expected 0 to %d", size, maxCodeSize)
	return token{kind: treeLenToken, ch: size}
}

func makeTreeDupToken(count uint) token {
	assert.Assertf(count >= 3 && count <= 6, "dup count is %d, expected 3 to 6", count)
	return token{kind: treeDupToken, length: uint16(count)}
}

func makeTreeZeroRunToken(count uint) token {
	assert.Assertf(count >= 3 && count <= 138, "zero run count is %d, expected 3 to 138", count)
	return token{kind: treeZeroRunToken, length: uint16(count)}
}

func (t token) tokenType() tokenType {
	return t.kind
}

// symbolLL returns the LL alphabet symbol which encodes this token, plus the
// size and value of the extra bits which follow it, or InvalidSymbol if the
// token has no LL component.
func (t token) symbolLL() (huffman.Symbol, byte, block) {
	switch t.kind {
	case literalToken:
		return huffman.Symbol(t.ch), 0, 0

	case stopToken:
		return endBlockSymbol, 0, 0

	case copyToken:
		lc := t.length - minMatchLength
		code := lengthCodes[lc]
		sym := huffman.Symbol(numLiterals+1) + huffman.Symbol(code)
		return sym, extraLLBits[code], block(lc - baseLength[code])

	default:
		return huffman.InvalidSymbol, 0, 0
	}
}

// symbolD returns the D alphabet symbol which encodes this token, plus the
// size and value of the extra bits which follow it, or InvalidSymbol if the
// token has no D component.
func (t token) symbolD() (huffman.Symbol, byte, block) {
	if t.kind != copyToken {
		return huffman.InvalidSymbol, 0, 0
	}
	dist0 := t.distance - 1
	code := distCode(dist0)
	return huffman.Symbol(code), extraDBits[code], block(dist0 - baseDist[code])
}

// symbolX returns the X alphabet symbol which encodes this token, plus the
// size and value of the extra bits which follow it, or InvalidSymbol if the
// token has no X component.
func (t token) symbolX() (huffman.Symbol, byte, block) {
	switch t.kind {
	case treeLenToken:
		return huffman.Symbol(t.ch), 0, 0

	case treeDupToken:
		return dupSymbol, 2, block(t.length - 3)

	case treeZeroRunToken:
		if t.length <= 10 {
			return zeroRunShortSymbol, 3, block(t.length - 3)
		}
		return zeroRunLongSymbol, 7, block(t.length - 11)

	default:
		return huffman.InvalidSymbol, 0, 0
	}
}

func (t token) encodeLLD(bw bitwriter, cLL *coder, cD *coder) bool {
	if sym, extra, bits := t.symbolLL(); sym >= 0 {
		if !bw.outputBitsWriteHC(cLL.encode(sym)) {
			return false
		}
		if extra != 0 && !bw.outputBitsWrite(extra, bits) {
			return false
		}
	}
	if sym, extra, bits := t.symbolD(); sym >= 0 {
		if !bw.outputBitsWriteHC(cD.encode(sym)) {
			return false
		}
		if extra != 0 && !bw.outputBitsWrite(extra, bits) {
			return false
		}
	}
	return true
}

func (t token) encodeX(bw bitwriter, cX *coder) bool {
	if sym, extra, bits := t.symbolX(); sym >= 0 {
		if !bw.outputBitsWriteHC(cX.encode(sym)) {
			return false
		}
		if extra != 0 && !bw.outputBitsWrite(extra, bits) {
			return false
		}
	}
	return true
}
