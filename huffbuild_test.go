package deflate

import (
	"bytes"
	"testing"

	"github.com/chronos-tachyon/huffman"
	"github.com/google/go-cmp/cmp"
)

// checkCanonical verifies that every code the coder assigned decodes back to
// its own symbol under an independently constructed canonical decoder, which
// also proves the size vector describes a complete prefix code.
func checkCanonical(t *testing.T, c *coder) {
	t.Helper()

	var d huffman.Decoder
	if err := d.Init(c.sizeBySymbol()); err != nil {
		t.Fatalf("size vector does not describe a valid code: %v", err)
	}

	for sym := huffman.Symbol(0); int(sym) < len(c.codes); sym++ {
		if c.size(sym) == 0 {
			continue
		}
		decoded, _, _ := d.Decode(c.encode(sym))
		if decoded != sym {
			t.Errorf("code %v for symbol %d decodes to %d", c.encode(sym), sym, decoded)
		}
	}
}

func TestTreeBuilder_Classic(t *testing.T) {
	freq := make([]uint32, numXCodes)
	copy(freq, []uint32{5, 9, 12, 13, 16, 45})

	var tb treeBuilder
	tb.reset()
	c := tb.build(&xAlphabet, freq)

	if c.maxCode != 5 {
		t.Errorf("expected maxCode 5, got %d", c.maxCode)
	}

	expectSizes := make([]byte, numXCodes)
	copy(expectSizes, []byte{4, 4, 3, 3, 3, 1})
	actualSizes := c.sizeBySymbol()
	if !bytes.Equal(expectSizes, actualSizes) {
		t.Errorf("wrong sizes:\n\texpect: %#v\n\tactual: %#v", expectSizes, actualSizes)
	}

	expectCodes := []huffman.Code{
		huffman.MakeReversedCode(4, 14),
		huffman.MakeReversedCode(4, 15),
		huffman.MakeReversedCode(3, 4),
		huffman.MakeReversedCode(3, 5),
		huffman.MakeReversedCode(3, 6),
		huffman.MakeReversedCode(1, 0),
	}
	for sym, expect := range expectCodes {
		actual := c.encode(huffman.Symbol(sym))
		if expect != actual {
			t.Errorf("symbol %d: expected code %v, got %v", sym, expect, actual)
		}
	}

	// 5×4 + 9×4 + 12×3 + 13×3 + 16×3 + 45×1 bits, no extra bits in play.
	if tb.optLen != 224 {
		t.Errorf("expected optLen 224, got %d", tb.optLen)
	}

	checkCanonical(t, &c)
}

func TestTreeBuilder_ForcedCodes(t *testing.T) {
	t.Run("no-symbols", func(t *testing.T) {
		freq := make([]uint32, numDCodes)

		var tb treeBuilder
		tb.reset()
		c := tb.build(&dAlphabet, freq)

		if c.maxCode != 1 {
			t.Errorf("expected maxCode 1, got %d", c.maxCode)
		}
		if c.size(0) != 1 || c.size(1) != 1 {
			t.Errorf("expected two forced 1-bit codes, got sizes %d and %d", c.size(0), c.size(1))
		}
		for sym := huffman.Symbol(2); int(sym) < numDCodes; sym++ {
			if c.size(sym) != 0 {
				t.Errorf("symbol %d has a code but no frequency", sym)
			}
		}
		checkCanonical(t, &c)
	})

	t.Run("one-symbol", func(t *testing.T) {
		freq := make([]uint32, numXCodes)
		freq[7] = 42

		var tb treeBuilder
		tb.reset()
		c := tb.build(&xAlphabet, freq)

		if c.maxCode != 7 {
			t.Errorf("expected maxCode 7, got %d", c.maxCode)
		}
		if c.size(7) != 1 {
			t.Errorf("expected a 1-bit code for symbol 7, got %d bits", c.size(7))
		}
		if c.size(0) != 1 {
			t.Errorf("expected a forced 1-bit code for symbol 0, got %d bits", c.size(0))
		}
		checkCanonical(t, &c)
	})
}

func TestTreeBuilder_EmptyBlockAccounting(t *testing.T) {
	// The frequency profile of an empty block: nothing but the end-of-block
	// marker.  The forced code for symbol 0 must cost nothing on the wire.
	freqLL := make([]uint32, numLLCodes)
	freqLL[endBlockSymbol] = 1
	freqD := make([]uint32, numDCodes)

	var tb treeBuilder
	tb.reset()
	cLL := tb.build(&llAlphabet, freqLL)
	cD := tb.build(&dAlphabet, freqD)

	if cLL.maxCode != endBlockSymbol {
		t.Errorf("expected LL maxCode %d, got %d", endBlockSymbol, cLL.maxCode)
	}
	if cD.maxCode != 1 {
		t.Errorf("expected D maxCode 1, got %d", cD.maxCode)
	}
	if tb.optLen != 1 {
		t.Errorf("expected optLen 1, got %d", tb.optLen)
	}
	if tb.staticLen != 7 {
		t.Errorf("expected staticLen 7, got %d", tb.staticLen)
	}
}

func TestTreeBuilder_SizeLimit(t *testing.T) {
	// Fibonacci frequencies build the deepest possible tree: 15 levels for
	// 16 symbols.  The X alphabet caps code sizes at 7 bits, forcing the
	// overflow repair to rebalance almost every leaf.
	fib := []uint32{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987}
	freq := make([]uint32, numXCodes)
	copy(freq, fib)

	var tb treeBuilder
	tb.reset()
	c := tb.build(&xAlphabet, freq)

	expectSizes := make([]byte, numXCodes)
	copy(expectSizes, []byte{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 5, 3, 2, 1})
	actualSizes := c.sizeBySymbol()
	if diff := cmp.Diff(expectSizes, actualSizes); diff != "" {
		t.Errorf("wrong sizes (-expect +actual):\n%s", diff)
	}

	for sym := huffman.Symbol(0); int(sym) < numXCodes; sym++ {
		if c.size(sym) > maxXCodeSize {
			t.Errorf("symbol %d has a %d-bit code, limit is %d", sym, c.size(sym), maxXCodeSize)
		}
	}

	checkCanonical(t, &c)
}

func TestTreeBuilder_Reuse(t *testing.T) {
	// One treeBuilder serves all three alphabets of every block; building a
	// small alphabet after a large one must not leak state.
	var tb treeBuilder
	tb.reset()

	freqLL := make([]uint32, numLLCodes)
	for n := 0; n < 64; n++ {
		freqLL[n] = uint32(n + 1)
	}
	freqLL[endBlockSymbol] = 1
	cLL := tb.build(&llAlphabet, freqLL)
	checkCanonical(t, &cLL)

	freqX := make([]uint32, numXCodes)
	copy(freqX, []uint32{5, 9, 12, 13, 16, 45})
	cX := tb.build(&xAlphabet, freqX)

	expectSizes := make([]byte, numXCodes)
	copy(expectSizes, []byte{4, 4, 3, 3, 3, 1})
	actualSizes := cX.sizeBySymbol()
	if !bytes.Equal(expectSizes, actualSizes) {
		t.Errorf("wrong sizes:\n\texpect: %#v\n\tactual: %#v", expectSizes, actualSizes)
	}
	checkCanonical(t, &cX)
}
