package deflate

import (
	"testing"

	"github.com/chronos-tachyon/huffman"
	"github.com/google/go-cmp/cmp"
)

// makeSizesCoder builds a coder whose only meaningful property is its size
// vector, which is all that the header scanner looks at.
func makeSizesCoder(sizes []byte) coder {
	codes := make([]huffman.Code, len(sizes))
	for n, size := range sizes {
		codes[n] = huffman.Code{Size: size}
	}
	return coder{codes: codes, maxCode: len(sizes) - 1}
}

func TestScanTreeSizes(t *testing.T) {
	type testRow struct {
		name   string
		sizes  []byte
		expect []token
	}

	longRun := make([]byte, 140)
	longRun[0] = 2
	longRun[139] = 2

	uniform := make([]byte, 150)
	for n := range uniform {
		uniform[n] = 3
	}

	testData := [...]testRow{
		{
			name:  "uniform-run",
			sizes: uniform,
			expect: []token{
				makeTreeLenToken(3),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(6), makeTreeDupToken(6), makeTreeDupToken(6),
				makeTreeDupToken(5),
			},
		},
		{
			name:  "short-zero-run",
			sizes: []byte{5, 0, 0, 0, 5},
			expect: []token{
				makeTreeLenToken(5),
				makeTreeZeroRunToken(3),
				makeTreeLenToken(5),
			},
		},
		{
			name:  "long-zero-run",
			sizes: longRun,
			expect: []token{
				makeTreeLenToken(2),
				makeTreeZeroRunToken(138),
				makeTreeLenToken(2),
			},
		},
		{
			name:  "mixed",
			sizes: []byte{4, 4, 4, 4, 4, 3, 3, 3, 9},
			expect: []token{
				makeTreeLenToken(4),
				makeTreeDupToken(4),
				makeTreeLenToken(3), makeTreeLenToken(3), makeTreeLenToken(3),
				makeTreeLenToken(9),
			},
		},
		{
			name:  "run-cut-at-seven",
			sizes: []byte{6, 6, 6, 6, 6, 6, 6, 6},
			expect: []token{
				makeTreeLenToken(6),
				makeTreeDupToken(6),
				makeTreeLenToken(6),
			},
		},
		{
			name:  "leading-zeros",
			sizes: []byte{0, 0, 0, 0, 2, 2, 2, 2},
			expect: []token{
				makeTreeZeroRunToken(4),
				makeTreeLenToken(2),
				makeTreeDupToken(3),
			},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			c := makeSizesCoder(row.sizes)
			actual := scanTreeSizes(nil, &c)
			if diff := cmp.Diff(row.expect, actual, cmp.AllowUnexported(token{})); diff != "" {
				t.Errorf("wrong tokens (-expect +actual):\n%s", diff)
			}

			// The tokens must cover every size exactly once, in order.
			total := 0
			for _, tok := range actual {
				switch tok.tokenType() {
				case treeLenToken:
					total++
				case treeDupToken, treeZeroRunToken:
					total += int(tok.length)
				}
			}
			if total != len(row.sizes) {
				t.Errorf("tokens cover %d sizes, expected %d", total, len(row.sizes))
			}
		})
	}
}

func TestStudyFrequenciesX(t *testing.T) {
	uniform := make([]byte, 150)
	for n := range uniform {
		uniform[n] = 3
	}
	c := makeSizesCoder(uniform)
	xtokens := scanTreeSizes(nil, &c)

	freqX := make([]uint32, numXCodes)
	freqX[0] = 99 // must be overwritten
	studyFrequenciesX(xtokens, freqX)

	for sym, f := range freqX {
		var expect uint32
		switch sym {
		case 3:
			expect = 1
		case dupSymbol:
			expect = 25
		}
		if f != expect {
			t.Errorf("symbol %d: expected frequency %d, got %d", sym, expect, f)
		}
	}
}

func TestCountXSizes(t *testing.T) {
	type testRow struct {
		name    string
		nonzero []int
		expect  int
	}

	testData := [...]testRow{
		{name: "through-symbol-8", nonzero: []int{0, 8}, expect: 5},
		{name: "minimum", nonzero: []int{0}, expect: 4},
		{name: "through-symbol-2", nonzero: []int{16, 2}, expect: 16},
		{name: "all-nineteen", nonzero: []int{15}, expect: 19},
		{name: "through-symbol-1", nonzero: []int{1}, expect: 18},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			sizes := make([]byte, numXCodes)
			for _, sym := range row.nonzero {
				sizes[sym] = 3
			}
			c := makeSizesCoder(sizes)
			actual := countXSizes(&c)
			if actual != row.expect {
				t.Errorf("expected %d transmitted sizes, got %d", row.expect, actual)
			}
		})
	}
}

func TestDetectDataType(t *testing.T) {
	type testRow struct {
		name    string
		literal []int
		expect  DataType
	}

	testData := [...]testRow{
		{name: "empty", literal: nil, expect: BinaryData},
		{name: "ascii", literal: []int{'a', 'b', 'c'}, expect: TextData},
		{name: "tab", literal: []int{9}, expect: TextData},
		{name: "newline", literal: []int{10}, expect: TextData},
		{name: "carriage-return", literal: []int{13}, expect: TextData},
		{name: "high-bytes", literal: []int{0xff}, expect: TextData},
		{name: "nul", literal: []int{0}, expect: BinaryData},
		{name: "control", literal: []int{14}, expect: BinaryData},
		{name: "high-control", literal: []int{31}, expect: BinaryData},
		{name: "bell-only", literal: []int{7}, expect: BinaryData},
		{name: "escape-only", literal: []int{27}, expect: BinaryData},
		{name: "text-with-nul", literal: []int{'a', 0}, expect: BinaryData},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			freqLL := make([]uint32, numLLCodes)
			for _, ch := range row.literal {
				freqLL[ch]++
			}
			freqLL[endBlockSymbol] = 1

			actual := detectDataType(freqLL)
			if actual != row.expect {
				t.Errorf("expected %v, got %v", row.expect, actual)
			}
		})
	}

}
