package deflate

import (
	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/huffman"
)

// alphabet describes one of the three symbol alphabets used by the DEFLATE
// format: LL (literals, end-of-block, and match length categories), D
// (distance categories), and X (the code size alphabet used to transmit the
// other two).
type alphabet struct {
	// numCodes is the number of symbols in the alphabet.
	numCodes int

	// staticSizes lists the per-symbol code sizes of the fixed code for
	// this alphabet, or nil if the alphabet has no fixed code.
	staticSizes []byte

	// extraBits[sym-extraBase] counts the extra bits which follow each
	// symbol at or above extraBase.
	extraBits []byte
	extraBase int

	// maxSize is the longest code size the format permits.
	maxSize byte
}

var (
	llAlphabet = alphabet{
		numCodes:    numLLCodes,
		staticSizes: fixedLLSizes[:],
		extraBits:   extraLLBits[:],
		extraBase:   numLiterals + 1,
		maxSize:     maxCodeSize,
	}

	dAlphabet = alphabet{
		numCodes:    numDCodes,
		staticSizes: fixedDSizes[:],
		extraBits:   extraDBits[:],
		extraBase:   0,
		maxSize:     maxCodeSize,
	}

	xAlphabet = alphabet{
		numCodes:  numXCodes,
		extraBits: extraXBits[:],
		extraBase: 0,
		maxSize:   maxXCodeSize,
	}
)

// coder holds one block's canonical code assignment for one alphabet.
type coder struct {
	codes   []huffman.Code
	maxCode int
}

// encode returns the code for the given symbol.
func (c *coder) encode(sym huffman.Symbol) huffman.Code {
	return c.codes[sym]
}

// size returns the size in bits of the code for the given symbol, or 0 if
// the symbol has no code.
func (c *coder) size(sym huffman.Symbol) byte {
	return c.codes[sym].Size
}

// sizeBySymbol returns a freshly allocated list of the code size for each
// symbol in the alphabet.
func (c *coder) sizeBySymbol() []byte {
	out := make([]byte, len(c.codes))
	for n, hc := range c.codes {
		out[n] = hc.Size
	}
	return out
}

// treeBuilder constructs size-limited canonical Huffman codes from symbol
// frequencies, one alphabet at a time, and keeps a running total of the
// exact bit cost of the dynamic and static encodings of the current block.
//
// The construction is the textbook one, two-least-frequent-nodes merging,
// with one followup: any code deeper than the alphabet's size limit is
// clamped to the limit, and the damage to the prefix property is repaired
// by moving other leaves down the tree.
//
// Every detail of the node ordering here is load-bearing.  Which codes get
// which sizes depends on how the heap breaks frequency ties, and the
// comparison is deliberately non-strict on (frequency, depth) pairs.  A
// heap built on a strict comparison, container/heap included, merges tied
// nodes in a different order and assigns different (if equally optimal)
// sizes, which changes the emitted bitstream.
type treeBuilder struct {
	// freq, parent, size, and depth are node attributes.  The first
	// numCodes nodes are the leaves, indexed by symbol; the nodes above
	// them are interior, allocated in merge order.
	freq   []uint32
	parent []int32
	size   []byte
	depth  []byte

	// heap is a 1-based binary min-heap of node indices, ordered by
	// smaller.
	heap    []int32
	heapLen int

	// order records nodes in the order the merging loop removed them
	// from the heap, root last.  Walked backward it enumerates the tree
	// from the root outward; walked forward it enumerates leaves by
	// increasing frequency, interleaved with interior nodes.
	order []int32

	// countBySize[s] counts the leaves which were assigned size s.
	countBySize [maxCodeSize + 1]uint16

	// maxCode is the highest symbol with a nonzero frequency.
	maxCode int

	// optLen and staticLen accumulate the cost in bits of the block
	// body under the codes built so far versus under the fixed codes.
	// Not valid until after build has run for every alphabet involved.
	optLen    uint64
	staticLen uint64
}

func (tb *treeBuilder) reset() {
	tb.optLen = 0
	tb.staticLen = 0
}

func (tb *treeBuilder) prepare(numNodes int) {
	if cap(tb.freq) < numNodes {
		tb.freq = make([]uint32, numNodes)
		tb.parent = make([]int32, numNodes)
		tb.size = make([]byte, numNodes)
		tb.depth = make([]byte, numNodes)
		tb.heap = make([]int32, numNodes+1)
		tb.order = make([]int32, 0, numNodes)
	}
	tb.freq = tb.freq[:numNodes]
	tb.parent = tb.parent[:numNodes]
	tb.size = tb.size[:numNodes]
	tb.depth = tb.depth[:numNodes]
	tb.heap = tb.heap[:numNodes+1]
	tb.order = tb.order[:0]
	tb.heapLen = 0
}

// smaller returns true if node n sorts at or before node m: lower frequency
// first, then lower depth.  On a full tie it prefers n.  The non-strict
// final comparison affects which subtrees merge with which, and therefore
// the sizes that come out of the build.
func (tb *treeBuilder) smaller(n int32, m int32) bool {
	return tb.freq[n] < tb.freq[m] ||
		(tb.freq[n] == tb.freq[m] && tb.depth[n] <= tb.depth[m])
}

// siftDown restores the heap property below slot k.
func (tb *treeBuilder) siftDown(k int) {
	v := tb.heap[k]
	j := k << 1
	for j <= tb.heapLen {
		if j < tb.heapLen && tb.smaller(tb.heap[j+1], tb.heap[j]) {
			j++
		}
		if tb.smaller(v, tb.heap[j]) {
			break
		}
		tb.heap[k] = tb.heap[j]
		k = j
		j <<= 1
	}
	tb.heap[k] = v
}

// build assigns a canonical code to every symbol with a nonzero frequency
// and returns the result.  No code is longer than alpha.maxSize bits.
func (tb *treeBuilder) build(alpha *alphabet, freq []uint32) coder {
	assert.Assertf(len(freq) == alpha.numCodes,
		"frequency table has %d entries, expected %d", len(freq), alpha.numCodes)

	numCodes := alpha.numCodes
	tb.prepare(2*numCodes + 1)

	// Step 1: seed the heap with one node per used symbol, in symbol
	// order.  Unused symbols get no code.
	maxCode := -1
	for n := 0; n < numCodes; n++ {
		f := freq[n]
		tb.freq[n] = f
		if f == 0 {
			tb.size[n] = 0
			continue
		}
		tb.heapLen++
		tb.heap[tb.heapLen] = int32(n)
		tb.depth[n] = 0
		maxCode = n
	}

	// A valid code needs at least two symbols, even when the block uses
	// fewer.  Force codes into existence for up to two of the lowest
	// symbols; the cost accounting backs out one bit for each forced
	// code, which the pass below will charge for but never emit.
	for tb.heapLen < 2 {
		var node int
		if maxCode < 2 {
			maxCode++
			node = maxCode
		} else {
			node = 0
		}
		tb.heapLen++
		tb.heap[tb.heapLen] = int32(node)
		tb.freq[node] = 1
		tb.depth[node] = 0
		tb.optLen--
		if alpha.staticSizes != nil {
			tb.staticLen -= uint64(alpha.staticSizes[node])
		}
	}
	tb.maxCode = maxCode

	// Step 2: establish the heap property.
	for k := tb.heapLen / 2; k >= 1; k-- {
		tb.siftDown(k)
	}

	// Step 3: repeatedly merge the two least nodes under a fresh interior
	// node until one tree remains, recording the removal order.
	node := numCodes
	for {
		n := tb.heap[1]
		tb.heap[1] = tb.heap[tb.heapLen]
		tb.heapLen--
		tb.siftDown(1)
		m := tb.heap[1]

		tb.order = append(tb.order, n, m)

		tb.freq[node] = tb.freq[n] + tb.freq[m]
		depth := tb.depth[n]
		if depth < tb.depth[m] {
			depth = tb.depth[m]
		}
		tb.depth[node] = depth + 1
		tb.parent[n] = int32(node)
		tb.parent[m] = int32(node)

		tb.heap[1] = int32(node)
		node++
		tb.siftDown(1)

		if tb.heapLen < 2 {
			break
		}
	}
	tb.order = append(tb.order, tb.heap[1])

	// Step 4: turn tree depths into code sizes, clamped to the limit.
	tb.genSizes(alpha)

	// Step 5: assign the actual bit patterns.
	codes := make([]huffman.Code, numCodes)
	assignCodes(codes[:tb.maxCode+1], tb.size[:tb.maxCode+1], &tb.countBySize)
	return coder{codes: codes, maxCode: tb.maxCode}
}

// genSizes computes the size in bits of every code.  A leaf's depth in the
// merge tree is its natural size; any leaf deeper than alpha.maxSize is
// clamped, and the prefix property is repaired afterward by moving other
// leaves down.  Along the way it tallies countBySize and adds this
// alphabet's share to optLen and staticLen, extra bits included.
func (tb *treeBuilder) genSizes(alpha *alphabet) {
	maxSize := alpha.maxSize

	for i := range tb.countBySize {
		tb.countBySize[i] = 0
	}

	// The root has size zero.  Every other node is one bit longer than
	// its parent, which order guarantees was already visited.
	last := len(tb.order) - 1
	tb.size[tb.order[last]] = 0
	overflow := 0

	for i := last - 1; i >= 0; i-- {
		n := tb.order[i]
		size := tb.size[tb.parent[n]] + 1
		if size > maxSize {
			size = maxSize
			overflow++
		}
		tb.size[n] = size

		if int(n) > tb.maxCode {
			// Interior node.
			continue
		}

		tb.countBySize[size]++
		var extra byte
		if int(n) >= alpha.extraBase {
			extra = alpha.extraBits[int(n)-alpha.extraBase]
		}
		f := uint64(tb.freq[n])
		tb.optLen += f * uint64(size+extra)
		if alpha.staticSizes != nil {
			tb.staticLen += f * uint64(alpha.staticSizes[n]+extra)
		}
	}

	if overflow == 0 {
		return
	}

	// Clamping broke the prefix property: the deepest level now holds
	// more leaves than it has slots.  Take a leaf from the deepest
	// non-empty level above the limit and push it one level down; its
	// old slot becomes an interior node whose two children absorb a
	// pair of the excess.
	for overflow > 0 {
		size := maxSize - 1
		for tb.countBySize[size] == 0 {
			size--
		}
		tb.countBySize[size]--
		tb.countBySize[size+1] += 2
		tb.countBySize[maxSize]--
		overflow -= 2
	}

	// Now reassign sizes to match the repaired counts.  Within a size,
	// leaves keep their relative order from the merge record: walking
	// order forward visits leaves from least frequent to most frequent,
	// so the longest codes land on the rarest symbols.
	idx := 0
	for size := maxSize; size != 0; size-- {
		n := tb.countBySize[size]
		for n != 0 {
			m := tb.order[idx]
			idx++
			if int(m) > tb.maxCode {
				continue
			}
			if tb.size[m] != size {
				tb.optLen += uint64((int64(size) - int64(tb.size[m])) * int64(tb.freq[m]))
				tb.size[m] = size
			}
			n--
		}
	}
}
