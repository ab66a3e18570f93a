package deflate

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/fs"
	"sync"

	"github.com/chronos-tachyon/assert"
	buffer "github.com/chronos-tachyon/buffer/v3"
	"github.com/chronos-tachyon/huffman"
)

type flushWriter interface {
	io.Writer
	Flush() error
}

// Writer turns a stream of literal and copy tokens into DEFLATE compressed
// data on an io.Writer.  The caller tallies tokens one at a time, or feeds a
// TokenSource to EncodeTokens, and the Writer chooses block boundaries,
// block types, and Huffman codes.
type Writer struct {
	mu sync.Mutex

	clevel   CompressLevel
	mlevel   MemoryLevel
	strategy Strategy
	tracers  []Tracer

	w      io.Writer
	err    error
	state  writerState
	output buffer.Buffer

	obBlock block
	obLen   byte

	tokens []token
	freqLL [numLLCodes]uint32
	freqD  [numDCodes]uint32
	freqX  [numXCodes]uint32
	tb     treeBuilder

	// replay holds the pending block's bytes as long as it consists
	// solely of literals, making the stored encoding possible without
	// help from the caller.  The first copy token invalidates it.
	replay      bytes.Buffer
	replayValid bool

	// blockInput counts the original bytes represented by the pending
	// block's tokens.
	blockInput uint64

	dataType DataType

	inputBytesTotal  uint64
	outputBytesTotal uint64
	numBlocks        uint
}

// NewWriter constructs and returns a new Writer with the given io.Writer and
// options.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	assert.NotNil(&w)

	var o options
	o.reset()
	o.apply(opts)
	o.populateWriterDefaults()

	fw := &Writer{
		clevel:   o.clevel,
		mlevel:   o.mlevel,
		strategy: o.strategy,
		tracers:  o.tracers,

		w: w,
	}

	fw.output.Init(fw.outputNumBits())
	fw.tokens = make([]token, 0, fw.tokenLimit())
	fw.initBlock()

	return fw
}

func (fw *Writer) outputNumBits() uint {
	return uint(fw.mlevel + 7) // 8 .. 16 ⇒ [256 bytes .. 64 kibibytes]
}

func (fw *Writer) tokenLimit() uint {
	return uint(1) << (fw.mlevel + 6) // 7 .. 15 ⇒ [128 .. 32768 tokens]
}

// CompressLevel returns the CompressLevel which this Writer uses.
func (fw *Writer) CompressLevel() CompressLevel {
	fw.mu.Lock()
	clevel := fw.clevel
	fw.mu.Unlock()
	return clevel
}

// MemoryLevel returns the MemoryLevel which this Writer uses.
func (fw *Writer) MemoryLevel() MemoryLevel {
	fw.mu.Lock()
	mlevel := fw.mlevel
	fw.mu.Unlock()
	return mlevel
}

// Strategy returns the Strategy which this Writer uses.
func (fw *Writer) Strategy() Strategy {
	fw.mu.Lock()
	strategy := fw.strategy
	fw.mu.Unlock()
	return strategy
}

// Tracers returns the Tracers which this Writer uses.
func (fw *Writer) Tracers() []Tracer {
	var tracers []Tracer
	fw.mu.Lock()
	if len(fw.tracers) != 0 {
		tracers = make([]Tracer, len(fw.tracers))
		copy(tracers, fw.tracers)
	}
	fw.mu.Unlock()
	return tracers
}

// UnderlyingWriter returns the io.Writer which this Writer uses.
func (fw *Writer) UnderlyingWriter() io.Writer {
	fw.mu.Lock()
	w := fw.w
	fw.mu.Unlock()
	return w
}

// DataType returns the Writer's current guess about the nature of the data
// being compressed.  The guess firms up when the first block with frequency
// analysis is flushed.
func (fw *Writer) DataType() DataType {
	fw.mu.Lock()
	dataType := fw.dataType
	fw.mu.Unlock()
	return dataType
}

// InputBytesTotal returns the number of original data bytes represented by
// all tokens tallied since construction or the last Reset.
func (fw *Writer) InputBytesTotal() uint64 {
	fw.mu.Lock()
	total := fw.inputBytesTotal
	fw.mu.Unlock()
	return total
}

// OutputBytesTotal returns the number of compressed bytes generated since
// construction or the last Reset, including bytes still in the output
// buffer.
func (fw *Writer) OutputBytesTotal() uint64 {
	fw.mu.Lock()
	total := fw.outputBytesTotal
	fw.mu.Unlock()
	return total
}

// NumBlocks returns the number of blocks emitted since construction or the
// last Reset.
func (fw *Writer) NumBlocks() uint {
	fw.mu.Lock()
	numBlocks := fw.numBlocks
	fw.mu.Unlock()
	return numBlocks
}

// NumPendingTokens returns the number of tokens tallied into the pending
// block so far.
func (fw *Writer) NumPendingTokens() uint {
	fw.mu.Lock()
	numTokens := uint(len(fw.tokens))
	fw.mu.Unlock()
	return numTokens
}

// Reset re-initializes this Writer with the given io.Writer and options,
// abandoning any pending tokens and unwritten bits.  Any options given here
// are merged with all previous options.
func (fw *Writer) Reset(w io.Writer, opts ...Option) {
	assert.NotNil(&w)
	for _, opt := range opts {
		assert.NotNil(&opt)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.w = w
	fw.err = nil
	fw.state = noStreamWriterState

	fw.output.Clear()
	fw.obBlock = 0
	fw.obLen = 0
	fw.dataType = UnknownData
	fw.inputBytesTotal = 0
	fw.outputBytesTotal = 0
	fw.numBlocks = 0
	fw.initBlock()

	if len(opts) == 0 {
		return
	}

	var o options
	o.reset()
	o.clevel = fw.clevel
	o.mlevel = fw.mlevel
	o.strategy = fw.strategy
	o.tracers = fw.tracers
	o.apply(opts)
	o.populateWriterDefaults()

	fw.clevel = o.clevel
	fw.mlevel = o.mlevel
	fw.strategy = o.strategy
	fw.tracers = o.tracers

	oldONB := fw.output.NumBits()
	newONB := fw.outputNumBits()
	if oldONB != newONB {
		fw.output.Init(newONB)
	}

	if limit := fw.tokenLimit(); uint(cap(fw.tokens)) < limit {
		fw.tokens = make([]token, 0, limit)
	}
}

// TallyLiteral adds one literal byte to the pending block.  It returns true
// once the pending block is large enough that the caller should flush it,
// either with FlushBlock or with Flush(BlockFlush).
func (fw *Writer) TallyLiteral(ch byte) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.checkTallyState()
	return fw.tallyImpl(makeLiteralToken(ch))
}

// TallyCopy adds one back-reference copy to the pending block: length bytes
// (3 to 258), repeated from distance bytes (1 to 32768) before the current
// position.  The return value has the same meaning as for TallyLiteral.
func (fw *Writer) TallyCopy(distance uint, length uint) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.checkTallyState()
	return fw.tallyImpl(makeCopyToken(length, distance))
}

// Tally adds one Token to the pending block: a literal if t.Distance is 0,
// a copy otherwise.  The return value has the same meaning as for
// TallyLiteral.
func (fw *Writer) Tally(t Token) bool {
	if t.IsCopy() {
		return fw.TallyCopy(t.Distance, t.Length)
	}
	return fw.TallyLiteral(t.Literal)
}

// FlushBlock terminates the pending block, chooses its encoding, and emits
// it.  A nil raw is usually correct: it means "the original bytes are
// whatever the tokens say", and the Writer reconstructs them on its own for
// all-literal blocks.  Callers which tally copies and want the stored
// encoding to stay in play must pass the original bytes themselves.
//
// If isFinal is true, this block ends the stream: the output is padded to a
// byte boundary and handed to the underlying io.Writer, and no further
// tokens are accepted until Reset.
func (fw *Writer) FlushBlock(raw []byte, isFinal bool) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state == closedWriterState {
		return fs.ErrClosed
	}
	if fw.state == errorWriterState {
		return fw.err
	}
	if fw.state == closedStreamWriterState {
		assert.Raisef("final block already written; Reset the Writer to start a new stream")
	}

	if !fw.flushBlockImpl(raw, isFinal) {
		return fw.err
	}
	return nil
}

// Flush flushes buffered state to the underlying io.Writer.  How much
// reaches it, and at what cost in compression, depends on the FlushType.
func (fw *Writer) Flush(flushType FlushType) error {
	assert.Assertf(flushType.IsValid(), "invalid FlushType %d", uint(flushType))

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state == closedWriterState {
		return fs.ErrClosed
	}
	if fw.state == errorWriterState {
		return fw.err
	}
	if fw.state == closedStreamWriterState {
		if flushType == FinishFlush {
			return nil
		}
		assert.Raisef("final block already written; Reset the Writer to start a new stream")
	}

	if !fw.flushImpl(flushType) {
		return fw.err
	}
	return nil
}

// Close finishes the compressed stream and closes this Writer.
//
// The underlying io.Writer is *not* closed, even if it supports io.Closer.
//
// The only method which is guaranteed to be safe to call on a Writer after
// Close is Reset, which will return the Writer to a non-closed state.
func (fw *Writer) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state == closedWriterState {
		return fs.ErrClosed
	}

	helper := func() error {
		err := fw.err
		fw.state = closedWriterState
		fw.err = nil
		return err
	}

	if fw.state == errorWriterState {
		return helper()
	}

	if fw.state != closedStreamWriterState {
		if !fw.flushImpl(FinishFlush) {
			return helper()
		}
	}

	fw.state = closedWriterState
	return nil
}

// EncodeTokens drains src, tallying every token and flushing blocks as the
// token buffer fills.  When src reports io.EOF, the remaining tokens are
// flushed as the final block of the stream, exactly as if the caller had
// invoked Flush(FinishFlush).
func (fw *Writer) EncodeTokens(src TokenSource) error {
	assert.NotNil(&src)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state == closedWriterState {
		return fs.ErrClosed
	}
	if fw.state == errorWriterState {
		return fw.err
	}
	if fw.state == closedStreamWriterState {
		assert.Raisef("final block already written; Reset the Writer to start a new stream")
	}

	for {
		t, err := src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The source failed, not the Writer; the stream can
			// still be finished or abandoned by the caller.
			return err
		}
		if err := checkToken(t); err != nil {
			return err
		}

		var flushNow bool
		if t.IsCopy() {
			flushNow = fw.tallyImpl(makeCopyToken(t.Length, t.Distance))
		} else {
			flushNow = fw.tallyImpl(makeLiteralToken(t.Literal))
		}

		if flushNow {
			if !fw.flushBlockImpl(nil, false) {
				return fw.err
			}
		}
	}

	if !fw.flushImpl(FinishFlush) {
		return fw.err
	}
	return nil
}

func (fw *Writer) checkTallyState() {
	switch fw.state {
	case closedStreamWriterState:
		assert.Raisef("final block already written; Reset the Writer to start a new stream")
	case errorWriterState:
		assert.Raisef("Writer is in the error state: %v", fw.err)
	case closedWriterState:
		assert.Raisef("Writer is closed")
	}
}

func (fw *Writer) tallyImpl(t token) bool {
	if sym, _, _ := t.symbolLL(); sym >= 0 {
		fw.freqLL[sym]++
	}
	if sym, _, _ := t.symbolD(); sym >= 0 {
		fw.freqD[sym]++
	}

	switch t.tokenType() {
	case literalToken:
		if fw.replayValid {
			fw.replay.WriteByte(t.ch)
		}
		fw.blockInput++
		fw.inputBytesTotal++

	case copyToken:
		if fw.replayValid {
			fw.replayValid = false
			fw.replay.Reset()
		}
		fw.blockInput += uint64(t.length)
		fw.inputBytesTotal += uint64(t.length)
	}

	fw.tokens = append(fw.tokens, t)
	return uint(len(fw.tokens)) >= fw.tokenLimit()-1
}

// initBlock clears the per-block state.  The end-of-block symbol always has
// frequency 1, so that even an empty block assigns it a code.
func (fw *Writer) initBlock() {
	for i := range fw.freqLL {
		fw.freqLL[i] = 0
	}
	for i := range fw.freqD {
		fw.freqD[i] = 0
	}
	for i := range fw.freqX {
		fw.freqX[i] = 0
	}
	fw.freqLL[endBlockSymbol] = 1

	fw.tokens = fw.tokens[:0]
	fw.tb.reset()
	fw.replay.Reset()
	fw.replayValid = true
	fw.blockInput = 0
}

func (fw *Writer) openStream() {
	if fw.state == noStreamWriterState {
		fw.sendEvent(Event{
			Type: StreamBeginEvent,
		})
		fw.state = openStreamWriterState
	}
}

func (fw *Writer) flushImpl(flushType FlushType) bool {
	switch flushType {
	case BlockFlush, PartialFlush, SyncFlush, FullFlush:
		if len(fw.tokens) != 0 {
			if !fw.flushBlockImpl(nil, false) {
				return false
			}
		}

	case FinishFlush:
		if !fw.flushBlockImpl(nil, true) {
			return false
		}
	}

	if !fw.flushGuts(flushType) {
		return false
	}

	if !fw.outputBufferFlush() {
		return false
	}

	if x, ok := fw.w.(flushWriter); ok {
		if err := x.Flush(); err != nil {
			fw.state = errorWriterState
			fw.err = err
			return false
		}
	}

	return true
}

func (fw *Writer) flushGuts(flushType FlushType) bool {
	switch flushType {
	case BlockFlush:
		// pass

	case PartialFlush:
		// An empty static block: ten bits which let the decoder make
		// progress without padding the stream to a byte boundary.
		fw.openStream()
		tokens := []token{makeStopToken()}
		if !writeStaticBlock(fw, tokens, false) {
			return false
		}
		if !fw.outputBitsFlush() {
			return false
		}

	case SyncFlush, FullFlush:
		// An empty stored block: aligns the stream and produces the
		// recognizable 00 00 FF FF marker.
		fw.openStream()
		if !writeStoredBlock(fw, nil, false) {
			return false
		}

	case FinishFlush:
		// flushImpl already emitted the final block.
	}
	return true
}

// flushBlockImpl encodes the pending tokens as one complete block, choosing
// the cheapest of the three encodings, and resets the per-block state.
func (fw *Writer) flushBlockImpl(raw []byte, isFinal bool) bool {
	if raw == nil && fw.replayValid {
		raw = fw.replay.Bytes()
	}
	if raw != nil {
		assert.Assertf(uint64(len(raw)) == fw.blockInput,
			"raw block is %d bytes but the tallied tokens represent %d bytes",
			len(raw), fw.blockInput)
	}

	storedLen := fw.blockInput

	var ts treeSet
	var optBytes, staticBytes uint64

	if fw.clevel == 0 {
		// No analysis: pretend both tree encodings cost a hair more
		// than storing, so that only a missing raw buffer can force a
		// static block.
		optBytes = storedLen + 5
		staticBytes = optBytes
	} else {
		if fw.dataType == UnknownData {
			fw.dataType = detectDataType(fw.freqLL[:])
		}

		ts.cLL = fw.tb.build(&llAlphabet, fw.freqLL[:])
		ts.cD = fw.tb.build(&dAlphabet, fw.freqD[:])

		xtokens := takeTokens()
		defer giveTokens(xtokens)
		*xtokens = scanTreeSizes(*xtokens, &ts.cLL)
		*xtokens = scanTreeSizes(*xtokens, &ts.cD)

		studyFrequenciesX(*xtokens, fw.freqX[:])
		ts.cX = fw.tb.build(&xAlphabet, fw.freqX[:])

		ts.xtokens = *xtokens
		ts.numLL = ts.cLL.maxCode + 1
		ts.numD = ts.cD.maxCode + 1
		ts.numX = countXSizes(&ts.cX)

		// Account for the dynamic header: 5+5+4 bits of counts plus
		// 3 bits per transmitted X code size.
		fw.tb.optLen += 3*uint64(ts.numX) + 5 + 5 + 4

		optBytes = (fw.tb.optLen + 3 + 7) >> 3
		staticBytes = (fw.tb.staticLen + 3 + 7) >> 3
		if staticBytes <= optBytes {
			optBytes = staticBytes
		}
	}

	fw.tokens = append(fw.tokens, makeStopToken())
	tokens := fw.tokens

	fw.openStream()

	var ok bool
	switch {
	case storedLen+4 <= optBytes && raw != nil && storedLen <= maxStoredBlockSize:
		ok = writeStoredBlock(fw, raw, isFinal)
	case fw.strategy == FixedStrategy || staticBytes == optBytes:
		ok = writeStaticBlock(fw, tokens, isFinal)
	default:
		ok = writeDynamicBlock(fw, &ts, tokens, isFinal)
	}
	if !ok {
		return false
	}

	fw.initBlock()

	if isFinal {
		if !fw.outputBitsWindup() {
			return false
		}
		fw.sendEvent(Event{
			Type: StreamEndEvent,
		})
		fw.state = closedStreamWriterState
		if !fw.outputBufferFlush() {
			return false
		}
	}
	return true
}

func (fw *Writer) outputBufferWrite(p []byte) bool {
	if !fw.outputBitsWindup() {
		return false
	}
	return fw.outputRaw(p)
}

func (fw *Writer) outputBufferWriteU16(bo binary.ByteOrder, u16 uint16) bool {
	if !fw.outputBitsWindup() {
		return false
	}
	var tmp [2]byte
	bo.PutUint16(tmp[:], u16)
	return fw.outputRaw(tmp[:])
}

// outputRaw appends bytes to the output buffer, draining it to the
// underlying io.Writer whenever it fills.  It does not touch the bit
// accumulator; callers are responsible for alignment.
func (fw *Writer) outputRaw(p []byte) bool {
	length := uint(len(p))
	i := uint(0)
	for i < length {
		nn, _ := fw.output.Write(p[i:])
		i += uint(nn)
		fw.outputBytesTotal += uint64(nn)
		if i < length {
			if !fw.outputBufferFlush() {
				return false
			}
		}
	}
	return true
}

func (fw *Writer) outputBufferFlush() bool {
	_, err := fw.output.WriteTo(fw.w)
	if err != nil {
		fw.state = errorWriterState
		fw.err = err
		return false
	}
	return true
}

func (fw *Writer) outputPut16(x block) bool {
	var tmp [bytesPerBlock]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(x))
	return fw.outputRaw(tmp[:])
}

func (fw *Writer) outputBitsWrite(size byte, bits block) bool {
	assert.Assertf(size <= bitsPerBlock, "size %d > bitsPerBlock %d", size, bitsPerBlock)
	assert.Assertf(bits <= makeMask(size), "bits %#04x do not fit in %d bits", uint16(bits), size)

	if fw.obLen > bitsPerBlock-size {
		fw.obBlock |= bits << fw.obLen
		if !fw.outputPut16(fw.obBlock) {
			return false
		}
		fw.obBlock = bits >> (bitsPerBlock - fw.obLen)
		fw.obLen -= bitsPerBlock - size
	} else {
		fw.obBlock |= bits << fw.obLen
		fw.obLen += size
	}
	return true
}

func (fw *Writer) outputBitsWriteHC(hc huffman.Code) bool {
	return fw.outputBitsWrite(hc.Size, block(hc.Bits))
}

// outputBitsFlush releases as many whole buffered bytes as possible,
// leaving 0 to 7 bits in the accumulator.
func (fw *Writer) outputBitsFlush() bool {
	if fw.obLen == bitsPerBlock {
		ob := fw.obBlock
		fw.obBlock = 0
		fw.obLen = 0
		return fw.outputPut16(ob)
	}
	if fw.obLen >= 8 {
		var tmp [1]byte
		tmp[0] = byte(fw.obBlock)
		fw.obBlock >>= 8
		fw.obLen -= 8
		return fw.outputRaw(tmp[:])
	}
	return true
}

// outputBitsWindup empties the accumulator, padding the last byte with
// zeros.
func (fw *Writer) outputBitsWindup() bool {
	obLen := fw.obLen
	obBlock := fw.obBlock
	fw.obBlock = 0
	fw.obLen = 0

	if obLen > 8 {
		return fw.outputPut16(obBlock)
	}
	if obLen > 0 {
		var tmp [1]byte
		tmp[0] = byte(obBlock)
		return fw.outputRaw(tmp[:])
	}
	return true
}

func (fw *Writer) sendEvent(event Event) {
	if event.Type == BlockBeginEvent {
		fw.numBlocks++
	}
	event.DataType = fw.dataType
	event.InputBytesTotal = fw.inputBytesTotal
	event.OutputBytesTotal = fw.outputBytesTotal
	event.NumBlocks = fw.numBlocks
	for _, tr := range fw.tracers {
		tr.OnEvent(event)
	}
}

// treeSet carries the code assignments and header layout of one dynamic
// block from the cost analysis to the emission.
type treeSet struct {
	cLL     coder
	cD      coder
	cX      coder
	xtokens []token
	numLL   int
	numD    int
	numX    int
}

func writeStoredBlock(bw bitwriter, data []byte, isFinal bool) bool {
	assert.Assertf(uint(len(data)) <= maxStoredBlockSize,
		"uncompressed block length %d exceeds uint16_t", uint(len(data)))

	bw.sendEvent(Event{
		Type: BlockBeginEvent,
		Block: &BlockEvent{
			Type:    StoredBlock,
			IsFinal: isFinal,
		},
	})

	// BTYPE=00 BFINAL=x
	bits := block(0x00)
	if isFinal {
		bits = block(0x01)
	}

	u16 := uint16(len(data))

	if !bw.outputBitsWrite(3, bits) {
		return false
	}
	if !bw.outputBitsWindup() {
		return false
	}
	if !bw.outputBufferWriteU16(binary.LittleEndian, u16) {
		return false
	}
	if !bw.outputBufferWriteU16(binary.LittleEndian, ^u16) {
		return false
	}
	if !bw.outputBufferWrite(data) {
		return false
	}

	bw.sendEvent(Event{
		Type: BlockEndEvent,
		Block: &BlockEvent{
			Type:    StoredBlock,
			IsFinal: isFinal,
		},
	})

	return true
}

func writeStaticBlock(bw bitwriter, tokens []token, isFinal bool) bool {
	tokensLen := uint(len(tokens))
	assert.Assert(tokensLen >= 1, "at least 1 token is required")
	assert.Assert(tokens[tokensLen-1].tokenType() == stopToken, "last token must be a stop token")

	bw.sendEvent(Event{
		Type: BlockBeginEvent,
		Block: &BlockEvent{
			Type:    StaticBlock,
			IsFinal: isFinal,
		},
	})

	// BTYPE=01 BFINAL=x
	bits := block(0x02)
	if isFinal {
		bits = block(0x03)
	}

	if !bw.outputBitsWrite(3, bits) {
		return false
	}

	bw.sendEvent(Event{
		Type: BlockTreesEvent,
		Block: &BlockEvent{
			Type:    StaticBlock,
			IsFinal: isFinal,
		},
		Trees: &TreesEvent{
			LiteralLengthSizes: fixedLL.sizeBySymbol(),
			DistanceSizes:      fixedD.sizeBySymbol(),
		},
	})

	for _, t := range tokens {
		if !t.encodeLLD(bw, &fixedLL, &fixedD) {
			return false
		}
	}

	bw.sendEvent(Event{
		Type: BlockEndEvent,
		Block: &BlockEvent{
			Type:    StaticBlock,
			IsFinal: isFinal,
		},
	})

	return true
}

func writeDynamicBlock(bw bitwriter, ts *treeSet, tokens []token, isFinal bool) bool {
	tokensLen := uint(len(tokens))
	assert.Assert(tokensLen >= 1, "at least 1 token is required")
	assert.Assert(tokens[tokensLen-1].tokenType() == stopToken, "last token must be a stop token")
	assert.Assertf(ts.numLL >= 257 && ts.numLL <= numLLCodes, "numLL %d out of range [257, %d]", ts.numLL, numLLCodes)
	assert.Assertf(ts.numD >= 1 && ts.numD <= numDCodes, "numD %d out of range [1, %d]", ts.numD, numDCodes)
	assert.Assertf(ts.numX >= 4 && ts.numX <= numXCodes, "numX %d out of range [4, %d]", ts.numX, numXCodes)

	bw.sendEvent(Event{
		Type: BlockBeginEvent,
		Block: &BlockEvent{
			Type:    DynamicBlock,
			IsFinal: isFinal,
		},
	})

	// BTYPE=10 BFINAL=x
	bits := block(0x04)
	if isFinal {
		bits = block(0x05)
	}

	if !bw.outputBitsWrite(3, bits) {
		return false
	}
	if !bw.outputBitsWrite(5, block(ts.numLL-257)) {
		return false
	}
	if !bw.outputBitsWrite(5, block(ts.numD-1)) {
		return false
	}
	if !bw.outputBitsWrite(4, block(ts.numX-4)) {
		return false
	}
	for i := 0; i < ts.numX; i++ {
		if !bw.outputBitsWrite(3, block(ts.cX.size(huffman.Symbol(scramble[i])))) {
			return false
		}
	}
	for _, t := range ts.xtokens {
		if !t.encodeX(bw, &ts.cX) {
			return false
		}
	}

	bw.sendEvent(Event{
		Type: BlockTreesEvent,
		Block: &BlockEvent{
			Type:    DynamicBlock,
			IsFinal: isFinal,
		},
		Trees: &TreesEvent{
			CodeCount:          uint16(ts.numX),
			LiteralLengthCount: uint16(ts.numLL),
			DistanceCount:      uint16(ts.numD),
			CodeSizes:          ts.cX.sizeBySymbol(),
			LiteralLengthSizes: ts.cLL.sizeBySymbol(),
			DistanceSizes:      ts.cD.sizeBySymbol(),
		},
	})

	for _, t := range tokens {
		if !t.encodeLLD(bw, &ts.cLL, &ts.cD) {
			return false
		}
	}

	bw.sendEvent(Event{
		Type: BlockEndEvent,
		Block: &BlockEvent{
			Type:    DynamicBlock,
			IsFinal: isFinal,
		},
	})

	return true
}
