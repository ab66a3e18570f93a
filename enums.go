package deflate

import (
	"fmt"
)

// FlushType selects the behavior of Writer.Flush.
type FlushType byte

const (
	// BlockFlush terminates the current block, if any tokens are pending,
	// and emits it.  The output is not byte-aligned and buffered bits may
	// be withheld.
	BlockFlush FlushType = iota

	// PartialFlush emits any pending block, then an empty static block.
	// Enough of the output reaches the underlying io.Writer that a
	// decoder can reproduce all tokens tallied so far, but the stream is
	// not byte-aligned.
	PartialFlush

	// SyncFlush emits any pending block, then an empty stored block.  The
	// output becomes byte-aligned and ends with the bytes 00 00 FF FF.
	SyncFlush

	// FullFlush is SyncFlush at this layer.  Callers driving an LZ77
	// match finder should also discard their window, so that decoding can
	// restart from this point.
	FullFlush

	// FinishFlush emits all pending tokens as the final block of the
	// stream.  No further tokens are accepted until Reset.
	FinishFlush
)

var flushTypeNames = []string{
	"BlockFlush",
	"PartialFlush",
	"SyncFlush",
	"FullFlush",
	"FinishFlush",
}

// IsValid returns true if this FlushType is a valid value.
func (flushType FlushType) IsValid() bool {
	return uint(flushType) < uint(len(flushTypeNames))
}

// String returns the name of this FlushType.
func (flushType FlushType) String() string {
	if !flushType.IsValid() {
		return fmt.Sprintf("FlushType(%d)", uint(flushType))
	}
	return flushTypeNames[flushType]
}

// Strategy modifies the block type decision.
type Strategy byte

const (
	// DefaultStrategy picks whichever of the three block types encodes
	// the current block in the fewest bytes.
	DefaultStrategy Strategy = iota

	// FixedStrategy forbids dynamic blocks.  The choice between a stored
	// block and a static block proceeds as usual.  Useful for
	// applications that want to decode with specialized hardware or to
	// avoid inflating short payloads with tree descriptions.
	FixedStrategy
)

var strategyNames = []string{
	"DefaultStrategy",
	"FixedStrategy",
}

// IsValid returns true if this Strategy is a valid value.
func (strategy Strategy) IsValid() bool {
	return uint(strategy) < uint(len(strategyNames))
}

// String returns the name of this Strategy.
func (strategy Strategy) String() string {
	if !strategy.IsValid() {
		return fmt.Sprintf("Strategy(%d)", uint(strategy))
	}
	return strategyNames[strategy]
}

// CompressLevel adjusts the effort which the Writer puts into compressing
// the data stream.  At this layer only two behaviors exist: level 0 forces
// stored blocks, and every other level performs full frequency analysis.
// The level is also what callers conventionally use to tune their match
// finder, so the full range is accepted and reported.
type CompressLevel int8

const (
	NoCompression      CompressLevel = 0
	BestSpeed          CompressLevel = 1
	BestCompression    CompressLevel = 9
	DefaultCompression CompressLevel = -1
)

// IsValid returns true if this CompressLevel is a valid value.
func (clevel CompressLevel) IsValid() bool {
	return clevel >= -1 && clevel <= 9
}

// String returns the name of this CompressLevel.
func (clevel CompressLevel) String() string {
	switch clevel {
	case DefaultCompression:
		return "DefaultCompression"
	case NoCompression:
		return "NoCompression"
	default:
		return fmt.Sprintf("CompressLevel(%d)", int(clevel))
	}
}

// MemoryLevel trades memory for compression efficiency.  Each step up
// doubles both the token buffer and the output buffer, letting the Writer
// defer its block boundary decisions longer.
type MemoryLevel int8

// DefaultMemoryLevel selects the default memory level, which is 8.
const DefaultMemoryLevel MemoryLevel = 0

// IsValid returns true if this MemoryLevel is a valid value.
func (mlevel MemoryLevel) IsValid() bool {
	return mlevel >= 0 && mlevel <= 9
}

// String returns the name of this MemoryLevel.
func (mlevel MemoryLevel) String() string {
	if mlevel == DefaultMemoryLevel {
		return "DefaultMemoryLevel"
	}
	return fmt.Sprintf("MemoryLevel(%d)", int(mlevel))
}

// DataType is the Writer's guess about the nature of the data being
// compressed.  It does not affect the compressed output.
type DataType byte

const (
	UnknownData DataType = iota
	BinaryData
	TextData
)

var dataTypeNames = []string{
	"UnknownData",
	"BinaryData",
	"TextData",
}

// IsValid returns true if this DataType is a valid value.
func (dataType DataType) IsValid() bool {
	return uint(dataType) < uint(len(dataTypeNames))
}

// String returns the name of this DataType.
func (dataType DataType) String() string {
	if !dataType.IsValid() {
		return fmt.Sprintf("DataType(%d)", uint(dataType))
	}
	return dataTypeNames[dataType]
}

// BlockType identifies the encoding of one compressed block.
type BlockType byte

const (
	StoredBlock BlockType = iota
	StaticBlock
	DynamicBlock
)

var blockTypeNames = []string{
	"StoredBlock",
	"StaticBlock",
	"DynamicBlock",
}

// IsValid returns true if this BlockType is a valid value.
func (blockType BlockType) IsValid() bool {
	return uint(blockType) < uint(len(blockTypeNames))
}

// String returns the name of this BlockType.
func (blockType BlockType) String() string {
	if !blockType.IsValid() {
		return fmt.Sprintf("BlockType(%d)", uint(blockType))
	}
	return blockTypeNames[blockType]
}

type writerState byte

const (
	noStreamWriterState writerState = iota
	openStreamWriterState
	closedStreamWriterState
	errorWriterState
	closedWriterState
)
