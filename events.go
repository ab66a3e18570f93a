package deflate

import (
	"fmt"
)

// EventType identifies the kind of an Event.
type EventType byte

const (
	// StreamBeginEvent fires just before the first bit of output.
	StreamBeginEvent EventType = iota

	// BlockBeginEvent fires when the encoding of a block has been chosen,
	// before any of its bits are written.
	BlockBeginEvent

	// BlockTreesEvent fires once the code trees for a static or dynamic
	// block are known.
	BlockTreesEvent

	// BlockEndEvent fires after the last bit of a block.
	BlockEndEvent

	// StreamEndEvent fires after the final block has been written and the
	// output padded to a byte boundary.
	StreamEndEvent
)

var eventTypeNames = []string{
	"StreamBeginEvent",
	"BlockBeginEvent",
	"BlockTreesEvent",
	"BlockEndEvent",
	"StreamEndEvent",
}

// IsValid returns true if this EventType is a valid value.
func (eventType EventType) IsValid() bool {
	return uint(eventType) < uint(len(eventTypeNames))
}

// String returns the name of this EventType.
func (eventType EventType) String() string {
	if !eventType.IsValid() {
		return fmt.Sprintf("EventType(%d)", uint(eventType))
	}
	return eventTypeNames[eventType]
}

// Event is a diagnostic report sent by a Writer to its Tracers.  Events are
// delivered synchronously, under the Writer's lock; Tracers must not call
// back into the Writer.
type Event struct {
	// Type identifies what just happened.
	Type EventType

	// Block is present on BlockBeginEvent, BlockTreesEvent, and
	// BlockEndEvent.
	Block *BlockEvent

	// Trees is present on BlockTreesEvent.
	Trees *TreesEvent

	// DataType is the Writer's current guess about the nature of the
	// data being compressed.
	DataType DataType

	// InputBytesTotal counts the bytes of original data represented by
	// all tokens tallied so far, and OutputBytesTotal counts the bytes
	// of compressed output generated so far.
	InputBytesTotal  uint64
	OutputBytesTotal uint64

	// NumBlocks counts the blocks whose emission has begun.
	NumBlocks uint
}

// BlockEvent describes one compressed block.
type BlockEvent struct {
	Type    BlockType
	IsFinal bool
}

// TreesEvent describes the code trees of one static or dynamic block.  The
// counts are only set for dynamic blocks, where the header transmits them.
type TreesEvent struct {
	CodeCount          uint16
	LiteralLengthCount uint16
	DistanceCount      uint16
	CodeSizes          []byte
	LiteralLengthSizes []byte
	DistanceSizes      []byte
}

// Tracer receives diagnostic Events from a Writer.
type Tracer interface {
	OnEvent(Event)
}
