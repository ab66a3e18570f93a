package deflate

import (
	"encoding/binary"

	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/huffman"
)

// bitwriter is the sink for block emission.  Writer implements it by
// appending to its output buffer; bitcounter implements it by counting,
// which is how the cost of an encoding is measured without committing to it.
type bitwriter interface {
	outputBufferWrite([]byte) bool
	outputBufferWriteU16(binary.ByteOrder, uint16) bool
	outputBitsWrite(byte, block) bool
	outputBitsWriteHC(huffman.Code) bool
	outputBitsFlush() bool
	outputBitsWindup() bool
	sendEvent(Event)
}

// bitcounter counts bits without storing them.
type bitcounter struct {
	numBits uint64
}

func (bc bitcounter) length() uint64 {
	return bc.numBits
}

func (bc *bitcounter) outputBufferWrite(p []byte) bool {
	bc.outputBitsWindup()
	bc.numBits += uint64(len(p)) << 3
	return true
}

func (bc *bitcounter) outputBufferWriteU16(bo binary.ByteOrder, x uint16) bool {
	bc.outputBitsWindup()
	bc.numBits += 16
	return true
}

func (bc *bitcounter) outputBitsWrite(size byte, bits block) bool {
	assert.Assertf(size <= bitsPerBlock, "size %d > bitsPerBlock %d", size, bitsPerBlock)
	bc.numBits += uint64(size)
	return true
}

func (bc *bitcounter) outputBitsWriteHC(hc huffman.Code) bool {
	return bc.outputBitsWrite(hc.Size, block(hc.Bits))
}

// outputBitsFlush releases whole buffered bytes only, which does not change
// the count.
func (bc *bitcounter) outputBitsFlush() bool {
	return true
}

// outputBitsWindup pads the count to a byte boundary.
func (bc *bitcounter) outputBitsWindup() bool {
	if remainder := bc.numBits & 7; remainder != 0 {
		bc.numBits += 8 - remainder
	}
	return true
}

func (bc *bitcounter) sendEvent(Event) {
}

var (
	_ bitwriter = (*Writer)(nil)
	_ bitwriter = (*bitcounter)(nil)
)
