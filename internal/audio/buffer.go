package audio

import (
	"sync"
	"time"
)

// Buffer accumulates fixed-size blocks of normalized float samples produced
// by a single capture device during one recording session. Blocks arrive in
// temporal order from one producer; the buffer preserves that order and grows
// without bound until the session is stopped and flattened.
type Buffer struct {
	blocks     [][]float32
	totalLen   int
	blockCount int
	lastUpdate time.Time

	mu sync.Mutex
}

// BufferStats represents accumulator statistics for logging and monitoring.
type BufferStats struct {
	Blocks     int       `json:"blocks"`
	Samples    int       `json:"samples"`
	LastUpdate time.Time `json:"last_update"`
}

// NewBuffer creates an empty sample accumulator. The capacity hint is in
// blocks and only pre-sizes the internal slice.
func NewBuffer(blockCapacity int) *Buffer {
	if blockCapacity < 0 {
		blockCapacity = 0
	}
	return &Buffer{
		blocks:     make([][]float32, 0, blockCapacity),
		lastUpdate: time.Now(),
	}
}

// AppendBlock appends one block of samples to the accumulator. The block is
// copied so the caller may reuse its slice for the next device read.
func (b *Buffer) AppendBlock(block []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := make([]float32, len(block))
	copy(copied, block)

	b.blocks = append(b.blocks, copied)
	b.totalLen += len(copied)
	b.blockCount++
	b.lastUpdate = time.Now()
}

// Flatten returns the contiguous concatenation of all accumulated blocks in
// arrival order. The total length equals the sum of the block lengths.
func (b *Buffer) Flatten() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	merged := make([]float32, 0, b.totalLen)
	for _, block := range b.blocks {
		merged = append(merged, block...)
	}
	return merged
}

// Reset discards all accumulated blocks so the buffer can serve a new session.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.blocks = b.blocks[:0]
	b.totalLen = 0
	b.blockCount = 0
	b.lastUpdate = time.Now()
}

// Len returns the total number of accumulated samples.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalLen
}

// BlockCount returns the number of blocks appended since the last reset.
func (b *Buffer) BlockCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blockCount
}

// Duration returns the accumulated audio duration at the given sample rate.
func (b *Buffer) Duration(sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Duration(float64(b.totalLen) / float64(sampleRate) * float64(time.Second))
}

// GetStats returns current accumulator statistics.
func (b *Buffer) GetStats() BufferStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BufferStats{
		Blocks:     b.blockCount,
		Samples:    b.totalLen,
		LastUpdate: b.lastUpdate,
	}
}
