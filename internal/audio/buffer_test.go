package audio

import (
	"testing"
	"time"
)

func TestNewBuffer(t *testing.T) {
	buffer := NewBuffer(16)

	if buffer == nil {
		t.Fatal("NewBuffer returned nil")
	}

	if buffer.Len() != 0 {
		t.Errorf("Expected initial length 0, got %d", buffer.Len())
	}

	if buffer.BlockCount() != 0 {
		t.Errorf("Expected initial block count 0, got %d", buffer.BlockCount())
	}
}

func TestAppendBlock(t *testing.T) {
	buffer := NewBuffer(4)

	initialTime := buffer.GetStats().LastUpdate

	// Wait a bit to ensure time difference
	time.Sleep(10 * time.Millisecond)

	block := make([]float32, 4096)
	for i := range block {
		block[i] = float32(i) / 4096
	}

	buffer.AppendBlock(block)

	if buffer.Len() != 4096 {
		t.Errorf("Expected 4096 samples, got %d", buffer.Len())
	}

	if buffer.BlockCount() != 1 {
		t.Errorf("Expected 1 block, got %d", buffer.BlockCount())
	}

	if !buffer.GetStats().LastUpdate.After(initialTime) {
		t.Error("Expected last update time to be updated")
	}
}

func TestAppendBlockCopiesInput(t *testing.T) {
	buffer := NewBuffer(1)

	block := []float32{0.1, 0.2, 0.3}
	buffer.AppendBlock(block)

	// Mutating the caller's slice must not affect accumulated samples
	block[0] = -1

	merged := buffer.Flatten()
	if merged[0] != 0.1 {
		t.Errorf("Expected accumulated sample 0.1, got %f", merged[0])
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	buffer := NewBuffer(4)

	blocks := [][]float32{
		{0.1, 0.2},
		{0.3},
		{0.4, 0.5, 0.6},
	}
	totalLen := 0
	for _, block := range blocks {
		buffer.AppendBlock(block)
		totalLen += len(block)
	}

	merged := buffer.Flatten()

	if len(merged) != totalLen {
		t.Fatalf("Expected flattened length %d, got %d", totalLen, len(merged))
	}

	expected := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	for i, want := range expected {
		if merged[i] != want {
			t.Errorf("Sample %d: expected %f, got %f", i, want, merged[i])
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	buffer := NewBuffer(0)

	merged := buffer.Flatten()
	if len(merged) != 0 {
		t.Errorf("Expected empty waveform, got %d samples", len(merged))
	}
}

func TestReset(t *testing.T) {
	buffer := NewBuffer(2)

	buffer.AppendBlock([]float32{0.1, 0.2, 0.3})
	buffer.AppendBlock([]float32{0.4})

	buffer.Reset()

	if buffer.Len() != 0 {
		t.Errorf("Expected 0 samples after reset, got %d", buffer.Len())
	}

	if buffer.BlockCount() != 0 {
		t.Errorf("Expected 0 blocks after reset, got %d", buffer.BlockCount())
	}

	// Buffer must be reusable for a new session
	buffer.AppendBlock([]float32{0.7, 0.8})
	merged := buffer.Flatten()
	if len(merged) != 2 || merged[0] != 0.7 {
		t.Errorf("Expected fresh accumulation after reset, got %v", merged)
	}
}

func TestDuration(t *testing.T) {
	buffer := NewBuffer(1)

	buffer.AppendBlock(make([]float32, 16000)) // 1 second at 16kHz

	if got := buffer.Duration(16000); got != time.Second {
		t.Errorf("Expected duration 1s, got %v", got)
	}

	if got := buffer.Duration(0); got != 0 {
		t.Errorf("Expected zero duration for invalid rate, got %v", got)
	}
}

func TestGetStats(t *testing.T) {
	buffer := NewBuffer(2)

	buffer.AppendBlock(make([]float32, 100))
	buffer.AppendBlock(make([]float32, 50))

	stats := buffer.GetStats()

	if stats.Blocks != 2 {
		t.Errorf("Expected 2 blocks, got %d", stats.Blocks)
	}

	if stats.Samples != 150 {
		t.Errorf("Expected 150 samples, got %d", stats.Samples)
	}
}
