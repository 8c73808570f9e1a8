package chunk

import "testing"

func TestNewAdapterRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewAdapter(size, false); err == nil {
			t.Fatalf("NewAdapter(%d) expected error", size)
		}
	}
}

func TestPushCutsFullChunks(t *testing.T) {
	a, err := NewAdapter(3, false)
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	chunks := a.Push([]float64{1, 2, 3, 4, 5, 6, 7}, false)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	want := [][]float64{{1, 2, 3}, {4, 5, 6}}
	for i, c := range chunks {
		for j, v := range c.Samples {
			if v != want[i][j] {
				t.Fatalf("chunk %d sample %d = %v, want %v", i, j, v, want[i][j])
			}
		}
		if c.End {
			t.Fatalf("chunk %d marked End mid-stream", i)
		}
	}
	if a.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", a.Pending())
	}
}

func TestPushBuffersAcrossCalls(t *testing.T) {
	a, _ := NewAdapter(4, false)
	if got := a.Push([]float64{1, 2}, false); len(got) != 0 {
		t.Fatalf("premature chunk: %v", got)
	}
	chunks := a.Push([]float64{3, 4, 5}, false)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	want := []float64{1, 2, 3, 4}
	for i, v := range chunks[0].Samples {
		if v != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestPushEndPadsRemainder(t *testing.T) {
	a, _ := NewAdapter(4, true)
	chunks := a.Push([]float64{1, 2, 3, 4, 5, 6}, true)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	last := chunks[1]
	if !last.End {
		t.Fatal("final chunk not marked End")
	}
	want := []float64{5, 6, 0, 0}
	for i, v := range last.Samples {
		if v != want[i] {
			t.Fatalf("padded sample %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestPushEndDropsRemainderWithoutPad(t *testing.T) {
	a, _ := NewAdapter(4, false)
	chunks := a.Push([]float64{1, 2, 3, 4, 5, 6}, true)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if !chunks[0].End {
		t.Fatal("last full chunk not marked End")
	}
	if a.Pending() != 0 {
		t.Fatalf("Pending = %d after end, want 0", a.Pending())
	}
}

func TestPushEndExactMultipleMarksLastChunk(t *testing.T) {
	a, _ := NewAdapter(2, true)
	chunks := a.Push([]float64{1, 2, 3, 4}, true)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if chunks[0].End || !chunks[1].End {
		t.Fatalf("End markers = %v,%v, want false,true", chunks[0].End, chunks[1].End)
	}
}

func TestPushEndEmptyStream(t *testing.T) {
	a, _ := NewAdapter(4, true)
	if chunks := a.Push(nil, true); len(chunks) != 0 {
		t.Fatalf("chunks = %d, want 0 for empty stream", len(chunks))
	}
}

func TestChunkOwnsBackingArray(t *testing.T) {
	a, _ := NewAdapter(2, false)
	block := []float64{1, 2, 3, 4}
	chunks := a.Push(block, false)
	block[0] = 99
	if chunks[0].Samples[0] != 1 {
		t.Fatal("chunk shares memory with pushed block")
	}
}
