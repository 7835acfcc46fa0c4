package prompt

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func sampleSequence() Sequence {
	return Sequence{
		{
			Positive:     []Embedding{{1, 2}, {3, 4}, {5, 6}},
			Negative:     []Embedding{{0, 0}},
			PositivePool: Embedding{9, 9},
		},
		{
			Positive: []Embedding{{7, 8}},
			Negative: []Embedding{{1, 1}},
		},
	}
}

func TestDesiredFrames(t *testing.T) {
	s := sampleSequence()
	// Only the first frame's positive length counts.
	if got := s.DesiredFrames(); got != 3 {
		t.Errorf("DesiredFrames() = %d, want 3", got)
	}

	if got := (Sequence{}).DesiredFrames(); got != 0 {
		t.Errorf("empty DesiredFrames() = %d, want 0", got)
	}
}

func TestAtHoldsLastFrame(t *testing.T) {
	s := sampleSequence()

	if got := s.At(0).Positive[0][0]; got != 1 {
		t.Errorf("At(0) = frame with Positive[0][0]=%f, want 1", got)
	}
	if got := s.At(1).Positive[0][0]; got != 7 {
		t.Errorf("At(1) = frame with Positive[0][0]=%f, want 7", got)
	}
	// Past the end the last frame is held.
	for i := 2; i < 6; i++ {
		if got := s.At(i).Positive[0][0]; got != 7 {
			t.Errorf("At(%d) = frame with Positive[0][0]=%f, want 7", i, got)
		}
	}
}

func TestBuildConditioning(t *testing.T) {
	f := sampleSequence()[0]

	pos := f.BuildPositive()
	if len(pos.Tokens) != 3 {
		t.Errorf("positive Tokens = %d, want 3", len(pos.Tokens))
	}
	if len(pos.Pooled) != 2 || pos.Pooled[0] != 9 {
		t.Errorf("positive Pooled = %v, want [9 9]", pos.Pooled)
	}

	neg := f.BuildNegative()
	if len(neg.Tokens) != 1 {
		t.Errorf("negative Tokens = %d, want 1", len(neg.Tokens))
	}
	if neg.Pooled != nil {
		t.Errorf("negative Pooled = %v, want nil", neg.Pooled)
	}
}

func TestLoadSequenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")

	if err := SaveSequence(sampleSequence(), path); err != nil {
		t.Fatalf("SaveSequence() error: %v", err)
	}
	got, err := LoadSequence(path)
	if err != nil {
		t.Fatalf("LoadSequence() error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("loaded %d frames, want 2", len(got))
	}
	if got.DesiredFrames() != 3 {
		t.Errorf("DesiredFrames() = %d, want 3", got.DesiredFrames())
	}
	if got[0].PositivePool[1] != 9 {
		t.Errorf("PositivePool = %v, want [9 9]", got[0].PositivePool)
	}
}

func TestLoadSequenceJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.json")
	content := `{"frames": [{"positive": [[0.5, 0.5], [1.0, 1.0]], "negative": [[0, 0]]}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSequence(path)
	if err != nil {
		t.Fatalf("LoadSequence() error: %v", err)
	}
	if got.DesiredFrames() != 2 {
		t.Errorf("DesiredFrames() = %d, want 2", got.DesiredFrames())
	}
}

func TestLoadSequenceMissingFile(t *testing.T) {
	if _, err := LoadSequence("/nonexistent/prompts.yaml"); err == nil {
		t.Error("LoadSequence() succeeded on missing file, want error")
	}
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := Random(rng, 12, 8)

	if len(s) != 1 {
		t.Fatalf("Random() produced %d frames, want 1", len(s))
	}
	if got := s.DesiredFrames(); got != 12 {
		t.Errorf("DesiredFrames() = %d, want 12", got)
	}
	for i, e := range s[0].Positive {
		if len(e) != 8 {
			t.Fatalf("Positive[%d] width = %d, want 8", i, len(e))
		}
	}
}
