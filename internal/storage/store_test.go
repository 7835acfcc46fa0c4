package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/latentwalk/internal/latent"
	"github.com/san-kum/latentwalk/internal/vis"
)

func testResult() *vis.Result {
	return &vis.Result{
		Latents:    latent.Tensor{Shape: []int{3, 4, 8, 8}, Data: make([]float64, 3*4*8*8)},
		Trajectory: []float64{1.0, 2.0, 2.5},
		Modifiers:  []float64{1.0, 1.0, 0.5},
		Seeds:      []uint64{42, 43, 44},
		Frames:     3,
		Clamped:    1,
		Flips:      2,
	}
}

func testMeta() RunMetadata {
	return RunMetadata{
		LatentMode:  "bounce",
		SeedMode:    "increase",
		Seed:        42,
		ModLimit:    5.0,
		ImageLimit:  -1,
		Backend:     "offline",
		Model:       "stable-diffusion",
		SamplerName: "euler",
		Scheduler:   "normal",
		Steps:       20,
		CFG:         8.0,
		Denoise:     1.0,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	runID, err := store.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !strings.HasPrefix(runID, "bounce_") {
		t.Errorf("runID = %q, want bounce_<ts>", runID)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("ID = %q, want %q", meta.ID, runID)
	}
	if meta.Seed != 42 || meta.LatentMode != "bounce" {
		t.Errorf("metadata fields lost: %+v", meta)
	}
	if meta.Frames != 3 || meta.Clamped != 1 || meta.Flips != 2 {
		t.Errorf("result counters lost: frames=%d clamped=%d flips=%d", meta.Frames, meta.Clamped, meta.Flips)
	}
	if len(meta.LatentShape) != 4 || meta.LatentShape[0] != 3 {
		t.Errorf("latent shape lost: %v", meta.LatentShape)
	}
}

func TestLoadTrajectory(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	traj, err := store.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("LoadTrajectory() error: %v", err)
	}

	wantMeans := []float64{1.0, 2.0, 2.5}
	wantMods := []float64{1.0, 1.0, 0.5}
	wantSeeds := []uint64{42, 43, 44}
	if len(traj.Means) != 3 {
		t.Fatalf("loaded %d frames, want 3", len(traj.Means))
	}
	for i := range wantMeans {
		if traj.Means[i] != wantMeans[i] {
			t.Errorf("Means[%d] = %f, want %f", i, traj.Means[i], wantMeans[i])
		}
		if traj.Modifiers[i] != wantMods[i] {
			t.Errorf("Modifiers[%d] = %f, want %f", i, traj.Modifiers[i], wantMods[i])
		}
		if traj.Seeds[i] != wantSeeds[i] {
			t.Errorf("Seeds[%d] = %d, want %d", i, traj.Seeds[i], wantSeeds[i])
		}
	}
}

func TestListMissingBaseDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("List() = %d runs, want 0", len(runs))
	}
}

func TestListSkipsForeignEntries(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save(testMeta(), testResult()); err != nil {
		t.Fatal(err)
	}

	// A stray file and a directory without metadata must be skipped.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "empty_dir"), 0755); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(dir, "corrupt_1")
	if err := os.MkdirAll(corrupt, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(corrupt, "metadata.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("List() = %d runs, want 1", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("bounce_0"); err == nil {
		t.Error("Load() succeeded for unknown run, want error")
	}
	if _, err := store.LoadTrajectory("bounce_0"); err == nil {
		t.Error("LoadTrajectory() succeeded for unknown run, want error")
	}
}

func TestExportJSON(t *testing.T) {
	meta := testMeta()
	meta.ID = "bounce_1"
	traj := &Trajectory{
		Means:     []float64{1, 2},
		Modifiers: []float64{0.5, 0.5},
		Seeds:     []uint64{7, 8},
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, traj); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if got.ID != "bounce_1" || got.LatentMode != "bounce" {
		t.Errorf("metadata fields lost: %+v", got.RunMetadata)
	}
	if len(got.Trajectory) != 2 || got.Trajectory[1] != 2 {
		t.Errorf("trajectory lost: %v", got.Trajectory)
	}
	if len(got.Seeds) != 2 || got.Seeds[0] != 7 {
		t.Errorf("seeds lost: %v", got.Seeds)
	}
}

func TestExportCSV(t *testing.T) {
	traj := &Trajectory{
		Means:     []float64{1, 2},
		Modifiers: []float64{0.5, 0.4},
		Seeds:     []uint64{7, 8},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, traj); err != nil {
		t.Fatalf("ExportCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("exported %d lines, want 3", len(lines))
	}
	if lines[0] != "frame,modifier,mean,seed" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,0.500000,1.000000,7") {
		t.Errorf("row = %q", lines[1])
	}
}
