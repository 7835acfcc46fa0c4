// Package storage persists run telemetry: one directory per run with
// metadata.json and trajectory.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/latentwalk/internal/vis"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	LatentMode string  `json:"latent_mode"`
	SeedMode   string  `json:"seed_mode"`
	Seed       uint64  `json:"seed"`
	ModLimit   float64 `json:"mod_limit"`
	ImageLimit int     `json:"image_limit"`

	Backend     string  `json:"backend"`
	Model       string  `json:"model"`
	SamplerName string  `json:"sampler_name"`
	Scheduler   string  `json:"scheduler"`
	Steps       int     `json:"steps"`
	CFG         float64 `json:"cfg"`
	Denoise     float64 `json:"denoise"`

	Frames      int   `json:"frames"`
	Clamped     int   `json:"clamped"`
	Flips       int   `json:"flips"`
	LatentShape []int `json:"latent_shape"`
}

// Trajectory is the per-frame telemetry loaded back from a run.
type Trajectory struct {
	Means     []float64
	Modifiers []float64
	Seeds     []uint64
}

// Save writes the run under a fresh <latent_mode>_<unix> directory and
// returns its ID. Frame counts and output shape are taken from the
// result; the caller fills the configuration fields.
func (s *Store) Save(meta RunMetadata, result *vis.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.LatentMode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Frames = result.Frames
	meta.Clamped = result.Clamped
	meta.Flips = result.Flips
	meta.LatentShape = result.Latents.Shape

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"frame", "modifier", "mean", "seed"}); err != nil {
		return "", err
	}
	for i := range result.Trajectory {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Modifiers[i], 'f', 6, 64),
			strconv.FormatFloat(result.Trajectory[i], 'f', 6, 64),
			strconv.FormatUint(result.Seeds[i], 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every readable run. Unreadable or foreign
// directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{}
	if len(records) < 2 {
		return traj, nil
	}

	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		modifier, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		mean, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		seed, err := strconv.ParseUint(record[3], 10, 64)
		if err != nil {
			continue
		}
		traj.Modifiers = append(traj.Modifiers, modifier)
		traj.Means = append(traj.Means, mean)
		traj.Seeds = append(traj.Seeds, seed)
	}

	return traj, nil
}
