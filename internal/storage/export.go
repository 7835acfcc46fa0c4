package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// ExportData is the full JSON export of a stored run.
type ExportData struct {
	RunMetadata
	Trajectory []float64 `json:"trajectory"`
	Modifiers  []float64 `json:"modifiers"`
	Seeds      []uint64  `json:"seeds"`
}

// ExportJSON writes a run's metadata and trajectory as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, traj *Trajectory) error {
	data := ExportData{
		RunMetadata: meta,
		Trajectory:  traj.Means,
		Modifiers:   traj.Modifiers,
		Seeds:       traj.Seeds,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a run's trajectory in the stored CSV layout.
func ExportCSV(w io.Writer, traj *Trajectory) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"frame", "modifier", "mean", "seed"}); err != nil {
		return err
	}
	for i := range traj.Means {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(traj.Modifiers[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Means[i], 'f', 6, 64),
			strconv.FormatUint(traj.Seeds[i], 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
