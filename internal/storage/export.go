package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/signsim/internal/signsim"
)

type ExportData struct {
	ID                string             `json:"id,omitempty"`
	Name              string             `json:"name,omitempty"`
	Bodies            int                `json:"bodies"`
	Steps             int                `json:"steps"`
	Positions         [][]int            `json:"positions"`
	Velocities        [][]int            `json:"velocities"`
	PotentialEnergies []int              `json:"potential_energies"`
	KineticEnergies   []int              `json:"kinetic_energies"`
	Metrics           map[string]float64 `json:"metrics,omitempty"`
}

// ExportJSON writes the four trajectory series as indented JSON. meta may
// be nil.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *signsim.Trajectory) error {
	data := ExportData{
		Bodies:            traj.Bodies(),
		Steps:             traj.Steps(),
		Positions:         traj.Positions(),
		Velocities:        traj.Velocities(),
		PotentialEnergies: traj.PotentialEnergies(),
		KineticEnergies:   traj.KineticEnergies(),
		Metrics:           traj.Metrics,
	}
	if meta != nil {
		data.ID = meta.ID
		data.Name = meta.Name
		if len(meta.Metrics) > 0 {
			data.Metrics = meta.Metrics
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per step: step, p0..pN-1, v0..vN-1, pe, ke.
func WriteCSV(w io.Writer, traj *signsim.Trajectory) error {
	cw := csv.NewWriter(w)

	n := traj.Bodies()
	header := make([]string, 0, 2*n+3)
	header = append(header, "step")
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	header = append(header, "pe", "ke")

	if err := cw.Write(header); err != nil {
		return err
	}

	pe := traj.PotentialEnergies()
	ke := traj.KineticEnergies()
	row := make([]string, len(header))
	for step := 0; step < traj.Len(); step++ {
		x := traj.At(step)
		row[0] = strconv.Itoa(step)
		for i := 0; i < n; i++ {
			row[1+i] = strconv.Itoa(x.Position(i))
			row[1+n+i] = strconv.Itoa(x.Velocity(i))
		}
		row[1+2*n] = strconv.Itoa(pe[step])
		row[2+2*n] = strconv.Itoa(ke[step])
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV back into a trajectory. Energy
// columns are ignored and recomputed.
func ReadCSV(r io.Reader) (*signsim.Trajectory, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: trajectory has no rows")
	}

	cols := len(records[0])
	if cols < 3 || (cols-3)%2 != 0 {
		return nil, fmt.Errorf("storage: unexpected header %v", records[0])
	}
	n := (cols - 3) / 2

	snapshots := make([]signsim.Snapshot, 0, len(records)-1)
	for line, record := range records[1:] {
		pos, err := atois(record[1 : 1+n])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", line+1, err)
		}
		vel, err := atois(record[1+n : 1+2*n])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", line+1, err)
		}
		s, err := signsim.NewSnapshot(pos, vel)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return signsim.NewTrajectory(snapshots)
}

func atois(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
