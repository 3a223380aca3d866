package metrics

import (
	"github.com/san-kum/signsim/internal/signsim"
)

// PeakEnergy tracks the largest potential or kinetic energy seen.
type PeakEnergy struct {
	name    string
	measure func(signsim.Snapshot) int
	peak    int
	samples int
}

func NewPeakPotential() *PeakEnergy {
	return &PeakEnergy{name: "peak_potential", measure: signsim.Snapshot.PotentialEnergy}
}

func NewPeakKinetic() *PeakEnergy {
	return &PeakEnergy{name: "peak_kinetic", measure: signsim.Snapshot.KineticEnergy}
}

func (e *PeakEnergy) Name() string { return e.name }

func (e *PeakEnergy) Observe(x signsim.Snapshot, step int) {
	v := e.measure(x)
	if e.samples == 0 || v > e.peak {
		e.peak = v
	}
	e.samples++
}

func (e *PeakEnergy) Value() float64 { return float64(e.peak) }

func (e *PeakEnergy) Reset() {
	e.peak = 0
	e.samples = 0
}

// MeanTotalEnergy averages the per-body |p|*|v| total over all steps.
type MeanTotalEnergy struct {
	name    string
	sum     int
	samples int
}

func NewMeanTotalEnergy() *MeanTotalEnergy {
	return &MeanTotalEnergy{name: "mean_total_energy"}
}

func (e *MeanTotalEnergy) Name() string { return e.name }

func (e *MeanTotalEnergy) Observe(x signsim.Snapshot, step int) {
	e.sum += x.TotalEnergy()
	e.samples++
}

func (e *MeanTotalEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.sum) / float64(e.samples)
}

func (e *MeanTotalEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}

// MomentumDrift is the largest |sum of velocities| seen. Anything other
// than zero means the pull rule was applied asymmetrically.
type MomentumDrift struct {
	name     string
	maxDrift int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(x signsim.Snapshot, step int) {
	if d := x.Momentum(); d > m.maxDrift {
		m.maxDrift = d
	} else if -d > m.maxDrift {
		m.maxDrift = -d
	}
}

func (m *MomentumDrift) Value() float64 { return float64(m.maxDrift) }

func (m *MomentumDrift) Reset() { m.maxDrift = 0 }
