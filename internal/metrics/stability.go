package metrics

import (
	"github.com/san-kum/signsim/internal/signsim"
)

// Containment is the fraction of steps at which every body stays within
// threshold of the origin.
type Containment struct {
	name       string
	threshold  int
	violations int
	samples    int
}

func NewContainment(threshold int) *Containment {
	return &Containment{
		name:      "containment",
		threshold: threshold,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(x signsim.Snapshot, step int) {
	c.samples++
	for i := 0; i < x.Bodies(); i++ {
		p := x.Position(i)
		if p > c.threshold || -p > c.threshold {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Spread is the distance between the outermost bodies at the last
// observed step.
type Spread struct {
	name   string
	spread int
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(x signsim.Snapshot, step int) {
	if x.Bodies() == 0 {
		s.spread = 0
		return
	}
	lo, hi := x.Position(0), x.Position(0)
	for i := 1; i < x.Bodies(); i++ {
		p := x.Position(i)
		lo = min(lo, p)
		hi = max(hi, p)
	}
	s.spread = hi - lo
}

func (s *Spread) Value() float64 { return float64(s.spread) }

func (s *Spread) Reset() { s.spread = 0 }

// Defaults returns the metrics attached to every CLI run. Containment uses
// the initial extent of the system as its threshold.
func Defaults(initial []int) []signsim.Metric {
	extent := 0
	for _, p := range initial {
		if p < 0 {
			p = -p
		}
		extent = max(extent, p)
	}
	return []signsim.Metric{
		NewPeakPotential(),
		NewPeakKinetic(),
		NewMeanTotalEnergy(),
		NewMomentumDrift(),
		NewContainment(extent),
		NewSpread(),
	}
}
