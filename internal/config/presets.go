package config

import "sort"

var Presets = map[string]*Config{
	"pair": {
		Name: "pair", Positions: []int{-1, 1}, Steps: 3,
	},
	"single": {
		Name: "single", Positions: []int{5}, Steps: 10,
	},
	// x axis of the first example system from the moons puzzle
	"example": {
		Name: "example", Positions: []int{-1, 2, 4, 3}, Steps: 10,
	},
	"spread": {
		Name: "spread", Positions: []int{-8, -3, 0, 4, 9}, Steps: 16,
	},
	"cluster": {
		Name: "cluster", Positions: []int{0, 0, 0, 1, 1, -1}, Steps: 24,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Positions = append([]int(nil), p.Positions...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
