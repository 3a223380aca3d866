package signsim

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
)

// x, y and z columns of the first moons example.
var exampleAxes = [][]int{
	{-1, 2, 4, 3},
	{0, -10, -8, 5},
	{2, -7, 8, -1},
}

func TestAxisCycles(t *testing.T) {
	got, err := New(WithWorkers(2)).AxisCycles(context.Background(), exampleAxes, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{18, 28, 44}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCombinedCycle(t *testing.T) {
	n, err := CombinedCycle(context.Background(), exampleAxes, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2772 {
		t.Errorf("expected 2772, got %d", n)
	}

	single, err := CombinedCycle(context.Background(), [][]int{{-1, 1}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if single != 6 {
		t.Errorf("expected 6 for one axis, got %d", single)
	}
}

func TestCombinedCycleErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		axes  [][]int
		limit int
		want  error
	}{
		{"no axes", nil, 0, ErrInvalidShape},
		{"empty axis", [][]int{{1}, {}}, 0, ErrInvalidShape},
		{"mismatched bodies", [][]int{{1, 2}, {1}}, 0, ErrInvalidShape},
		{"limit reached", exampleAxes, 20, ErrNoCycle},
		{"negative limit", exampleAxes, -1, ErrInvalidStepCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CombinedCycle(ctx, tt.axes, tt.limit); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLCM(t *testing.T) {
	tests := []struct {
		ns   []int
		want int
	}{
		{nil, 1},
		{[]int{7}, 7},
		{[]int{18, 28, 44}, 2772},
		{[]int{4, 6}, 12},
		{[]int{5, 5}, 5},
	}

	for _, tt := range tests {
		got, err := LCM(tt.ns...)
		if err != nil {
			t.Errorf("LCM(%v): %v", tt.ns, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LCM(%v) = %d, want %d", tt.ns, got, tt.want)
		}
	}

	if _, err := LCM(0, 3); err == nil {
		t.Error("expected error for zero")
	}
	if _, err := LCM(math.MaxInt, math.MaxInt-1); !errors.Is(err, ErrCycleOverflow) {
		t.Errorf("expected ErrCycleOverflow, got %v", err)
	}
}
