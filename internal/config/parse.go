package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidBody = errors.New("config: invalid body description")

// Axis selects one coordinate of a three-dimensional body description.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("config: unknown axis %q (want x, y or z)", s)
}

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

var bodyPattern = regexp.MustCompile(`<x=([+-]?\d+), y=([+-]?\d+), z=([+-]?\d+)>`)

// ParsePositions reads integers separated by commas and/or whitespace.
func ParsePositions(text string) ([]int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	positions := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("config: position %q: %w", f, err)
		}
		positions = append(positions, n)
	}
	return positions, nil
}

// ParseBodies reads one "<x=.., y=.., z=..>" line per body and returns the
// selected coordinate of each. Blank lines are skipped.
func ParseBodies(r io.Reader, axis Axis) ([]int, error) {
	axes, err := ParseAxes(r)
	if err != nil {
		return nil, err
	}
	return axes[axis], nil
}

// ParseAxes reads body lines like ParseBodies and returns the x, y and z
// coordinates as three slices indexed by Axis.
func ParseAxes(r io.Reader) ([][]int, error) {
	axes := make([][]int, 3)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		caps := bodyPattern.FindStringSubmatch(text)
		if caps == nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidBody, line, text)
		}
		for a := range axes {
			n, err := strconv.Atoi(caps[1+a])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidBody, line, err)
			}
			axes[a] = append(axes[a], n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return axes, nil
}
