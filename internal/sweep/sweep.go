// Package sweep samples derived quantities over configuration space.
// A sweep varies one joint coordinate through an interval and records a
// set of quantities at every sample; a grid search walks the cross
// product of several coordinates looking for an extremum. Nothing here
// integrates motion; every sample is an independent static pose.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/mechdyn/internal/state"
)

// Params describes a one-coordinate sweep.
type Params struct {
	Joint   string
	Coord   int
	From    float64
	To      float64
	Samples int
	Workers int
}

// Result holds one column per quantity, aligned with Values.
type Result struct {
	Joint  string
	Coord  int
	Values []float64
	Names  []string
	Series map[string][]float64
}

// Run samples the quantities over the swept coordinate. The remaining
// coordinates keep st's configuration; velocities are zero at every
// sample. st itself is never mutated.
func Run(ctx context.Context, st *state.MechanismState, p Params, quantities []Quantity) (*Result, error) {
	m := st.Mechanism()
	j := m.FindJoint(p.Joint)
	if j == nil {
		return nil, fmt.Errorf("sweep: unknown joint %q", p.Joint)
	}
	if j.NQ() != j.NV() {
		return nil, fmt.Errorf("sweep: joint %q uses a non-Euclidean chart; sweep a scalar coordinate instead", p.Joint)
	}
	if p.Coord < 0 || p.Coord >= j.NQ() {
		return nil, fmt.Errorf("sweep: joint %q has %d configuration coordinates, coord %d out of range", p.Joint, j.NQ(), p.Coord)
	}

	n := p.Samples
	if n < 2 {
		n = 2
	}
	lo, _ := st.ConfigurationRange(j)
	base := append([]float64(nil), st.Configuration()...)

	values := make([]float64, n)
	configs := make([][]float64, n)
	step := (p.To - p.From) / float64(n-1)
	for i := range configs {
		q := append([]float64(nil), base...)
		q[lo+p.Coord] = p.From + float64(i)*step
		values[i] = q[lo+p.Coord]
		configs[i] = q
	}

	names := make([]string, len(quantities))
	cols := make([][]float64, len(quantities))
	series := make(map[string][]float64, len(quantities))
	for k, q := range quantities {
		names[k] = q.Name()
		cols[k] = make([]float64, n)
		series[q.Name()] = cols[k]
	}

	err := state.ForEachConfiguration(ctx, m, configs, p.Workers, func(i int, ws *state.MechanismState) error {
		for k, q := range quantities {
			cols[k][i] = q.Evaluate(ws)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Joint: p.Joint, Coord: p.Coord, Values: values, Names: names, Series: series}, nil
}

// Axis is one dimension of a grid search.
type Axis struct {
	Joint  string
	Coord  int
	Values []float64
}

// Minimize evaluates the quantity over the cross product of the axes and
// returns the best configuration found, keyed "joint[coord]", with its
// value. Coordinates not named by an axis keep st's configuration.
func Minimize(ctx context.Context, st *state.MechanismState, axes []Axis, quantity Quantity) (map[string]float64, float64, error) {
	m := st.Mechanism()
	idx := make([]int, len(axes))
	for k, ax := range axes {
		j := m.FindJoint(ax.Joint)
		if j == nil {
			return nil, 0, fmt.Errorf("sweep: unknown joint %q", ax.Joint)
		}
		if j.NQ() != j.NV() {
			return nil, 0, fmt.Errorf("sweep: joint %q uses a non-Euclidean chart; search scalar coordinates instead", ax.Joint)
		}
		if ax.Coord < 0 || ax.Coord >= j.NQ() {
			return nil, 0, fmt.Errorf("sweep: joint %q has %d configuration coordinates, coord %d out of range", ax.Joint, j.NQ(), ax.Coord)
		}
		lo, _ := st.ConfigurationRange(j)
		idx[k] = lo + ax.Coord
	}

	scratch := st.Clone()
	q := append([]float64(nil), st.Configuration()...)
	best := math.Inf(1)
	bestAt := make(map[string]float64, len(axes))

	var walk func(depth int) error
	walk = func(depth int) error {
		if depth == len(axes) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := scratch.SetConfiguration(q); err != nil {
				return err
			}
			if v := quantity.Evaluate(scratch); v < best {
				best = v
				for k, ax := range axes {
					bestAt[fmt.Sprintf("%s[%d]", ax.Joint, ax.Coord)] = q[idx[k]]
				}
			}
			return nil
		}
		for _, v := range axes[depth].Values {
			q[idx[depth]] = v
			if err := walk(depth + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, 0, err
	}
	return bestAt, best, nil
}
