// Package classifier maps raster sample values to colors.
//
// A Classifier is built once per style and is immutable afterwards; Classify
// may be called from any number of goroutines and never allocates.
package classifier

import (
	"math"
	"sort"

	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/color"
)

type Kind int

const (
	Constant Kind = iota
	ExactMatch
	Step
	LinearRamp
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case ExactMatch:
		return "exact-match"
	case Step:
		return "step"
	case LinearRamp:
		return "linear-ramp"
	default:
		return "unknown"
	}
}

// Classifier is a tagged union over the supported classification schemes.
// Only the fields of the active Kind are set.
type Classifier struct {
	kind Kind

	// Constant
	constant color.RGBA

	// ExactMatch. NaN never equals a map key, so a NaN entry is kept apart.
	lookup   map[float64]color.RGBA
	nan      color.RGBA
	matchNaN bool

	// Step and LinearRamp, sorted ascending by value.
	values []float64
	colors []color.RGBA

	// LinearRamp interpolation tables.
	channels  [][3]float64
	opacities []float64
}

func (c *Classifier) Kind() Kind {
	return c.kind
}

// Classify returns the color for v.
func (c *Classifier) Classify(v float64) color.RGBA {
	switch c.kind {
	case Constant:
		return c.constant
	case ExactMatch:
		if v != v {
			if c.matchNaN {
				return c.nan
			}
			return color.Transparent
		}
		if col, ok := c.lookup[v]; ok {
			return col
		}
		return color.Transparent
	case Step:
		return c.step(v)
	case LinearRamp:
		return c.interpolate(v)
	}
	return color.Transparent
}

// NewConstant returns a classifier that ignores its input.
func NewConstant(col color.RGBA) *Classifier {
	return &Classifier{kind: Constant, constant: col}
}

// NewExactMatch returns a classifier for VALUES styles. Values are compared
// with ==, except that a NaN entry matches NaN samples as no-data values do;
// a later entry replaces an earlier one with the same value.
func NewExactMatch(entries []rasterstyle.Entry) *Classifier {
	c := &Classifier{kind: ExactMatch, lookup: make(map[float64]color.RGBA, len(entries))}
	for _, e := range entries {
		col := color.Parse(e.Color, e.Opacity)
		if math.IsNaN(e.Value) {
			c.nan, c.matchNaN = col, true
			continue
		}
		c.lookup[e.Value] = col
	}
	return c
}

// NewStep returns a classifier for INTERVALS styles. entries must be sorted
// by value and must not be empty.
func NewStep(entries []rasterstyle.Entry) *Classifier {
	c := &Classifier{
		kind:   Step,
		values: make([]float64, len(entries)),
		colors: make([]color.RGBA, len(entries)),
	}
	for i, e := range entries {
		c.values[i] = e.Value
		c.colors[i] = color.Parse(e.Color, e.Opacity)
	}
	return c
}

// step returns the color of the first threshold not below v. Values above
// the last threshold take its color.
func (c *Classifier) step(v float64) color.RGBA {
	i := sort.SearchFloat64s(c.values, v)
	if i == len(c.values) {
		i--
	}
	return c.colors[i]
}

// NewLinearRamp returns a classifier for RAMP styles. entries must be sorted
// by value and must not be empty.
func NewLinearRamp(entries []rasterstyle.Entry) *Classifier {
	c := &Classifier{
		kind:      LinearRamp,
		values:    make([]float64, len(entries)),
		colors:    make([]color.RGBA, len(entries)),
		channels:  make([][3]float64, len(entries)),
		opacities: make([]float64, len(entries)),
	}
	for i, e := range entries {
		col := color.Parse(e.Color, e.Opacity)
		c.values[i] = e.Value
		c.colors[i] = col
		c.channels[i] = [3]float64{float64(col.R), float64(col.G), float64(col.B)}
		c.opacities[i] = col.A
	}
	return c
}

func (c *Classifier) interpolate(v float64) color.RGBA {
	last := len(c.values) - 1
	if v <= c.values[0] {
		return c.colors[0]
	}
	if v >= c.values[last] {
		return c.colors[last]
	}
	hi := sort.SearchFloat64s(c.values, v)
	if hi > last {
		// only NaN gets here
		return c.colors[last]
	}
	if c.values[hi] == v {
		return c.colors[hi]
	}
	lo := hi - 1

	t := 0.0
	if d := c.values[hi] - c.values[lo]; d != 0 {
		t = (v - c.values[lo]) / d
	}
	a, b := &c.channels[lo], &c.channels[hi]
	return color.RGBA{
		R: channel(a[0] + t*(b[0]-a[0])),
		G: channel(a[1] + t*(b[1]-a[1])),
		B: channel(a[2] + t*(b[2]-a[2])),
		A: c.opacities[lo] + t*(c.opacities[hi]-c.opacities[lo]),
	}
}

func channel(x float64) uint8 {
	x = math.Round(x)
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}
