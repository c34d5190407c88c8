package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/color"
)

func TestBuildDispatch(t *testing.T) {
	two := []rasterstyle.Entry{entry(2, "#00FF00", 1), entry(1, "#FF0000", 1)}
	tests := []struct {
		name  string
		style rasterstyle.Style
		kind  Kind
	}{
		{"empty", rasterstyle.Style{MapType: rasterstyle.Ramp}, Constant},
		{"single", rasterstyle.Style{MapType: rasterstyle.Values, Entries: two[:1]}, Constant},
		{"values", rasterstyle.Style{MapType: rasterstyle.Values, Entries: two}, ExactMatch},
		{"intervals", rasterstyle.Style{MapType: rasterstyle.Intervals, Entries: two}, Step},
		{"ramp", rasterstyle.Style{MapType: rasterstyle.Ramp, Entries: two}, LinearRamp},
		{"unknown", rasterstyle.Style{MapType: rasterstyle.UnknownMapType, Entries: two}, Constant},
		{"missing", rasterstyle.Style{Entries: two}, Constant},
	}
	f := NewFactory(DefaultCacheCapacity)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, f.Build(&tt.style).Kind())
		})
	}
}

func TestBuildEmptyIsTransparent(t *testing.T) {
	for _, mt := range []rasterstyle.MapType{rasterstyle.Ramp, rasterstyle.Intervals, rasterstyle.Values} {
		c := Build(&rasterstyle.Style{MapType: mt})
		for _, v := range []float64{-1, 0, 1, math.NaN()} {
			assert.Equal(t, color.Transparent, c.Classify(v))
		}
	}
}

func TestBuildSingleEntryIsConstant(t *testing.T) {
	for _, mt := range []rasterstyle.MapType{rasterstyle.Ramp, rasterstyle.Intervals, rasterstyle.Values} {
		c := Build(&rasterstyle.Style{
			MapType: mt,
			Entries: []rasterstyle.Entry{entry(5, "#6187F2", 0.4)},
		})
		for _, v := range []float64{-1, 0, 5, 1e6} {
			assert.Equal(t, color.RGBA{R: 97, G: 135, B: 242, A: 0.4}, c.Classify(v))
		}
	}
}

func TestBuildUnknownIsTransparent(t *testing.T) {
	c := Build(&rasterstyle.Style{
		MapType: "HEATMAP",
		Entries: []rasterstyle.Entry{entry(0, "#FF0000", 1), entry(1, "#00FF00", 1)},
	})
	assert.Equal(t, color.Transparent, c.Classify(0))
	assert.Equal(t, color.Transparent, c.Classify(1))
}

func TestBuildSortsUnorderedEntries(t *testing.T) {
	s := &rasterstyle.Style{
		MapType: rasterstyle.Intervals,
		Entries: []rasterstyle.Entry{
			entry(0.45, "#801921", 1),
			entry(0.25, "#C2CFF2", 1),
			entry(0.35, "#6187F2", 1),
		},
	}
	c := Build(s)
	assert.Equal(t, color.MustParse("#C2CFF2", 1), c.Classify(0.01))
	assert.Equal(t, color.MustParse("#6187F2", 1), c.Classify(0.31))
	assert.Equal(t, color.MustParse("#801921", 1), c.Classify(0.45))
	// the input is left untouched
	assert.Equal(t, 0.45, s.Entries[0].Value)
}

func TestBuildMemoizesRamps(t *testing.T) {
	f := NewFactory(2)
	s := func() *rasterstyle.Style {
		return &rasterstyle.Style{
			MapType: rasterstyle.Ramp,
			Entries: []rasterstyle.Entry{entry(0.019, "#F57A00", 1), entry(0.008, "#F5CC00", 1)},
		}
	}
	a := f.Build(s())
	b := f.Build(s())
	assert.Same(t, a, b)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, f.Cache().Stats())

	steps := &rasterstyle.Style{MapType: rasterstyle.Intervals, Entries: s().Entries}
	assert.NotSame(t, f.Build(steps), f.Build(steps))
	assert.Equal(t, 1, f.Cache().Len())
}

func TestBuildIdempotent(t *testing.T) {
	s := func() *rasterstyle.Style {
		return &rasterstyle.Style{
			MapType: rasterstyle.Ramp,
			Entries: []rasterstyle.Entry{
				entry(3, "#E377C2", 0.2),
				entry(-2, "#1F77B4", 1),
				entry(0, "#FF7F0E", 0.6),
			},
		}
	}
	cached := NewFactory(DefaultCacheCapacity)
	warm := cached.Build(s())
	hit := cached.Build(s())
	cold := NewLinearRamp(s().SortedEntries())
	purged := NewFactory(DefaultCacheCapacity)
	purged.Cache().Purge()
	fresh := purged.Build(s())

	for v := -3.0; v <= 4; v += 0.125 {
		want := cold.Classify(v)
		assert.Equal(t, want, warm.Classify(v), "value %v", v)
		assert.Equal(t, want, hit.Classify(v), "value %v", v)
		assert.Equal(t, want, fresh.Classify(v), "value %v", v)
	}
}
