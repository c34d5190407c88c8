package classifier

import (
	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/color"
)

// Factory builds classifiers from styles and memoizes ramp classifiers.
type Factory struct {
	ramps *Cache
}

// NewFactory returns a Factory keeping at most capacity ramp classifiers.
func NewFactory(capacity int) *Factory {
	return &Factory{ramps: NewCache(capacity)}
}

// Cache exposes the ramp cache of f.
func (f *Factory) Cache() *Cache {
	return f.ramps
}

// Build selects and builds the classifier for s.
func (f *Factory) Build(s *rasterstyle.Style) *Classifier {
	switch len(s.Entries) {
	case 0:
		return NewConstant(color.Transparent)
	case 1:
		e := s.Entries[0]
		return NewConstant(color.Parse(e.Color, e.Opacity))
	}

	switch s.MapType {
	case rasterstyle.Values:
		return NewExactMatch(s.Entries)
	case rasterstyle.Intervals:
		return NewStep(s.SortedEntries())
	case rasterstyle.Ramp:
		return f.ramps.Get(s.SortedEntries(), NewLinearRamp)
	default:
		return NewConstant(color.Transparent)
	}
}

var defaultFactory = NewFactory(DefaultCacheCapacity)

// Build builds the classifier for s using a process-wide ramp cache.
func Build(s *rasterstyle.Style) *Classifier {
	return defaultFactory.Build(s)
}
