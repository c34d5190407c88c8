package rasterstyle

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

type MapType string

const (
	UnknownMapType MapType = "UNKNOWN"
	Ramp           MapType = "RAMP"
	Intervals      MapType = "INTERVALS"
	Values         MapType = "VALUES"
)

func parseMapType(t string) MapType {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "RAMP":
		return Ramp
	case "INTERVALS":
		return Intervals
	case "VALUES":
		return Values
	default:
		return UnknownMapType
	}
}

// Entry is a single breakpoint of a style. Opacity defaults to 1 only when
// decoded from a document; an Entry built in code with a zero Opacity is
// fully transparent.
type Entry struct {
	Value   float64
	Color   string
	Opacity float64
	Label   string
}

// NoData lists the sentinel values that are never classified.
// Color and Opacity are carried for the legend only; no-data pixels are
// always rendered transparent.
type NoData struct {
	Values  []float64
	Color   string
	Opacity float64
	Label   string
}

// Style describes how the samples of a single-band raster are mapped to
// colors.
type Style struct {
	MapType MapType
	NoData  NoData
	Entries []Entry
}

// SortedEntries returns a copy of the entries ordered by value. Entries with
// equal values keep their input order.
func (s *Style) SortedEntries() []Entry {
	sorted := make([]Entry, len(s.Entries))
	copy(sorted, s.Entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})
	return sorted
}

type auxStyle struct {
	MapType string     `yaml:"map_type"`
	NoData  auxNoData  `yaml:"no_data"`
	Entries []auxEntry `yaml:"entries"`
}

type auxNoData struct {
	Values  []float64 `yaml:"values"`
	Color   string    `yaml:"color"`
	Opacity *float64  `yaml:"opacity"`
	Label   string    `yaml:"label"`
}

type auxEntry struct {
	Value   *float64 `yaml:"value"`
	Color   string   `yaml:"color"`
	Opacity *float64 `yaml:"opacity"`
	Label   string   `yaml:"label"`
}

type InvalidEntryError struct {
	Index int
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("style entry %d has no value", e.Index)
}

func newStyle(aux auxStyle) (*Style, error) {
	s := &Style{
		MapType: parseMapType(aux.MapType),
		NoData: NoData{
			Values:  aux.NoData.Values,
			Color:   aux.NoData.Color,
			Opacity: opacityOrDefault(aux.NoData.Opacity),
			Label:   aux.NoData.Label,
		},
		Entries: make([]Entry, 0, len(aux.Entries)),
	}
	for i, e := range aux.Entries {
		if e.Value == nil {
			return nil, &InvalidEntryError{Index: i}
		}
		s.Entries = append(s.Entries, Entry{
			Value:   *e.Value,
			Color:   e.Color,
			Opacity: opacityOrDefault(e.Opacity),
			Label:   e.Label,
		})
	}
	return s, nil
}

func opacityOrDefault(o *float64) float64 {
	if o == nil {
		return 1
	}
	return *o
}

// Parse decodes a style description. The document may be YAML or JSON.
func Parse(r io.Reader) (*Style, error) {
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	aux := auxStyle{}
	if err := yaml.Unmarshal(input, &aux); err != nil {
		return nil, fmt.Errorf("decoding style: %w", err)
	}
	return newStyle(aux)
}

// ParseFile decodes the style description stored in filename.
func ParseFile(filename string) (*Style, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	s, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
