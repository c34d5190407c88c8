package rasterstyle

import (
	hsluv "github.com/hsluv/hsluv-go"

	"github.com/flywave/go-rasterstyle/color"
)

// LegendItem is a swatch shown next to the map.
type LegendItem struct {
	Color     string
	Opacity   float64
	Label     string
	TextColor string
	NoData    bool
}

const (
	darkText  = "#000000"
	lightText = "#FFFFFF"

	// HSLuv lightness above which dark text is easier to read.
	lightSwatch = 60
)

// swatch returns hex as written in the style, or "" when it is not a color
// the classifiers understand.
func swatch(hex string) string {
	if !color.Valid(hex) {
		return ""
	}
	return hex
}

// Legend projects the entries of s in the order used by the classifiers.
func Legend(s *Style) []LegendItem {
	entries := s.SortedEntries()
	items := make([]LegendItem, 0, len(entries))
	for _, e := range entries {
		c := color.Parse(e.Color, e.Opacity)
		items = append(items, LegendItem{
			Color:     swatch(e.Color),
			Opacity:   e.Opacity,
			Label:     e.Label,
			TextColor: textColor(c),
		})
	}
	return items
}

// LegendWithNoData is like Legend but appends a swatch for the no-data
// values when they carry a label.
func LegendWithNoData(s *Style) []LegendItem {
	items := Legend(s)
	if s.NoData.Label == "" {
		return items
	}
	c := color.Parse(s.NoData.Color, s.NoData.Opacity)
	return append(items, LegendItem{
		Color:     swatch(s.NoData.Color),
		Opacity:   s.NoData.Opacity,
		Label:     s.NoData.Label,
		TextColor: textColor(c),
		NoData:    true,
	})
}

func textColor(c color.RGBA) string {
	if c.AlphaByte() == 0 {
		return darkText
	}
	rgb := c.Colorful()
	_, _, l := hsluv.HsluvFromRGB(rgb.R, rgb.G, rgb.B)
	if l > lightSwatch {
		return darkText
	}
	return lightText
}
