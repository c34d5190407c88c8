// Package pixel turns classified sample values into packed RGBA bytes.
package pixel

import (
	"image"
	"math"
	"sync"

	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/classifier"
	"github.com/flywave/go-rasterstyle/color"
)

// PixelFunc writes the color of value into out[0:4] as R, G, B, A.
type PixelFunc func(value float64, out []byte)

// Colorizer combines the no-data values of a style with its classifier.
// It is immutable and may be shared between goroutines.
type Colorizer struct {
	noData     map[float64]struct{}
	noDataNaN  bool
	classifier *classifier.Classifier
}

// New builds a Colorizer using the process-wide classifier cache.
func New(s *rasterstyle.Style) *Colorizer {
	return newColorizer(s, classifier.Build(s))
}

// NewWithFactory builds a Colorizer using the classifiers of f.
func NewWithFactory(s *rasterstyle.Style, f *classifier.Factory) *Colorizer {
	return newColorizer(s, f.Build(s))
}

func newColorizer(s *rasterstyle.Style, cl *classifier.Classifier) *Colorizer {
	c := &Colorizer{
		noData:     make(map[float64]struct{}, len(s.NoData.Values)),
		classifier: cl,
	}
	for _, v := range s.NoData.Values {
		if math.IsNaN(v) {
			c.noDataNaN = true
			continue
		}
		c.noData[v] = struct{}{}
	}
	return c
}

// MakePixelFunction returns the function called once per decoded pixel.
func MakePixelFunction(s *rasterstyle.Style) PixelFunc {
	return New(s).Write
}

func (c *Colorizer) Classifier() *classifier.Classifier {
	return c.classifier
}

// IsNoData reports whether v is one of the no-data values.
func (c *Colorizer) IsNoData(v float64) bool {
	if v != v {
		return c.noDataNaN
	}
	_, ok := c.noData[v]
	return ok
}

// Color returns the color of v; no-data values are transparent.
func (c *Colorizer) Color(v float64) color.RGBA {
	if c.IsNoData(v) {
		return color.Transparent
	}
	return c.classifier.Classify(v)
}

// Write stores the color of v in out, which must hold at least four bytes.
func (c *Colorizer) Write(v float64, out []byte) {
	_ = out[3]
	if c.IsNoData(v) {
		out[0], out[1], out[2], out[3] = 0, 0, 0, 0
		return
	}
	col := c.classifier.Classify(v)
	out[0] = col.R
	out[1] = col.G
	out[2] = col.B
	out[3] = col.AlphaByte()
}

// Stats summarizes a Colorize run.
type Stats struct {
	Pixels       int
	NoDataPixels int
}

// Colorize colors a row-major band of width*height values using the given
// number of worker goroutines. Colors are not premultiplied by alpha.
func (c *Colorizer) Colorize(values []float64, width, height, workers int) (*image.NRGBA, Stats) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	pixelCount := width * height
	if len(values) < pixelCount {
		pixelCount = len(values)
	}
	stats := Stats{Pixels: pixelCount}
	if pixelCount == 0 {
		return img, stats
	}
	if workers < 1 {
		workers = 1
	}
	if workers > pixelCount {
		workers = pixelCount
	}
	chunkSize := (pixelCount + workers - 1) / workers
	noData := make([]int, workers)
	pix := img.Pix

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > pixelCount {
			end = pixelCount
		}
		go func(worker, start, end int) {
			defer wg.Done()
			count := 0
			for i := start; i < end; i++ {
				if c.IsNoData(values[i]) {
					count++
				}
				c.Write(values[i], pix[i*4:i*4+4])
			}
			noData[worker] = count
		}(w, start, end)
	}
	wg.Wait()

	for _, n := range noData {
		stats.NoDataPixels += n
	}
	return img, stats
}
