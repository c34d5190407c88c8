package builder

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/classifier"
	"github.com/flywave/go-rasterstyle/config"
)

// Builder renders the layers of a project into colored images.
type Builder struct {
	cfg             *config.Config
	locator         *config.Locator
	styles          *StyleCache
	dumpLegend      io.Writer
	includeInactive bool
}

// New returns a Builder
func New(cfg *config.Config) *Builder {
	return &Builder{
		cfg:     cfg,
		locator: config.NewLocator(cfg),
		styles:  NewStyleCache(classifier.NewFactory(cfg.CacheCapacity)),
	}
}

// SetDumpLegendDest writes the legend of every rendered layer to w.
func (b *Builder) SetDumpLegendDest(w io.Writer) {
	b.dumpLegend = w
}

// SetIncludeInactive set whether status=off layers are rendered.
func (b *Builder) SetIncludeInactive(includeInactive bool) {
	b.includeInactive = includeInactive
}

// Styles returns the style cache shared by all layers of b.
func (b *Builder) Styles() *StyleCache {
	return b.styles
}

// Result describes a rendered layer.
type Result struct {
	Layer        string
	Output       string
	Pixels       int
	NoDataPixels int
	Duration     time.Duration
}

type FilesMissingError struct {
	Files []string
}

func (e *FilesMissingError) Error() string {
	return fmt.Sprintf("missing files: %v", e.Files)
}

// Build renders all layers of p.
func (b *Builder) Build(p *rasterstyle.Project) ([]Result, error) {
	var layers []rasterstyle.Layer
	for _, l := range p.Layers {
		if l.Active || b.includeInactive {
			layers = append(layers, l)
		}
	}

	type job struct {
		layer  rasterstyle.Layer
		style  string
		raster string
	}
	locator := config.NewLocator(b.cfg)
	jobs := make([]job, 0, len(layers))
	for _, l := range layers {
		jobs = append(jobs, job{
			layer:  l,
			style:  locator.Find(l.Style),
			raster: locator.Find(l.Datasource.GetFile()),
		})
	}
	if files := locator.MissingFiles(); len(files) > 0 {
		return nil, &FilesMissingError{files}
	}

	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		r, err := b.render(j.layer, j.style, j.raster)
		if err != nil {
			return results, fmt.Errorf("layer %q: %w", j.layer.ID, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// RenderFile colors a single raster with the style in styleFile and writes
// the image to out.
func (b *Builder) RenderFile(styleFile string, ds rasterstyle.Datasource, out string) (Result, error) {
	l := rasterstyle.Layer{
		ID:         strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)),
		Style:      styleFile,
		Output:     out,
		Active:     true,
		Datasource: ds,
	}
	return b.render(l, styleFile, ds.GetFile())
}

func (b *Builder) render(l rasterstyle.Layer, styleFile, rasterFile string) (Result, error) {
	start := time.Now()
	colorizer, err := b.styles.Colorizer(styleFile)
	if err != nil {
		return Result{}, err
	}

	band, err := ReadBand(rasterFile, l.Datasource)
	if err != nil {
		return Result{}, err
	}

	img, stats := colorizer.Colorize(band.Values, band.Width, band.Height, b.cfg.Workers)
	out := b.locator.Output(outputName(l.Output, b.cfg.OutputFormat))
	if err := writeImage(out, b.cfg.OutputFormat, img); err != nil {
		return Result{}, err
	}

	if b.dumpLegend != nil {
		legend, err := b.styles.Legend(styleFile)
		if err != nil {
			return Result{}, err
		}
		fmt.Fprintf(b.dumpLegend, "%s:\n", l.ID)
		WriteLegend(b.dumpLegend, legend)
	}

	r := Result{
		Layer:        l.ID,
		Output:       out,
		Pixels:       stats.Pixels,
		NoDataPixels: stats.NoDataPixels,
		Duration:     time.Since(start),
	}
	log.Printf("rendered %s to %s (%d pixels, %d no-data) in %v\n", r.Layer, r.Output, r.Pixels, r.NoDataPixels, r.Duration)
	return r, nil
}

func outputName(name, format string) string {
	ext := "." + format
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// WriteLegend prints legend items, one per line.
func WriteLegend(w io.Writer, items []rasterstyle.LegendItem) {
	for _, it := range items {
		label := it.Label
		if it.NoData {
			label += " (no data)"
		}
		fmt.Fprintf(w, "  %s %3.0f%%  %s\n", it.Color, it.Opacity*100, label)
	}
}
