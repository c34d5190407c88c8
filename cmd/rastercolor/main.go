package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/builder"
	"github.com/flywave/go-rasterstyle/config"
)

var (
	configFile  = flag.String("config", "", "TOML configuration file")
	projectFile = flag.String("project", "", "project file listing the layers to render")
	styleFile   = flag.String("style", "", "style description (YAML or JSON)")
	inFile      = flag.String("in", "", "single-band raster to color (.tif or .png)")
	outFile     = flag.String("out", "out.png", "output image for -in")
	scale       = flag.Float64("scale", 1, "scale applied to raster samples of -in")
	offset      = flag.Float64("offset", 0, "offset added to scaled raster samples of -in")
	workers     = flag.Int("workers", 0, "number of colorizing goroutines (0: from config)")
	legend      = flag.Bool("legend", false, "print the legend of -style and exit")
	allLayers   = flag.Bool("all", false, "also render layers with status off")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	switch {
	case *legend:
		if *styleFile == "" {
			usage("-legend requires -style")
		}
		styles := builder.New(cfg).Styles()
		c, err := styles.Colorizer(*styleFile)
		if err != nil {
			log.Fatal(err)
		}
		items, err := styles.Legend(*styleFile)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s (%s)\n", *styleFile, c.Classifier().Kind())
		builder.WriteLegend(os.Stdout, items)

	case *projectFile != "":
		p, err := rasterstyle.ParseProjectFile(*projectFile)
		if err != nil {
			log.Fatal(err)
		}
		b := builder.New(cfg)
		b.SetIncludeInactive(*allLayers)
		results, err := b.Build(p)
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range results {
			fmt.Printf("%-16s %-32s %9d px %9d no-data %v\n", r.Layer, r.Output, r.Pixels, r.NoDataPixels, r.Duration)
		}

	case *styleFile != "" && *inFile != "":
		ds, err := datasource(*inFile)
		if err != nil {
			log.Fatal(err)
		}
		r, err := builder.New(cfg).RenderFile(*styleFile, ds, *outFile)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %d px, %d no-data, %v\n", r.Output, r.Pixels, r.NoDataPixels, r.Duration)

	default:
		usage("either -project or -style with -in must be given")
	}
}

func datasource(file string) (rasterstyle.Datasource, error) {
	band := rasterstyle.Band{Scale: *scale, Offset: *offset}
	lower := strings.ToLower(file)
	switch {
	case strings.HasSuffix(lower, ".tif"), strings.HasSuffix(lower, ".tiff"):
		return rasterstyle.TIFF{Band: band, Filename: file}, nil
	case strings.HasSuffix(lower, ".png"):
		return rasterstyle.PNG{Band: band, Filename: file}, nil
	default:
		return nil, fmt.Errorf("cannot tell raster format of %s", file)
	}
}

func usage(msg string) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	flag.Usage()
	os.Exit(1)
}
