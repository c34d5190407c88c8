package builder

import (
	"fmt"
	"image"
	stdcolor "image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/config"
)

// Band is a decoded single-band raster.
type Band struct {
	Width, Height int
	Values        []float64
}

func decode(r io.Reader, typ string) (image.Image, error) {
	switch typ {
	case rasterstyle.DatasourceTIFF:
		return tiff.Decode(r)
	case rasterstyle.DatasourcePNG:
		return png.Decode(r)
	default:
		return nil, &rasterstyle.UnknownDatasourceError{Type: typ}
	}
}

// ReadBand reads the first band of ds from path and applies its sample
// transform. Gray and Gray16 images are read directly, anything else is
// converted to 16-bit gray.
func ReadBand(path string, ds rasterstyle.Datasource) (*Band, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(f, ds.GetType())
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	band := &Band{
		Width:  b.Dx(),
		Height: b.Dy(),
		Values: make([]float64, b.Dx()*b.Dy()),
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			band.Values[i] = ds.Sample(sample(img, x, y))
			i++
		}
	}
	return band, nil
}

func sample(img image.Image, x, y int) float64 {
	switch m := img.(type) {
	case *image.Gray16:
		return float64(m.Gray16At(x, y).Y)
	case *image.Gray:
		return float64(m.GrayAt(x, y).Y)
	default:
		return float64(stdcolor.Gray16Model.Convert(img.At(x, y)).(stdcolor.Gray16).Y)
	}
}

func writeImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch format {
	case config.FormatBMP:
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
