package rasterstyle

import (
	"fmt"
	"strconv"
)

const (
	DatasourceTIFF = "tiff"
	DatasourcePNG  = "png"
)

// Datasource is a single-band raster file. Sample converts the stored
// integer sample into the value that is classified.
type Datasource interface {
	GetType() string
	GetFile() string
	Sample(raw float64) float64
}

// Band holds the linear transform applied to stored samples.
type Band struct {
	Scale  float64
	Offset float64
}

func (b Band) Sample(raw float64) float64 {
	return raw*b.Scale + b.Offset
}

type TIFF struct {
	Band
	Filename string
}

func (TIFF) GetType() string   { return DatasourceTIFF }
func (t TIFF) GetFile() string { return t.Filename }

type PNG struct {
	Band
	Filename string
}

func (PNG) GetType() string   { return DatasourcePNG }
func (p PNG) GetFile() string { return p.Filename }

type UnknownDatasourceError struct {
	Type string
}

func (e *UnknownDatasourceError) Error() string {
	return fmt.Sprintf("unknown datasource type %q", e.Type)
}

type MissingDatasourceError struct{}

func (e *MissingDatasourceError) Error() string {
	return "datasource without file"
}

func newDatasource(params map[string]interface{}) (Datasource, error) {
	d := make(map[string]string, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok {
			d[k] = s
		} else {
			d[k] = fmt.Sprintf("%v", v)
		}
	}
	if d["file"] == "" {
		return nil, &MissingDatasourceError{}
	}

	band, err := newBand(d)
	if err != nil {
		return nil, err
	}

	switch d["type"] {
	case DatasourceTIFF, "geotiff", "":
		return TIFF{Band: band, Filename: d["file"]}, nil
	case DatasourcePNG:
		return PNG{Band: band, Filename: d["file"]}, nil
	default:
		return nil, &UnknownDatasourceError{Type: d["type"]}
	}
}

func newBand(d map[string]string) (Band, error) {
	b := Band{Scale: 1}
	if s := d["scale"]; s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return b, fmt.Errorf("invalid scale %q: %w", s, err)
		}
		b.Scale = v
	}
	if s := d["offset"]; s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return b, fmt.Errorf("invalid offset %q: %w", s, err)
		}
		b.Offset = v
	}
	return b, nil
}
