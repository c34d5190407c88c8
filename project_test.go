package rasterstyle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProject(t *testing.T) {
	p, err := ParseProject(strings.NewReader(`
name: flood
layers:
  - id: depth
    style: styles/depth.yaml
    output: depth-colored.png
    datasource:
      type: tiff
      file: rasters/depth.tif
      scale: 0.01
      offset: -5
  - id: landuse
    style: styles/landuse.json
    status: "off"
    datasource:
      type: png
      file: rasters/landuse.png
`))
	require.NoError(t, err)
	assert.Equal(t, "flood", p.Name)
	require.Len(t, p.Layers, 2)

	assert.Equal(t, Layer{
		ID:         "depth",
		Style:      "styles/depth.yaml",
		Output:     "depth-colored.png",
		Active:     true,
		Datasource: TIFF{Band: Band{Scale: 0.01, Offset: -5}, Filename: "rasters/depth.tif"},
	}, p.Layers[0])

	assert.Equal(t, Layer{
		ID:         "landuse",
		Style:      "styles/landuse.json",
		Output:     "landuse.png",
		Active:     false,
		Datasource: PNG{Band: Band{Scale: 1}, Filename: "rasters/landuse.png"},
	}, p.Layers[1])
	assert.Equal(t, DatasourcePNG, p.Layers[1].Datasource.GetType())
	assert.Equal(t, 7.0, p.Layers[1].Datasource.Sample(7))
	assert.InDelta(t, -4.0, p.Layers[0].Datasource.Sample(100), 1e-12)
}

func TestParseProjectErrors(t *testing.T) {
	_, err := ParseProject(strings.NewReader(`
layers:
  - id: a
    datasource: {type: postgis, file: x}
`))
	var unknown *UnknownDatasourceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "postgis", unknown.Type)

	_, err = ParseProject(strings.NewReader(`
layers:
  - id: a
    datasource: {type: tiff}
`))
	var missing *MissingDatasourceError
	assert.ErrorAs(t, err, &missing)

	_, err = ParseProject(strings.NewReader(`
layers:
  - id: a
    datasource: {file: a.tif, scale: big}
`))
	assert.Error(t, err)
}
