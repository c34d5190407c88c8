package rasterstyle

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// Project lists the raster layers rendered together.
type Project struct {
	Name   string
	Layers []Layer
}

type auxProject struct {
	Name   string     `yaml:"name"`
	Layers []auxLayer `yaml:"layers"`
}

type auxLayer struct {
	Datasource map[string]interface{} `yaml:"datasource"`
	ID         string                 `yaml:"id"`
	Style      string                 `yaml:"style"`
	Output     string                 `yaml:"output"`
	Status     string                 `yaml:"status"`
}

func newLayer(l auxLayer) (*Layer, error) {
	ds, err := newDatasource(l.Datasource)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", l.ID, err)
	}

	isActive := true
	if l.Status == "off" {
		isActive = false
	}

	output := l.Output
	if output == "" {
		output = l.ID + ".png"
	}
	return &Layer{
		ID:         l.ID,
		Style:      l.Style,
		Output:     output,
		Active:     isActive,
		Datasource: ds,
	}, nil
}

// ParseProject decodes a YAML project document.
func ParseProject(r io.Reader) (*Project, error) {
	aux := auxProject{}
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(input, &aux)
	if err != nil {
		return nil, err
	}

	layers := []Layer{}
	for _, l := range aux.Layers {
		layer, err := newLayer(l)
		if err != nil {
			return nil, err
		}
		layers = append(layers, *layer)
	}

	return &Project{
		Name:   aux.Name,
		Layers: layers,
	}, nil
}

// ParseProjectFile decodes the project stored in filename.
func ParseProjectFile(filename string) (*Project, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseProject(r)
}
