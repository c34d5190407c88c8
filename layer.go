package rasterstyle

// Layer binds a single-band raster to the style used to color it.
type Layer struct {
	ID         string
	Style      string
	Output     string
	Active     bool
	Datasource Datasource
}
