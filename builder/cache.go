package builder

import (
	"hash/fnv"
	"log"
	"os"
	"sync"
	"time"

	rasterstyle "github.com/flywave/go-rasterstyle"
	"github.com/flywave/go-rasterstyle/classifier"
	"github.com/flywave/go-rasterstyle/pixel"
)

type style struct {
	file       string
	colorizer  *pixel.Colorizer
	legend     []rasterstyle.LegendItem
	lastUpdate time.Time
}

func styleHash(file string) uint32 {
	f := fnv.New32()
	f.Write([]byte(file))
	return f.Sum32()
}

func (s *style) isStale() (bool, error) {
	if s.colorizer == nil {
		return true, nil
	}
	info, err := os.Stat(s.file)
	if err != nil {
		return true, err
	}
	return info.ModTime().After(s.lastUpdate), nil
}

// StyleCache keeps the colorizers of style files and rebuilds them when a
// file changes on disk.
type StyleCache struct {
	mu      sync.Mutex
	factory *classifier.Factory
	styles  map[uint32]*style
}

func NewStyleCache(f *classifier.Factory) *StyleCache {
	return &StyleCache{
		factory: f,
		styles:  make(map[uint32]*style),
	}
}

// Colorizer returns the colorizer for the style stored in file.
func (c *StyleCache) Colorizer(file string) (*pixel.Colorizer, error) {
	s, err := c.style(file)
	if err != nil {
		return nil, err
	}
	return s.colorizer, nil
}

// Legend returns the legend items for the style stored in file.
func (c *StyleCache) Legend(file string) ([]rasterstyle.LegendItem, error) {
	s, err := c.style(file)
	if err != nil {
		return nil, err
	}
	return s.legend, nil
}

func (c *StyleCache) style(file string) (*style, error) {
	hash := styleHash(file)
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.styles[hash]
	if !ok || s.file != file {
		s = &style{file: file}
		c.styles[hash] = s
	}
	stale, err := s.isStale()
	if err != nil {
		return nil, err
	}
	if stale {
		if err := c.build(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// build records the modification time seen before parsing, so a write that
// lands while the file is being read makes the style stale again.
func (c *StyleCache) build(s *style) error {
	info, err := os.Stat(s.file)
	if err != nil {
		return err
	}
	desc, err := rasterstyle.ParseFile(s.file)
	if err != nil {
		return err
	}
	s.colorizer = pixel.NewWithFactory(desc, c.factory)
	s.legend = rasterstyle.LegendWithNoData(desc)
	s.lastUpdate = info.ModTime()
	log.Printf("rebuild style %s (%s as %s, %d entries)\n", s.file, desc.MapType, s.colorizer.Classifier().Kind(), len(desc.Entries))
	return nil
}

// Clear drops all cached styles.
func (c *StyleCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for hash := range c.styles {
		delete(c.styles, hash)
	}
}
