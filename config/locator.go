package config

import (
	"os"
	"path/filepath"
	"sync"
)

// Locator resolves input files relative to a base directory and output
// files into an output directory. Inputs that do not exist are recorded.
type Locator struct {
	mu      sync.Mutex
	baseDir string
	outDir  string
	relPath bool
	missing []string
}

func NewLocator(c *Config) *Locator {
	l := &Locator{}
	l.SetBaseDir(c.BaseDir)
	l.SetOutDir(c.OutDir)
	return l
}

func (l *Locator) SetBaseDir(dir string) {
	l.baseDir = dir
}

func (l *Locator) SetOutDir(dir string) {
	l.outDir = dir
}

// UseRelPaths makes Find return paths relative to the output directory.
func (l *Locator) UseRelPaths(rel bool) {
	l.relPath = rel
}

// Find returns the location of the input file name.
func (l *Locator) Find(name string) string {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, name)
	}
	if _, err := os.Stat(path); err != nil {
		l.mu.Lock()
		l.missing = append(l.missing, path)
		l.mu.Unlock()
	}
	if l.relPath {
		if rel, err := filepath.Rel(l.outDir, path); err == nil {
			return rel
		}
	}
	return path
}

// Output returns the location of the output file name.
func (l *Locator) Output(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.outDir, name)
}

func (l *Locator) MissingFiles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.missing...)
}
