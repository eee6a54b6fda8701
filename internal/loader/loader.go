// Package loader handles grid file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/opgen/internal/grid"
	"github.com/retroenv/opgen/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Loader handles loading grid files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new grid loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the four grid files named by the options. The paths fall back to
// the default file names inside the input directory.
func (l *Loader) Load(opts options.Program) (grid.Set, error) {
	mnemonic, addressing, bytes, cycles := opts.GridPaths()

	var set grid.Set
	files := []struct {
		path string
		name string
		grid *grid.Grid
	}{
		{mnemonic, "mnemonic", &set.Mnemonic},
		{addressing, "addressing", &set.Addressing},
		{bytes, "byte length", &set.Bytes},
		{cycles, "cycle length", &set.Cycles},
	}

	for _, file := range files {
		g, err := loadFile(file.path, file.name)
		if err != nil {
			return grid.Set{}, err
		}
		*file.grid = g

		l.logger.Debug("Loaded grid",
			log.String("grid", file.name),
			log.String("file", file.path),
			log.Int("rows", g.Rows()))
	}

	return set, nil
}

func loadFile(path, name string) (grid.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	g, err := grid.Load(name, file)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("loading file %s: %w", path, err)
	}
	return g, nil
}
