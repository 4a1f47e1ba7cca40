package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/ggprint/capture"
	"github.com/gogpu/ggprint/ps"
)

// jobConfig holds the print job settings. A TOML file supplies defaults;
// flags given on the command line win.
type jobConfig struct {
	Format   string `toml:"format"`
	Layout   string `toml:"layout"`
	Reversed bool   `toml:"reversed"`
	Output   string `toml:"output"`
	Backend  string `toml:"backend"`
	Title    string `toml:"title"`
	Pages    int    `toml:"pages"`
	Margin   int    `toml:"margin"`
	Level    int    `toml:"level"`
	Chunk    int    `toml:"chunk"`
	Fit      bool   `toml:"fit"`
	Verbose  bool   `toml:"verbose"`
}

func defaultConfig() jobConfig {
	return jobConfig{
		Format:  "A4",
		Layout:  "portrait",
		Output:  "widgets.ps",
		Backend: "ps",
		Title:   "ggprint widgets",
		Pages:   1,
		Margin:  ps.DefaultMargin,
		Level:   2,
		Chunk:   capture.DefaultChunkWidth,
		Fit:     true,
	}
}

// bindFlags registers one flag per field of cfg.
func bindFlags(fs *flag.FlagSet, cfg *jobConfig) {
	fs.StringVar(&cfg.Format, "format", cfg.Format, "paper format (A4, Letter, EnvDL, ...)")
	fs.StringVar(&cfg.Layout, "layout", cfg.Layout, "portrait or landscape")
	fs.BoolVar(&cfg.Reversed, "reversed", cfg.Reversed, "rotate the page by 180 degrees")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output file")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "output backend")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "document title")
	fs.IntVar(&cfg.Pages, "pages", cfg.Pages, "number of copies of the tree, one per page")
	fs.IntVar(&cfg.Margin, "margin", cfg.Margin, "page margin in points")
	fs.IntVar(&cfg.Level, "level", cfg.Level, "PostScript language level (2 or 3)")
	fs.IntVar(&cfg.Chunk, "chunk", cfg.Chunk, "widest pixel read-back, 0 for no chunking")
	fs.BoolVar(&cfg.Fit, "fit", cfg.Fit, "shrink the tree to the printable area")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log page lifecycle to stderr")
}

// parseConfig parses args into a jobConfig, reading the file named by
// -config first when present.
func parseConfig(name string, args []string) (jobConfig, error) {
	cfg := defaultConfig()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "TOML job file")
	bindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return jobConfig{}, err
	}
	if *path == "" {
		return cfg, cfg.validate()
	}

	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	data, err := os.ReadFile(*path)
	if err != nil {
		return jobConfig{}, fmt.Errorf("read config: %w", err)
	}
	cfg = defaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return jobConfig{}, fmt.Errorf("parse config %s: %w", *path, err)
	}
	for k, v := range explicit {
		if k == "config" {
			continue
		}
		if err := fs.Set(k, v); err != nil {
			return jobConfig{}, err
		}
	}
	return cfg, cfg.validate()
}

func (c jobConfig) validate() error {
	var errs []error
	if c.Pages < 1 {
		errs = append(errs, fmt.Errorf("pages must be positive, got %d", c.Pages))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin must not be negative, got %d", c.Margin))
	}
	if c.Level != 2 && c.Level != 3 {
		errs = append(errs, fmt.Errorf("language level must be 2 or 3, got %d", c.Level))
	}
	if c.Chunk < 0 {
		errs = append(errs, fmt.Errorf("chunk must not be negative, got %d", c.Chunk))
	}
	return errors.Join(errs...)
}
