// Command ggprint prints a sample widget tree to PostScript or to a
// recording dump.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/capture"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/ps"
	"github.com/gogpu/ggprint/recording"
	"github.com/gogpu/ggprint/screen"
)

func main() {
	if err := printJob(os.Args[0], os.Args[1:]); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// printJob runs the whole command. It returns instead of exiting so that
// the output is closed on every path.
func printJob(name string, args []string) error {
	cfg, err := parseConfig(name, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if cfg.Verbose {
		ggprint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	f, err := page.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	l, err := parseLayout(cfg.Layout, cfg.Reversed)
	if err != nil {
		return err
	}
	if !page.IsRegistered(cfg.Backend) {
		return fmt.Errorf("unknown backend %q (have %s)", cfg.Backend, strings.Join(page.Backends(), ", "))
	}

	scr := screen.New(screen.WithMaxTransfer(cfg.Chunk))
	tree, err := buildTree(scr)
	if err != nil {
		return fmt.Errorf("build widgets: %w", err)
	}
	surfaceChunk := cfg.Chunk
	if surfaceChunk == 0 {
		surfaceChunk = -1
	}
	capture.RegisterSurfacePrinter(capture.SurfacePlugin, capture.ReadbackSurfacePrinter{
		Display:    scr,
		ChunkWidth: surfaceChunk,
	})
	defer capture.UnregisterSurfacePrinter(capture.SurfacePlugin)

	canvas, closeOut, err := newCanvas(cfg, f, l)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer closeOut()

	if err := run(canvas, tree, scr, cfg.Pages, cfg.Chunk, cfg.Fit); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	log.Printf("Printed %d page(s) to %s (%s, %s, %s)\n", cfg.Pages, cfg.Output, cfg.Backend, f, l)
	return nil
}

func parseLayout(name string, reversed bool) (page.Layout, error) {
	var l page.Layout
	switch strings.ToLower(name) {
	case "portrait":
		l = page.Portrait
	case "landscape":
		l = page.Landscape
	default:
		return 0, fmt.Errorf("unknown layout %q", name)
	}
	if reversed {
		l |= page.Reversed
	}
	return l, nil
}

// newCanvas creates the output device. The returned function closes any
// file the device does not own.
func newCanvas(cfg jobConfig, f page.Format, l page.Layout) (page.Canvas, func(), error) {
	margin := float64(cfg.Margin)
	switch cfg.Backend {
	case "ps":
		d := ps.New(
			ps.WithFile(cfg.Output),
			ps.WithFormat(f),
			ps.WithLayout(l),
			ps.WithMargins(margin, margin),
			ps.WithLanguageLevel(cfg.Level),
			ps.WithTitle(cfg.Title),
		)
		return d, func() {}, nil
	case "recording":
		out, err := os.Create(cfg.Output)
		if err != nil {
			return nil, nil, err
		}
		rec := recording.NewRecorder(
			recording.WithDump(out),
			recording.WithFormat(f),
			recording.WithLayout(l),
			recording.WithMargins(margin, margin),
		)
		return rec, func() { _ = out.Close() }, nil
	}
	out, err := os.Create(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	c, err := page.NewCanvas(cfg.Backend, out)
	if err != nil {
		_ = out.Close()
		return nil, nil, err
	}
	return c, func() { _ = out.Close() }, nil
}

func run(c page.Canvas, tree capture.Node, scr *screen.Screen, pages, chunk int, fit bool) error {
	if _, _, err := c.StartJob(pages); err != nil {
		return err
	}
	p := capture.NewPrinter(c, capture.WithDisplay(scr), capture.WithChunkWidth(chunk))
	for i := 0; i < pages; i++ {
		if err := c.StartPage(); err != nil {
			_ = c.EndJob()
			return err
		}
		if fit {
			if err := p.FitToPage(tree); err != nil {
				_ = c.EndJob()
				return err
			}
		}
		if err := p.PrintWidget(tree, 0, 0); err != nil {
			log.Printf("page %d: %v", i+1, err)
		}
		if err := c.EndPage(); err != nil {
			_ = c.EndJob()
			return err
		}
	}
	return c.EndJob()
}
