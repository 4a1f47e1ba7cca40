// Package ggprint prints live widget trees to paged output.
//
// # Overview
//
// ggprint re-executes the drawing routines of a widget tree against a
// page-oriented device instead of the screen. A print job is a sequence of
// pages; every page has its own coordinate system, printable area and clip
// stack. The pipeline is split into packages:
//
//   - page: the page device contract (job/page state machine, margins,
//     origin, scale, rotate, translate) and the paper format catalogue
//   - ps: a PostScript backend that serializes drawing calls into a DSC
//     conforming page-description stream
//   - capture: widget tree traversal (PrintWidget) and on-screen pixel
//     capture (PrintWindowPart)
//   - recording: a backend that records commands for inspection and replay
//   - screen: an in-memory display used for pixel read-back
//   - text: PostScript font catalogue and text metrics
//
// # Quick Start
//
//	dev := ps.New(ps.WithFile("out.ps"), ps.WithFormat(page.A4))
//	if _, _, err := dev.StartJob(1); err != nil {
//	    return err
//	}
//	_ = dev.StartPage()
//	pr := capture.NewPrinter(dev)
//	_ = pr.PrintWidget(window, 0, 0)
//	_ = dev.EndPage()
//	return dev.EndJob()
//
// # Coordinate System
//
// Page coordinates are in points (1/72 inch) until Scale is called:
//   - Origin (0,0) at the top-left corner of the printable area
//   - X increases right
//   - Y increases down
//   - Rotation angles in degrees, counter-clockwise
//
// # Threading
//
// Devices are not safe for concurrent use. A device runs at most one job at
// a time and every call is expected from the goroutine driving the export.
package ggprint

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
