// Package text provides the font catalogue and text metrics used by page
// devices.
//
// Page output uses the standard PostScript fonts (Helvetica, Courier,
// Times and their bold and oblique variants, Symbol and ZapfDingbats).
// Font is an index into that catalogue; Font.PostScriptName returns the
// name a printer resolves.
//
// Widths and vertical metrics come from a Measurer, which shapes text with
// go-text/typesetting against metric-compatible TrueType data. By default
// the Go fonts stand in for the PostScript fonts; SetSource installs the
// real font data when it is available:
//
//	m := text.NewMeasurer()
//	w := m.Width("Total", text.Helvetica, 12)
//
// Strings written into a page stream are Latin-1 encoded with Latin1 and
// quoted with Escape.
package text
