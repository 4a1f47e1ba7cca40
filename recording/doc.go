// Package recording provides a page device that records drawing
// operations instead of producing output.
//
// A Recorder implements page.Canvas. It enforces the same job and page
// lifecycle as the PostScript device and stores every operation of every
// page as a typed command. The finished Recording can be inspected, dumped
// as text or replayed onto any other canvas:
//
//	rec := recording.NewRecorder()
//	printer := capture.NewPrinter(rec)
//	... print widgets ...
//	r := rec.FinishRecording()
//	err := r.Playback(ps.New(ps.WithFile("out.ps")))
//
// Commands are plain structs, following Cairo's approach of typed command
// records for inspectability. Pixel data handed to DrawImage is copied into
// the recording's ResourcePool and referenced by ImageRef, so captured
// buffers can be released as soon as the call returns.
//
// Importing the package registers the "recording" backend with
// page.Register; the writer given to page.NewCanvas receives the text dump
// of each job at EndJob.
package recording
