// Package page defines the page device contract shared by all print
// backends.
//
// A Device runs at most one job at a time:
//
//	StartJob -> (StartPage -> draw -> EndPage)* -> EndJob
//
// Machine enforces that order, Frame tracks the page coordinate system of
// the open page and Resources holds the buffers a page must keep alive
// until it is closed. Backends embed these and add their output format.
//
// Drawing happens through a Canvas, which is passed explicitly to every
// drawing routine. Backends register themselves by name with Register so
// callers can select one at run time with NewCanvas.
package page
