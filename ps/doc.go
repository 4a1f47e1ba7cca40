// Package ps implements a page device that writes PostScript.
//
// The output follows the Document Structuring Conventions: a header with
// the page count and bounding box, a prolog of short procedure names, one
// %%Page section per page and a trailer. Every page sets up a flipped
// coordinate system so that drawing calls use the same top-left, y-down
// convention as on screen.
//
// # Graphics state
//
// Color, line style and font are cached. Setting them records the request;
// the operators are written right before the next primitive that needs
// them and only if the value in effect in the stream differs. Clip and
// translate scopes are bracketed by gsave/grestore, and the cache is
// restored together with the stream state on grestore.
//
// # Errors
//
// Lifecycle calls return errors. Drawing primitives do not: a primitive
// used outside an open page, or a failed write, is kept and reported by the
// next EndPage or EndJob. Write errors are sticky; once the stream fails no
// further output is attempted. Popping an empty clip stack or untranslating
// without a translate panics.
//
// # Registration
//
// Importing the package registers the "ps" backend with page.Register.
package ps
