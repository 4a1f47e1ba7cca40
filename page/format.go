package page

import (
	"fmt"
	"strings"
)

// Format is a standard paper size.
type Format int

// Paper formats, in catalogue order.
const (
	A0 Format = iota
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	A8
	A9
	B0
	B1
	B2
	B3
	B4
	B5
	B6
	B7
	B8
	B9
	B10
	C5E
	DLE
	Executive
	Folio
	Ledger
	Legal
	Letter
	Tabloid
	Envelope

	formatCount
)

// formatInfo gives the portrait size of a format in points.
type formatInfo struct {
	width, height int
	name          string
}

var formats = [formatCount]formatInfo{
	A0:        {2384, 3370, "A0"},
	A1:        {1684, 2384, "A1"},
	A2:        {1191, 1684, "A2"},
	A3:        {842, 1191, "A3"},
	A4:        {595, 842, "A4"},
	A5:        {420, 595, "A5"},
	A6:        {297, 420, "A6"},
	A7:        {210, 297, "A7"},
	A8:        {148, 210, "A8"},
	A9:        {105, 148, "A9"},
	B0:        {2920, 4127, "B0"},
	B1:        {2064, 2920, "B1"},
	B2:        {1460, 2064, "B2"},
	B3:        {1032, 1460, "B3"},
	B4:        {729, 1032, "B4"},
	B5:        {516, 729, "B5"},
	B6:        {363, 516, "B6"},
	B7:        {258, 363, "B7"},
	B8:        {181, 258, "B8"},
	B9:        {127, 181, "B9"},
	B10:       {91, 127, "B10"},
	C5E:       {459, 649, "EnvC5"},
	DLE:       {312, 624, "EnvDL"},
	Executive: {522, 756, "Executive"},
	Folio:     {595, 935, "Folio"},
	Ledger:    {1224, 792, "Ledger"},
	Legal:     {612, 1008, "Legal"},
	Letter:    {612, 792, "Letter"},
	Tabloid:   {792, 1224, "Tabloid"},
	Envelope:  {297, 684, "Env10"},
}

// Valid reports whether f is in the catalogue.
func (f Format) Valid() bool {
	return f >= 0 && f < formatCount
}

// Size returns the media size in points as listed in the catalogue.
// Invalid formats report A4.
func (f Format) Size() (width, height int) {
	if !f.Valid() {
		f = A4
	}
	return formats[f].width, formats[f].height
}

// String returns the media name used in page-description output.
func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// Formats returns the whole catalogue in order.
func Formats() []Format {
	out := make([]Format, formatCount)
	for i := range out {
		out[i] = Format(i)
	}
	return out
}

// ParseFormat resolves a media name case-insensitively. Both the catalogue
// names ("EnvC5") and the constant names ("C5E") are accepted.
func ParseFormat(name string) (Format, error) {
	aliases := map[string]Format{"c5e": C5E, "dle": DLE, "envelope": Envelope}
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	for i, info := range formats {
		if strings.ToLower(info.name) == key {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("page: unknown paper format %q", name)
}

// Layout selects the page orientation. Landscape and Reversed combine.
type Layout int

// Layout flags.
const (
	Portrait    Layout = 0
	Landscape   Layout = 0x100
	Reversed    Layout = 0x200
	Orientation Layout = 0x300
)

// IsLandscape reports whether the long edge is horizontal.
func (l Layout) IsLandscape() bool {
	return l&Landscape != 0
}

// IsReversed reports whether the page is turned upside down.
func (l Layout) IsReversed() bool {
	return l&Reversed != 0
}

// PageSize returns the logical page size of f under l in points: width and
// height are swapped for landscape.
func (l Layout) PageSize(f Format) (width, height int) {
	w, h := f.Size()
	if l.IsLandscape() {
		return h, w
	}
	return w, h
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	s := "Portrait"
	if l.IsLandscape() {
		s = "Landscape"
	}
	if l.IsReversed() {
		s += "|Reversed"
	}
	return s
}
