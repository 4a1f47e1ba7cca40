package text

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggprint/internal/cache"
)

// referenceSize is the size text is shaped at before scaling. Shaping
// output is 26.6 fixed point, so a large reference keeps rounding error
// well below a thousandth of the requested size.
const referenceSize = 1000

// widthCacheSize bounds the number of memoized string widths.
const widthCacheSize = 2048

// widthKey identifies a measured run at the reference size.
type widthKey struct {
	font Font
	text string
}

// Metrics holds vertical font metrics in the same unit as the requested
// size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the line.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the
	// line, as a positive value.
	Descent float64

	// Height is the recommended distance between consecutive baselines.
	Height float64
}

// Measurer computes advance widths and line metrics for catalogue fonts.
//
// Measurer is safe for concurrent use. It caches parsed font.Font objects
// (which are thread-safe) and creates lightweight font.Face instances per
// call. The HarfbuzzShaper instances are pooled via sync.Pool since they
// are not concurrent-safe.
type Measurer struct {
	shaperPool sync.Pool
	widths     *cache.LRU[widthKey, float64]

	// mu protects sources, fonts and metrics.
	mu      sync.RWMutex
	sources map[Font][]byte
	fonts   map[Font]*font.Font
	metrics map[Font]Metrics
}

// NewMeasurer creates a Measurer backed by the Go fonts.
func NewMeasurer() *Measurer {
	return &Measurer{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		widths:  cache.New[widthKey, float64](widthCacheSize),
		sources: defaultSources(),
		fonts:   make(map[Font]*font.Font),
		metrics: make(map[Font]Metrics),
	}
}

var (
	defaultOnce     sync.Once
	defaultMeasurer *Measurer
)

// Default returns a shared Measurer.
func Default() *Measurer {
	defaultOnce.Do(func() {
		defaultMeasurer = NewMeasurer()
	})
	return defaultMeasurer
}

// defaultSources maps the catalogue onto metric stand-ins: the Go fonts
// for the sans and mono families, Latin Modern Roman for Times.
func defaultSources() map[Font][]byte {
	return map[Font][]byte{
		Helvetica:           goregular.TTF,
		HelveticaBold:       gobold.TTF,
		HelveticaItalic:     goitalic.TTF,
		HelveticaBoldItalic: gobolditalic.TTF,
		Courier:             gomono.TTF,
		CourierBold:         gomonobold.TTF,
		CourierItalic:       gomonoitalic.TTF,
		CourierBoldItalic:   gomonobolditalic.TTF,
		Times:               lmroman10regular.TTF,
		TimesBold:           lmroman10bold.TTF,
		TimesItalic:         lmroman10italic.TTF,
		TimesBoldItalic:     lmroman10bolditalic.TTF,
		Symbol:              goregular.TTF,
		Screen:              gomono.TTF,
		ScreenBold:          gomonobold.TTF,
		ZapfDingbats:        goregular.TTF,
	}
}

// SetSource replaces the TrueType/OpenType data used to measure f.
// The data is parsed immediately so errors surface here rather than on
// the first measurement.
func (m *Measurer) SetSource(f Font, data []byte) error {
	if !f.Valid() {
		return fmt.Errorf("text: invalid font %d", int(f))
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("text: parse %s: %w", f, err)
	}

	m.mu.Lock()
	m.sources[f] = data
	m.fonts[f] = face.Font
	delete(m.metrics, f)
	m.mu.Unlock()

	// Width holds the cache lock while taking m.mu, so clear outside it.
	m.widths.Clear()
	return nil
}

// Width returns the advance width of s set in f at size.
// Unknown fonts and parse failures measure as zero.
func (m *Measurer) Width(s string, f Font, size float64) float64 {
	if s == "" || size <= 0 {
		return 0
	}
	ref := m.widths.GetOrCreate(widthKey{f, s}, func() float64 {
		out, ok := m.shape([]rune(s), f)
		if !ok {
			return 0
		}
		return fixedToFloat(out.Advance)
	})
	return ref * size / referenceSize
}

// RuneWidth returns the advance width of a single rune.
func (m *Measurer) RuneWidth(r rune, f Font, size float64) float64 {
	return m.Width(string(r), f, size)
}

// Metrics returns the vertical metrics of f at size.
func (m *Measurer) Metrics(f Font, size float64) Metrics {
	m.mu.RLock()
	ref, ok := m.metrics[f]
	m.mu.RUnlock()

	if !ok {
		out, shaped := m.shape([]rune("Hg"), f)
		if !shaped {
			return Metrics{}
		}
		ascent := math.Abs(fixedToFloat(out.LineBounds.Ascent))
		descent := math.Abs(fixedToFloat(out.LineBounds.Descent))
		ref = Metrics{
			Ascent:  ascent,
			Descent: descent,
			Height:  ascent + descent + math.Abs(fixedToFloat(out.LineBounds.Gap)),
		}
		m.mu.Lock()
		m.metrics[f] = ref
		m.mu.Unlock()
	}

	k := size / referenceSize
	return Metrics{Ascent: ref.Ascent * k, Descent: ref.Descent * k, Height: ref.Height * k}
}

// shape runs HarfBuzz shaping over runes at the reference size.
func (m *Measurer) shape(runes []rune, f Font) (shaping.Output, bool) {
	goTextFont, err := m.getOrCreateFont(f)
	if err != nil {
		return shaping.Output{}, false
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(goTextFont),
		Size:      floatToFixed(referenceSize),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}

	hb := m.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.shaperPool.Put(hb)
	return out, true
}

// getOrCreateFont returns a cached go-text font.Font for f, parsing its
// source on first use.
func (m *Measurer) getOrCreateFont(f Font) (*font.Font, error) {
	m.mu.RLock()
	if ft, ok := m.fonts[f]; ok {
		m.mu.RUnlock()
		return ft, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock.
	if ft, ok := m.fonts[f]; ok {
		return ft, nil
	}

	data, ok := m.sources[f]
	if !ok {
		return nil, fmt.Errorf("text: no font data for %s", f)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	m.fonts[f] = face.Font
	return face.Font, nil
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
