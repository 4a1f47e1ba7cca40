package text

import (
	"math"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestFontPostScriptNames(t *testing.T) {
	tests := []struct {
		font Font
		want string
	}{
		{Helvetica, "Helvetica"},
		{HelveticaBoldItalic, "Helvetica-BoldOblique"},
		{Courier, "Courier"},
		{Times, "Times-Roman"},
		{TimesBoldItalic, "Times-BoldItalic"},
		{Symbol, "Symbol"},
		{Screen, "Courier"},
		{ScreenBold, "Courier-Bold"},
		{ZapfDingbats, "ZapfDingbats"},
		{Font(-1), "Helvetica"},
		{Font(99), "Helvetica"},
	}
	for _, tt := range tests {
		if got := tt.font.PostScriptName(); got != tt.want {
			t.Errorf("Font(%d).PostScriptName() = %q, want %q", int(tt.font), got, tt.want)
		}
	}
}

func TestFontsCatalogue(t *testing.T) {
	fonts := Fonts()
	if len(fonts) != 16 {
		t.Fatalf("len(Fonts()) = %d, want 16", len(fonts))
	}
	for i, f := range fonts {
		if int(f) != i || !f.Valid() {
			t.Errorf("Fonts()[%d] = %v", i, f)
		}
	}
	if Symbol.Latin1() || ZapfDingbats.Latin1() {
		t.Error("Symbol and ZapfDingbats must keep their built-in encodings")
	}
	if !Courier.Monospace() || Helvetica.Monospace() {
		t.Error("Monospace() misclassified Courier or Helvetica")
	}
}

func TestMeasurerWidth(t *testing.T) {
	m := NewMeasurer()

	if w := m.Width("", Helvetica, 12); w != 0 {
		t.Errorf("Width(\"\") = %f, want 0", w)
	}
	if w := m.Width("abc", Helvetica, 0); w != 0 {
		t.Errorf("Width at size 0 = %f, want 0", w)
	}

	w12 := m.Width("Hello", Helvetica, 12)
	w24 := m.Width("Hello", Helvetica, 24)
	if w12 <= 0 {
		t.Fatalf("Width(Hello, 12) = %f, want > 0", w12)
	}
	if math.Abs(w24-2*w12) > 0.01 {
		t.Errorf("Width should scale linearly: 12pt=%f 24pt=%f", w12, w24)
	}

	if longer := m.Width("Hello, world", Helvetica, 12); longer <= w12 {
		t.Errorf("longer string measured %f, not wider than %f", longer, w12)
	}
}

func TestMeasurerWidthCache(t *testing.T) {
	m := NewMeasurer()
	first := m.Width("cached", Times, 10)
	second := m.Width("cached", Times, 20)
	if math.Abs(second-2*first) > 1e-9 {
		t.Errorf("cached width not rescaled: %f vs %f", first, second)
	}
	if s := m.widths.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("cache stats = %+v, want 1 hit 1 miss", s)
	}
}

func TestMeasurerMonospace(t *testing.T) {
	m := NewMeasurer()
	wi := m.Width("iiii", Courier, 10)
	wm := m.Width("MMMM", Courier, 10)
	if math.Abs(wi-wm) > 0.01 {
		t.Errorf("Courier widths differ: iiii=%f MMMM=%f", wi, wm)
	}
	if r := m.RuneWidth('M', Courier, 10); math.Abs(r*4-wm) > 0.01 {
		t.Errorf("RuneWidth('M')*4 = %f, want %f", r*4, wm)
	}
}

func TestMeasurerMetrics(t *testing.T) {
	m := NewMeasurer()
	got := m.Metrics(Helvetica, 10)
	if got.Ascent <= 0 || got.Descent <= 0 {
		t.Fatalf("Metrics(10) = %+v, want positive ascent and descent", got)
	}
	if got.Height < got.Ascent+got.Descent {
		t.Errorf("Height %f < Ascent+Descent %f", got.Height, got.Ascent+got.Descent)
	}

	big := m.Metrics(Helvetica, 20)
	if math.Abs(big.Ascent-2*got.Ascent) > 0.01 {
		t.Errorf("Metrics should scale linearly: %f vs %f", big.Ascent, got.Ascent)
	}
}

func TestMeasurerSetSource(t *testing.T) {
	m := NewMeasurer()
	if err := m.SetSource(Symbol, goregular.TTF); err != nil {
		t.Fatalf("SetSource() = %v", err)
	}
	if err := m.SetSource(Symbol, []byte("not a font")); err == nil {
		t.Error("SetSource() with garbage should fail")
	}
	if err := m.SetSource(Font(100), goregular.TTF); err == nil {
		t.Error("SetSource() with invalid font should fail")
	}
	if w := m.Width("abc", Symbol, 10); w <= 0 {
		t.Errorf("Width after SetSource = %f, want > 0", w)
	}
}

func TestMeasurerConcurrent(t *testing.T) {
	m := NewMeasurer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(f Font) {
			defer wg.Done()
			if m.Width("concurrent", f, 11) <= 0 {
				t.Errorf("Width(%v) <= 0", f)
			}
		}(Font(i))
	}
	wg.Wait()
}

func TestLatin1(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"abc", []byte("abc")},
		{"café", []byte{'c', 'a', 'f', 0xe9}},
		{"日本", []byte("??")},
		{"", []byte{}},
	}
	for _, tt := range tests {
		got := Latin1(tt.in)
		if string(got) != string(tt.want) {
			t.Errorf("Latin1(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("plain"), "(plain)"},
		{[]byte("a(b)c"), `(a\(b\)c)`},
		{[]byte(`back\slash`), `(back\\slash)`},
		{[]byte{'x', 0xe9}, `(x\351)`},
		{[]byte{'\n'}, `(\012)`},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
