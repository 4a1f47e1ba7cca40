package ps

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggprint/page"
)

func startPage(t *testing.T, d *Device, pages int) {
	t.Helper()
	if _, _, err := d.StartJob(pages); err != nil {
		t.Fatalf("StartJob: %v", err)
	}
	if err := d.StartPage(); err != nil {
		t.Fatalf("StartPage: %v", err)
	}
}

func TestSinglePageRect(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))

	from, to, err := d.StartJob(1)
	if err != nil {
		t.Fatalf("StartJob: %v", err)
	}
	if from != 1 || to != 1 {
		t.Errorf("page range = %d..%d, want 1..1", from, to)
	}
	if err := d.StartPage(); err != nil {
		t.Fatalf("StartPage: %v", err)
	}
	w, h, err := d.PrintableRect()
	if err != nil || w <= 0 || h <= 0 {
		t.Fatalf("PrintableRect = %d, %d, %v", w, h, err)
	}
	d.Rect(0, 0, 100, 50)
	if err := d.EndPage(); err != nil {
		t.Fatalf("EndPage: %v", err)
	}
	if err := d.EndJob(); err != nil {
		t.Fatalf("EndJob: %v", err)
	}

	out := buf.String()
	checks := []struct {
		sub  string
		want int
	}{
		{"%!PS-Adobe-3.0\n", 1},
		{"%%Pages: 1\n", 1},
		{"%%Page: 1 1\n", 1},
		{"0 0 100 50 R\n", 1},
		{"showpage\n", 1},
		{"%%EOF\n", 1},
	}
	for _, c := range checks {
		if got := strings.Count(out, c.sub); got != c.want {
			t.Errorf("count(%q) = %d, want %d", c.sub, got, c.want)
		}
	}
	if d.State() != page.Idle {
		t.Errorf("State after EndJob = %v, want Idle", d.State())
	}
}

func TestLifecycleErrors(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))

	if err := d.StartPage(); !errors.Is(err, page.ErrNoJob) {
		t.Errorf("StartPage before job = %v, want ErrNoJob", err)
	}
	if _, _, err := d.PrintableRect(); !errors.Is(err, page.ErrNoPage) {
		t.Errorf("PrintableRect while idle = %v, want ErrNoPage", err)
	}
	if err := d.EndJob(); err != nil {
		t.Errorf("EndJob while idle = %v, want nil", err)
	}
	if buf.Len() != 0 {
		t.Errorf("idle device wrote %d bytes", buf.Len())
	}

	startPage(t, d, 1)
	if _, _, err := d.StartJob(1); !errors.Is(err, page.ErrJobActive) {
		t.Errorf("second StartJob = %v, want ErrJobActive", err)
	}
	if err := d.StartPage(); !errors.Is(err, page.ErrPageOpen) {
		t.Errorf("StartPage on open page = %v, want ErrPageOpen", err)
	}
	if err := d.EndPage(); err != nil {
		t.Fatalf("EndPage: %v", err)
	}
	if err := d.EndPage(); !errors.Is(err, page.ErrNoPage) {
		t.Errorf("EndPage without page = %v, want ErrNoPage", err)
	}
	if err := d.StartPage(); !errors.Is(err, page.ErrPageBound) {
		t.Errorf("StartPage past bound = %v, want ErrPageBound", err)
	}
	if err := d.EndJob(); err != nil {
		t.Errorf("EndJob: %v", err)
	}
}

func TestStartJobWithoutSink(t *testing.T) {
	d := New()
	if _, _, err := d.StartJob(0); !errors.Is(err, page.ErrNoSink) {
		t.Errorf("StartJob = %v, want ErrNoSink", err)
	}
	if d.State() != page.Idle {
		t.Errorf("State = %v, want Idle", d.State())
	}
}

func TestStartJobFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.ps")
	d := New(WithFile(path))
	_, _, err := d.StartJob(1)
	if err == nil {
		t.Fatal("StartJob succeeded on an uncreatable path")
	}
	if !strings.HasPrefix(err.Error(), "ps: open output") {
		t.Errorf("error = %v", err)
	}
	if d.State() != page.Idle {
		t.Errorf("State = %v, want Idle", d.State())
	}
}

func TestWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ps")
	d := New(WithFile(path), WithTitle("report"))
	startPage(t, d, 0)
	d.RectFill(1, 2, 3, 4)
	if err := d.EndJob(); err != nil {
		t.Fatalf("EndJob: %v", err)
	}
	if d.file != nil {
		t.Error("file not closed")
	}
}

func TestUnboundedJobTrailer(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))
	from, to, err := d.StartJob(0)
	if err != nil || from != 0 || to != 0 {
		t.Fatalf("StartJob(0) = %d, %d, %v", from, to, err)
	}
	for i := 0; i < 2; i++ {
		if err := d.StartPage(); err != nil {
			t.Fatalf("StartPage %d: %v", i, err)
		}
		if err := d.EndPage(); err != nil {
			t.Fatalf("EndPage %d: %v", i, err)
		}
	}
	if err := d.EndJob(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "%%Pages: (atend)\n") {
		t.Error("header does not defer the page count")
	}
	if !strings.Contains(out, "%%Trailer\n%%Pages: 2\n%%EOF\n") {
		t.Errorf("trailer missing page count:\n%s", out[strings.LastIndex(out, "showpage"):])
	}
}

func TestEndJobClosesOpenPage(t *testing.T) {
	var buf bytes.Buffer
	closed := false
	d := New(WithWriter(&buf), WithCloseFunc(func(w io.Writer) error {
		closed = w == &buf
		return nil
	}))
	startPage(t, d, 1)
	if err := d.EndJob(); err != nil {
		t.Fatalf("EndJob: %v", err)
	}
	if !closed {
		t.Error("close func not called with the output")
	}
	if got := strings.Count(buf.String(), "showpage"); got != 1 {
		t.Errorf("showpage count = %d, want 1", got)
	}
}

func TestCloseFuncError(t *testing.T) {
	var buf bytes.Buffer
	errSpool := errors.New("spool failed")
	d := New(WithWriter(&buf), WithCloseFunc(func(io.Writer) error { return errSpool }))
	startPage(t, d, 1)
	if err := d.EndJob(); !errors.Is(err, errSpool) {
		t.Errorf("EndJob = %v, want wrapped spool error", err)
	}
}

func TestPrintableRectAndMargins(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		scale  float64
		wantW  int
		wantH  int
		margin int
	}{
		{"A4 portrait", nil, 1, 559, 806, 18},
		{"A4 half scale", nil, 0.5, 1118, 1612, 36},
		{"A4 landscape", []Option{WithLayout(page.Landscape)}, 1, 806, 559, 18},
		{"Letter", []Option{WithFormat(page.Letter)}, 1, 576, 756, 18},
		{"no margins", []Option{WithMargins(0, 0)}, 1, 595, 842, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			d := New(append([]Option{WithWriter(&buf)}, tt.opts...)...)
			startPage(t, d, 1)
			if tt.scale != 1 {
				d.Scale(tt.scale, 0)
			}
			w, h, err := d.PrintableRect()
			if err != nil {
				t.Fatal(err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PrintableRect = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			l, top, r, b, err := d.Margins()
			if err != nil {
				t.Fatal(err)
			}
			if l != tt.margin || top != tt.margin || r != tt.margin || b != tt.margin {
				t.Errorf("Margins = %d %d %d %d, want %d", l, top, r, b, tt.margin)
			}
			if err := d.EndJob(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestPageSetup(t *testing.T) {
	tests := []struct {
		layout page.Layout
		want   []string
	}{
		{page.Portrait, []string{"%%PageOrientation: Portrait\n", "0 842 TR 1 -1 SC\n"}},
		{page.Landscape, []string{"%%Orientation: Landscape\n", "90 ROT 0 -595 TR\n", "0 595 TR 1 -1 SC\n"}},
		{page.Portrait | page.Reversed, []string{"595 842 TR 180 ROT\n", "0 842 TR 1 -1 SC\n"}},
		{page.Landscape | page.Reversed, []string{"-90 ROT -842 0 TR\n", "0 595 TR 1 -1 SC\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			var buf bytes.Buffer
			d := New(WithWriter(&buf), WithLayout(tt.layout))
			startPage(t, d, 1)
			if err := d.EndJob(); err != nil {
				t.Fatal(err)
			}
			for _, sub := range tt.want {
				if !strings.Contains(buf.String(), sub) {
					t.Errorf("output lacks %q", sub)
				}
			}
		})
	}
}

func TestOriginScaleRotate(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))
	startPage(t, d, 1)

	d.SetOrigin(10, 20)
	d.Translate(5, 5)
	if x, y := d.Origin(); x != 10 || y != 20 {
		t.Errorf("Origin after Translate = %d, %d, want 10, 20", x, y)
	}
	d.Untranslate()

	d.Scale(2, 0)
	if x, y := d.Origin(); x != 0 || y != 0 {
		t.Errorf("Origin after Scale = %d, %d, want 0, 0", x, y)
	}
	d.SetOrigin(3, 4)
	d.Rotate(90)
	if x, y := d.Origin(); x != 3 || y != 4 {
		t.Errorf("Origin after Rotate = %d, %d, want 3, 4", x, y)
	}
	if err := d.EndPage(); err != nil {
		t.Fatalf("EndPage: %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"GR GS\n10 20 TR\n", "GS\n5 5 TR\n", "GR GS\n2 2 SC\n3 4 TR\n-90 ROT\n"} {
		if !strings.Contains(out, sub) {
			t.Errorf("output lacks %q", sub)
		}
	}
}

func TestInvalidScale(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))
	startPage(t, d, 1)
	d.Scale(-1, 1)
	if err := d.EndPage(); !errors.Is(err, page.ErrInvalidScale) {
		t.Errorf("EndPage = %v, want ErrInvalidScale", err)
	}
}

func TestNestedTransform(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))
	startPage(t, d, 1)
	d.Translate(10, 10)
	d.Scale(2, 2)
	d.Untranslate()
	if sx, _ := d.frame.ScaleFactors(); sx != 1 {
		t.Errorf("scale applied inside translate: %v", sx)
	}
	if err := d.EndPage(); !errors.Is(err, page.ErrNestedTransform) {
		t.Errorf("EndPage = %v, want ErrNestedTransform", err)
	}
}

func TestPrimitiveOutsidePage(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))
	if _, _, err := d.StartJob(1); err != nil {
		t.Fatal(err)
	}
	d.RectFill(0, 0, 10, 10)
	// scoped calls outside a page are recorded, not panics
	d.PushClip(0, 0, 5, 5)
	d.PopClip()
	d.Translate(1, 1)
	d.Untranslate()
	if err := d.StartPage(); err != nil {
		t.Fatal(err)
	}
	if err := d.EndPage(); !errors.Is(err, page.ErrNoPage) {
		t.Errorf("EndPage = %v, want recorded ErrNoPage", err)
	}
	if strings.Contains(buf.String(), "0 0 10 10 RF") {
		t.Error("primitive outside page was written")
	}
	if err := d.EndJob(); err != nil {
		t.Errorf("EndJob reported the error again: %v", err)
	}
}

func TestUnbalancedStacks(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))
	startPage(t, d, 0)
	d.Translate(1, 1)
	d.PushClip(0, 0, 10, 10)
	err := d.EndPage()
	if !errors.Is(err, page.ErrUnbalancedClip) || !errors.Is(err, page.ErrUnbalancedTranslate) {
		t.Errorf("EndPage = %v, want both unbalanced errors", err)
	}

	if err := d.StartPage(); err != nil {
		t.Fatal(err)
	}
	if _, _, _, _, changed := d.ClipBox(0, 0, 50, 50); changed {
		t.Error("clip from previous page still active")
	}
	if dx, dy := d.frame.Translation(); dx != 0 || dy != 0 {
		t.Errorf("translation leaked: %d, %d", dx, dy)
	}
	if err := d.EndJob(); err != nil {
		t.Errorf("EndJob: %v", err)
	}
	body := buf.String()
	body = body[strings.Index(body, "%%EndSetup"):]
	gs, gr := 0, 0
	for _, tok := range strings.Fields(body) {
		switch tok {
		case "GS":
			gs++
		case "GR":
			gr++
		}
	}
	if gs != gr {
		t.Errorf("GS/GR imbalance: %d vs %d", gs, gr)
	}
}

func TestUntranslateClosesInnerClip(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithWriter(&buf))
	startPage(t, d, 1)
	d.Translate(1, 1)
	d.PushClip(0, 0, 10, 10)
	d.Untranslate()
	if d.clips.Depth() != 0 || len(d.scopes) != 0 {
		t.Errorf("scopes left: clips %d, gsave %d", d.clips.Depth(), len(d.scopes))
	}
	if err := d.EndPage(); !errors.Is(err, page.ErrUnbalancedClip) {
		t.Errorf("EndPage = %v, want ErrUnbalancedClip", err)
	}
}

func TestStackUnderflowPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(d *Device)
	}{
		{"PopClip", func(d *Device) { d.PopClip() }},
		{"Untranslate", func(d *Device) { d.Untranslate() }},
		{"PopClip across Translate", func(d *Device) {
			d.PushClip(0, 0, 5, 5)
			d.Translate(1, 1)
			d.PopClip()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			d := New(WithWriter(&buf))
			startPage(t, d, 1)
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(d)
		})
	}
}

func TestWriteErrorIsSticky(t *testing.T) {
	errDisk := errors.New("disk full")
	w := &failWriter{err: errDisk}
	d := New(WithWriter(w))
	startPage(t, d, 1)
	d.RectFill(0, 0, 1, 1)
	if err := d.EndPage(); !errors.Is(err, errDisk) {
		t.Errorf("EndPage = %v, want write error", err)
	}
	calls := w.calls
	d.RectFill(0, 0, 1, 1)
	if err := d.EndJob(); !errors.Is(err, errDisk) {
		t.Errorf("EndJob = %v, want write error", err)
	}
	if w.calls != calls {
		t.Errorf("writes attempted after failure: %d -> %d", calls, w.calls)
	}
	if !errors.Is(d.Err(), errDisk) {
		t.Errorf("Err = %v", d.Err())
	}
}

type failWriter struct {
	err   error
	calls int
}

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, w.err
}

type releaseCounter struct{ n *int }

func (r releaseCounter) Release() { *r.n++ }

func TestRetain(t *testing.T) {
	for _, deferred := range []bool{false, true} {
		var buf bytes.Buffer
		d := New(WithWriter(&buf), WithDeferredImages(deferred))
		startPage(t, d, 1)
		n := 0
		d.Retain(releaseCounter{&n})
		want := 1
		if deferred {
			want = 0
		}
		if n != want {
			t.Errorf("deferred=%v: released %d before EndPage, want %d", deferred, n, want)
		}
		if err := d.EndPage(); err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("deferred=%v: released %d after EndPage, want 1", deferred, n)
		}
		_ = d.EndJob()
	}
}

func TestRegisteredBackend(t *testing.T) {
	if !page.IsRegistered("ps") {
		t.Fatal("ps backend not registered")
	}
	var buf bytes.Buffer
	c, err := page.NewCanvas("ps", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.StartJob(1); err != nil {
		t.Fatal(err)
	}
	if err := c.EndJob(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "%!PS-Adobe-3.0") {
		t.Error("registered backend does not write PostScript")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-0.0001, "0"},
		{0.5, "0.5"},
		{1.23456, "1.235"},
		{-12.5, "-12.5"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var _ page.Canvas = (*Device)(nil)
