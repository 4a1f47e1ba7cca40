package capture

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/recording"
)

type mockNode struct {
	name     string
	kind     Kind
	bounds   Rect
	hidden   bool
	children []Node
	err      error
	damaged  int
	draws    int
}

func (n *mockNode) Visible() bool    { return !n.hidden }
func (n *mockNode) Bounds() Rect     { return n.bounds }
func (n *mockNode) Kind() Kind       { return n.kind }
func (n *mockNode) Damage()          { n.damaged++ }
func (n *mockNode) Children() []Node { return n.children }

func (n *mockNode) Draw(c page.Canvas) error {
	n.draws++
	b := n.bounds
	if n.kind.IsWindow() {
		b.X, b.Y = 0, 0
	}
	c.Rect(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
	if n.kind.HasChildren() {
		if err := DrawChildren(c, n); err != nil {
			return err
		}
	}
	return n.err
}

type readCall struct{ x, y, w, h int }

type mockDisplay struct {
	front Node
	shown []Node
	reads []readCall
	fail  map[int]bool // read index -> fail
	empty map[int]bool // read index -> nil pixmap
	bufs  []*ggprint.Pixmap
}

func (d *mockDisplay) FrontWindow() Node { return d.front }

func (d *mockDisplay) Show(win Node) error {
	d.shown = append(d.shown, win)
	d.front = win
	return nil
}

func (d *mockDisplay) ReadRegion(_ Node, x, y, w, h int) (*ggprint.Pixmap, error) {
	i := len(d.reads)
	d.reads = append(d.reads, readCall{x, y, w, h})
	if d.fail[i] {
		return nil, errors.New("transfer failed")
	}
	if d.empty[i] {
		return nil, nil
	}
	img, err := ggprint.NewPixmap(w, h, 3)
	if err != nil {
		return nil, err
	}
	d.bufs = append(d.bufs, img)
	return img, nil
}

// openPage returns a recorder with an open page.
func openPage(t *testing.T) *recording.Recorder {
	t.Helper()
	rec := recording.NewRecorder()
	if _, _, err := rec.StartJob(1); err != nil {
		t.Fatal(err)
	}
	if err := rec.StartPage(); err != nil {
		t.Fatal(err)
	}
	return rec
}

// finish ends the job and returns the commands of its only page.
func finish(t *testing.T, rec *recording.Recorder) []recording.Command {
	t.Helper()
	if err := rec.EndJob(); err != nil {
		t.Fatalf("EndJob: %v", err)
	}
	return rec.FinishRecording().Commands(0)
}

func count(cmds []recording.Command, typ recording.CommandType) int {
	n := 0
	for _, c := range cmds {
		if c.Type() == typ {
			n++
		}
	}
	return n
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind                          Kind
		window, children, accelerated bool
		name                          string
	}{
		{KindWidget, false, false, false, "Widget"},
		{KindGroup, false, true, false, "Group"},
		{KindWindow, true, true, false, "Window"},
		{KindAcceleratedSurface, true, true, true, "AcceleratedSurface"},
	}
	for _, tt := range tests {
		if tt.kind.IsWindow() != tt.window || tt.kind.HasChildren() != tt.children || tt.kind.IsAccelerated() != tt.accelerated {
			t.Errorf("%v capabilities wrong", tt.kind)
		}
		if tt.kind.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.kind.String(), tt.name)
		}
	}
	if Kind(9).String() != "Kind(9)" {
		t.Errorf("unknown kind String() = %q", Kind(9).String())
	}
}

func TestPrintWidgetInvisible(t *testing.T) {
	rec := openPage(t)
	child := &mockNode{kind: KindWindow, bounds: Rect{10, 10, 50, 50}}
	n := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 100, 100}, hidden: true, children: []Node{child}}
	if err := NewPrinter(rec).PrintWidget(n, 20, 30); err != nil {
		t.Fatal(err)
	}
	if n.draws != 0 || n.damaged != 0 || child.draws != 0 {
		t.Errorf("invisible node touched: draws=%d damaged=%d child=%d", n.draws, n.damaged, child.draws)
	}
	if cmds := finish(t, rec); len(cmds) != 0 {
		t.Errorf("invisible node emitted %d commands", len(cmds))
	}
}

func TestPrintWidgetBalancedOnDrawError(t *testing.T) {
	errDraw := errors.New("draw failed")
	inner := &mockNode{kind: KindWindow, bounds: Rect{5, 5, 20, 20}, err: errDraw}
	outer := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 100, 100}, err: errDraw, children: []Node{inner}}

	rec := openPage(t)
	err := NewPrinter(rec).PrintWidget(outer, 30, 40)
	if !errors.Is(err, errDraw) {
		t.Errorf("PrintWidget = %v, want draw error", err)
	}
	if inner.draws != 1 {
		t.Errorf("nested window drawn %d times after parent error, want 1", inner.draws)
	}
	cmds := finish(t, rec)
	if p, q := count(cmds, recording.CmdPushClip), count(cmds, recording.CmdPopClip); p != 2 || q != 2 {
		t.Errorf("clip push/pop = %d/%d, want 2/2", p, q)
	}
	if p, q := count(cmds, recording.CmdTranslate), count(cmds, recording.CmdUntranslate); p != 2 || q != 2 {
		t.Errorf("translate/untranslate = %d/%d, want 2/2", p, q)
	}
}

func TestPrintWidgetBalancedOnPanic(t *testing.T) {
	rec := openPage(t)
	n := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 10, 10}}
	p := NewPrinter(rec)
	func() {
		defer func() { _ = recover() }()
		p.Canvas = panicOnRect{rec}
		_ = p.PrintWidget(n, 1, 1)
	}()
	cmds := finish(t, rec)
	if count(cmds, recording.CmdPopClip) != 1 || count(cmds, recording.CmdUntranslate) != 1 {
		t.Errorf("scopes not released after panic: %+v", cmds)
	}
}

type panicOnRect struct {
	*recording.Recorder
}

func (panicOnRect) Rect(_, _, _, _ float64) { panic("boom") }

func TestPrintWidgetNestedWindowAndLabel(t *testing.T) {
	sub := &mockNode{name: "sub", kind: KindWindow, bounds: Rect{10, 20, 40, 30}}
	label := &mockNode{name: "label", kind: KindWidget, bounds: Rect{5, 5, 30, 10}}
	container := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 200, 100}, children: []Node{sub, label}}

	rec := openPage(t)
	if err := NewPrinter(rec).PrintWidget(container, 0, 0); err != nil {
		t.Fatal(err)
	}
	if label.draws != 1 || sub.draws != 1 {
		t.Errorf("draws: label=%d sub=%d, want 1 each", label.draws, sub.draws)
	}
	cmds := finish(t, rec)
	if got := count(cmds, recording.CmdTranslate); got != 1 {
		t.Fatalf("translate count = %d, want 1", got)
	}
	if got := count(cmds, recording.CmdUntranslate); got != 1 {
		t.Errorf("untranslate count = %d, want 1", got)
	}
	for _, c := range cmds {
		if tr, ok := c.(recording.TranslateCommand); ok && (tr.DX != 10 || tr.DY != 20) {
			t.Errorf("translate = %+v, want 10, 20", tr)
		}
	}
	// The label is drawn before the subwindow's translate, at its own
	// coordinates.
	labelRect := recording.RectCommand{X: 5, Y: 5, W: 30, H: 10}
	for _, c := range cmds {
		if c.Type() == recording.CmdTranslate {
			t.Error("label not drawn before the subwindow")
			break
		}
		if c == recording.Command(labelRect) {
			break
		}
	}
}

func TestPrintWidgetNonWindowOffset(t *testing.T) {
	button := &mockNode{kind: KindWidget, bounds: Rect{50, 60, 20, 10}}
	rec := openPage(t)
	if err := NewPrinter(rec).PrintWidget(button, 0, 0); err != nil {
		t.Fatal(err)
	}
	cmds := finish(t, rec)
	want := []recording.Command{
		recording.TranslateCommand{DX: -50, DY: -60},
		recording.RectCommand{X: 50, Y: 60, W: 20, H: 10},
		recording.UntranslateCommand{},
	}
	if len(cmds) != len(want) {
		t.Fatalf("commands = %+v", cmds)
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, cmds[i], want[i])
		}
	}
	if count(cmds, recording.CmdPushClip) != 0 {
		t.Error("non-window widget was clipped")
	}
}

func TestPrintWidgetSkipsDeepInvisibleWindows(t *testing.T) {
	hiddenWin := &mockNode{kind: KindWindow, bounds: Rect{1, 1, 5, 5}, hidden: true}
	deepWin := &mockNode{kind: KindWindow, bounds: Rect{2, 2, 5, 5}}
	group := &mockNode{kind: KindGroup, bounds: Rect{0, 0, 50, 50}, children: []Node{deepWin}}
	root := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 100, 100}, children: []Node{hiddenWin, group}}

	rec := openPage(t)
	if err := NewPrinter(rec).PrintWidget(root, 0, 0); err != nil {
		t.Fatal(err)
	}
	_ = finish(t, rec)
	if hiddenWin.draws != 0 {
		t.Error("hidden window drawn")
	}
	if deepWin.draws != 1 {
		t.Errorf("window inside group drawn %d times, want 1", deepWin.draws)
	}
}

func TestPrintWindowPartChunks(t *testing.T) {
	win := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 1200, 100}}
	other := &mockNode{kind: KindWindow}
	disp := &mockDisplay{front: other}

	rec := openPage(t)
	p := NewPrinter(rec, WithDisplay(disp), WithChunkWidth(500))
	if err := p.PrintWindowPart(win, 0, 10, 1200, 80, 7, 9); err != nil {
		t.Fatal(err)
	}

	wantReads := []readCall{{0, 10, 500, 80}, {500, 10, 500, 80}, {1000, 10, 200, 80}}
	if len(disp.reads) != len(wantReads) {
		t.Fatalf("reads = %+v", disp.reads)
	}
	for i, r := range wantReads {
		if disp.reads[i] != r {
			t.Errorf("read %d = %+v, want %+v", i, disp.reads[i], r)
		}
	}
	if len(disp.shown) != 2 || disp.shown[0] != Node(win) || disp.shown[1] != Node(other) {
		t.Errorf("Show calls = %v, want window then previous front", disp.shown)
	}
	for _, b := range disp.bufs {
		if !b.Released() {
			t.Error("captured buffer not released")
		}
	}

	cmds := finish(t, rec)
	var images []recording.DrawImageCommand
	for _, c := range cmds {
		if img, ok := c.(recording.DrawImageCommand); ok {
			images = append(images, img)
		}
	}
	wantX := []float64{7, 507, 1007}
	wantW := []float64{500, 500, 200}
	if len(images) != 3 {
		t.Fatalf("images = %d, want 3", len(images))
	}
	for i, img := range images {
		if img.X != wantX[i] || img.Y != 9 || img.W != wantW[i] || img.H != 80 {
			t.Errorf("image %d = %+v", i, img)
		}
	}
}

func TestPrintWindowPartSkipsFailedChunks(t *testing.T) {
	win := &mockNode{kind: KindWindow}
	disp := &mockDisplay{fail: map[int]bool{1: true}, empty: map[int]bool{2: true}}
	rec := openPage(t)
	p := NewPrinter(rec, WithDisplay(disp), WithChunkWidth(100))
	if err := p.PrintWindowPart(win, 0, 0, 400, 10, 0, 0); err != nil {
		t.Fatal(err)
	}
	if len(disp.reads) != 4 {
		t.Errorf("reads = %d, want 4", len(disp.reads))
	}
	if got := count(finish(t, rec), recording.CmdDrawImage); got != 2 {
		t.Errorf("images = %d, want 2", got)
	}
}

func TestPrintWindowPartUnchunked(t *testing.T) {
	win := &mockNode{kind: KindWindow}
	disp := &mockDisplay{}
	rec := openPage(t)
	p := NewPrinter(rec, WithDisplay(disp), WithChunkWidth(0))
	if err := p.PrintWindowPart(win, 0, 0, 1200, 10, 0, 0); err != nil {
		t.Fatal(err)
	}
	if len(disp.reads) != 1 || disp.reads[0].w != 1200 {
		t.Errorf("reads = %+v, want one of width 1200", disp.reads)
	}
	if len(disp.shown) != 1 {
		t.Errorf("Show calls = %d, want 1 (no previous front window)", len(disp.shown))
	}
	_ = finish(t, rec)
}

func TestPrintWindowPartNoDisplay(t *testing.T) {
	rec := openPage(t)
	if err := NewPrinter(rec).PrintWindowPart(&mockNode{}, 0, 0, 1, 1, 0, 0); !errors.Is(err, ErrNoDisplay) {
		t.Errorf("PrintWindowPart = %v, want ErrNoDisplay", err)
	}
	_ = finish(t, rec)
}

func TestAcceleratedSurface(t *testing.T) {
	surface := &mockNode{kind: KindAcceleratedSurface, bounds: Rect{10, 10, 600, 40}}

	t.Run("fallback to Draw", func(t *testing.T) {
		rec := openPage(t)
		if err := NewPrinter(rec).PrintWidget(surface, 0, 0); err != nil {
			t.Fatal(err)
		}
		_ = finish(t, rec)
		if surface.draws != 1 {
			t.Errorf("draws = %d, want 1", surface.draws)
		}
	})

	t.Run("plugin", func(t *testing.T) {
		surface.draws = 0
		disp := &mockDisplay{}
		RegisterSurfacePrinter(SurfacePlugin, ReadbackSurfacePrinter{Display: disp, ChunkWidth: 500})
		t.Cleanup(func() { UnregisterSurfacePrinter(SurfacePlugin) })

		rec := openPage(t)
		if err := NewPrinter(rec).PrintWidget(surface, 0, 0); err != nil {
			t.Fatal(err)
		}
		cmds := finish(t, rec)
		if surface.draws != 0 {
			t.Error("Draw called although a plugin is registered")
		}
		if got := count(cmds, recording.CmdDrawImage); got != 2 {
			t.Errorf("images = %d, want 2", got)
		}
		if len(disp.reads) != 2 || disp.reads[1] != (readCall{500, 0, 100, 40}) {
			t.Errorf("reads = %+v", disp.reads)
		}
	})

	t.Run("plugin error falls back to Draw", func(t *testing.T) {
		surface.draws = 0
		errGL := errors.New("no gl context")
		RegisterSurfacePrinter(SurfacePlugin, SurfacePrinterFunc(func(page.Canvas, Node) error { return errGL }))
		t.Cleanup(func() { UnregisterSurfacePrinter(SurfacePlugin) })
		orig := ggprint.Logger()
		t.Cleanup(func() { ggprint.SetLogger(orig) })
		var logs bytes.Buffer
		ggprint.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

		rec := openPage(t)
		if err := NewPrinter(rec).PrintWidget(surface, 0, 0); err != nil {
			t.Errorf("PrintWidget = %v, want nil after fallback", err)
		}
		if want := `level=WARN msg="capture: surface printer failed, drawing widget instead" err="no gl context"`; !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q\n%s", want, logs.String())
		}
		cmds := finish(t, rec)
		if surface.draws != 1 {
			t.Errorf("draws = %d, want 1", surface.draws)
		}
		if got := count(cmds, recording.CmdRect); got != 1 {
			t.Errorf("rects = %d, want 1", got)
		}
		if count(cmds, recording.CmdPushClip) != count(cmds, recording.CmdPopClip) {
			t.Error("clip unbalanced after plugin error")
		}
	})

	t.Run("nothing read back falls back to Draw", func(t *testing.T) {
		surface.draws = 0
		disp := &mockDisplay{fail: map[int]bool{0: true, 1: true}}
		RegisterSurfacePrinter(SurfacePlugin, ReadbackSurfacePrinter{Display: disp})
		t.Cleanup(func() { UnregisterSurfacePrinter(SurfacePlugin) })

		rec := openPage(t)
		if err := NewPrinter(rec).PrintWidget(surface, 0, 0); err != nil {
			t.Fatal(err)
		}
		cmds := finish(t, rec)
		if surface.draws != 1 {
			t.Errorf("draws = %d, want 1", surface.draws)
		}
		if got := count(cmds, recording.CmdDrawImage); got != 0 {
			t.Errorf("images = %d, want 0", got)
		}
	})
}

func TestReadbackSurfacePrinter(t *testing.T) {
	surface := &mockNode{kind: KindAcceleratedSurface, bounds: Rect{0, 0, 1200, 10}}
	tests := []struct {
		name  string
		chunk int
		reads int
	}{
		{"zero uses the default", 0, 3},
		{"explicit", 400, 3},
		{"negative reads in one piece", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disp := &mockDisplay{}
			rec := openPage(t)
			sp := ReadbackSurfacePrinter{Display: disp, ChunkWidth: tt.chunk}
			if err := sp.PrintSurface(rec, surface); err != nil {
				t.Fatal(err)
			}
			_ = finish(t, rec)
			if len(disp.reads) != tt.reads {
				t.Errorf("reads = %d, want %d", len(disp.reads), tt.reads)
			}
		})
	}

	t.Run("all reads failed", func(t *testing.T) {
		disp := &mockDisplay{fail: map[int]bool{0: true, 1: true, 2: true}}
		rec := openPage(t)
		err := ReadbackSurfacePrinter{Display: disp}.PrintSurface(rec, surface)
		if !errors.Is(err, ErrNothingCaptured) {
			t.Errorf("PrintSurface = %v, want ErrNothingCaptured", err)
		}
		_ = finish(t, rec)
	})
}

func TestSurfacePrinterRegistry(t *testing.T) {
	RegisterSurfacePrinter("test.a", SurfacePrinterFunc(func(page.Canvas, Node) error { return nil }))
	t.Cleanup(func() { UnregisterSurfacePrinter("test.a") })
	if _, ok := LookupSurfacePrinter("test.a"); !ok {
		t.Error("registered printer not found")
	}
	found := false
	for _, name := range SurfacePrinters() {
		if name == "test.a" {
			found = true
		}
	}
	if !found {
		t.Errorf("SurfacePrinters() = %v", SurfacePrinters())
	}
	defer func() {
		if recover() == nil {
			t.Error("registering nil should panic")
		}
	}()
	RegisterSurfacePrinter("test.nil", nil)
}

func TestDrawChildrenSkipsClipped(t *testing.T) {
	inside := &mockNode{kind: KindWidget, bounds: Rect{0, 0, 10, 10}}
	outside := &mockNode{kind: KindWidget, bounds: Rect{500, 500, 10, 10}}
	hidden := &mockNode{kind: KindWidget, bounds: Rect{0, 0, 10, 10}, hidden: true}
	win := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 10, 10}}
	parent := &mockNode{kind: KindGroup, children: []Node{inside, outside, hidden, win}}

	rec := openPage(t)
	rec.PushClip(0, 0, 100, 100)
	if err := DrawChildren(rec, parent); err != nil {
		t.Fatal(err)
	}
	rec.PopClip()
	_ = finish(t, rec)
	if inside.draws != 1 || outside.draws != 0 || hidden.draws != 0 || win.draws != 0 {
		t.Errorf("draws inside=%d outside=%d hidden=%d window=%d", inside.draws, outside.draws, hidden.draws, win.draws)
	}
}

func TestFitToPage(t *testing.T) {
	wide := &mockNode{kind: KindWindow, bounds: Rect{0, 0, 1118, 100}}
	rec := openPage(t)
	p := NewPrinter(rec)
	if err := p.FitToPage(wide); err != nil {
		t.Fatal(err)
	}
	if x, y := rec.Origin(); x != 0 || y != 756 {
		t.Errorf("Origin = %d, %d, want 0, 756", x, y)
	}
	cmds := finish(t, rec)
	if len(cmds) != 2 || cmds[0] != (recording.ScaleCommand{SX: 0.5, SY: 0.5}) {
		t.Errorf("commands = %+v", cmds)
	}
}
