package page

import "testing"

func TestLineStylePattern(t *testing.T) {
	tests := []struct {
		name string
		ls   LineStyle
		want []float64
	}{
		{"solid", LineStyle{}, nil},
		{"dash thin", LineStyle{Dash: Dash}, []float64{3, 1}},
		{"dash wide", LineStyle{Dash: Dash, Width: 2}, []float64{6, 2}},
		{"dot", LineStyle{Dash: Dot, Width: 3}, []float64{3, 3}},
		{"dashdot", LineStyle{Dash: DashDot}, []float64{3, 1, 1, 1}},
		{"dashdotdot", LineStyle{Dash: DashDotDot}, []float64{3, 1, 1, 1, 1, 1}},
		{"explicit", LineStyle{Dash: Dot, Dashes: []float64{5, 2}}, []float64{5, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ls.Pattern()
			if len(got) != len(tt.want) {
				t.Fatalf("Pattern() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Pattern() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestLineStyleEqual(t *testing.T) {
	a := LineStyle{Dash: Dash, Width: 2, Dashes: []float64{1, 2}}
	b := LineStyle{Dash: Dash, Width: 2, Dashes: []float64{1, 2}}
	if !a.Equal(b) {
		t.Error("identical styles not equal")
	}
	b.Dashes = []float64{1, 3}
	if a.Equal(b) {
		t.Error("different dashes reported equal")
	}
	if a.Equal(LineStyle{Dash: Dash, Width: 3, Dashes: []float64{1, 2}}) {
		t.Error("different widths reported equal")
	}
}
