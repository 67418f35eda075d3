package render

import (
	"image/color"
	"testing"
)

func TestFade(t *testing.T) {
	base := color.NRGBA{R: 10, G: 20, B: 30, A: 200}
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{1, 200},
		{0.5, 100},
		{0, 0},
	}
	for _, tt := range tests {
		got := fade(base, tt.alpha)
		if got.A != tt.want || got.R != base.R || got.G != base.G || got.B != base.B {
			t.Fatalf("fade(%v) = %v", tt.alpha, got)
		}
	}
}
