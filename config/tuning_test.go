package config

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/milk9111/slicer/controller"
)

func TestEmbeddedTuningMatchesDefault(t *testing.T) {
	data, err := FS.ReadFile(TuningFile)
	if err != nil {
		t.Fatalf("read embedded: %v", err)
	}
	got, err := ParseTuning(data)
	if err != nil {
		t.Fatalf("parse embedded: %v", err)
	}
	if got != Default() {
		t.Fatalf("embedded tuning drifted from Default:\n got %+v\nwant %+v", got, Default())
	}
}

func TestParseTuningPartial(t *testing.T) {
	got, err := ParseTuning([]byte("mode: freehand\nfreehand_commit: never\nsplit_force: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got.SplitForce != 5 {
		t.Fatalf("split_force = %f", got.SplitForce)
	}
	if got.Gravity != Default().Gravity {
		t.Fatalf("unset keys should keep defaults, gravity = %f", got.Gravity)
	}
	cfg := got.Controller()
	if cfg.Mode != controller.ModeFreehand || cfg.Commit != controller.CommitNever {
		t.Fatalf("unexpected controller config %+v", cfg)
	}
	if cfg.Kinematics.SplitForce != 5 || cfg.StrokeAge != 500*time.Millisecond {
		t.Fatalf("unexpected kinematics %+v / %v", cfg.Kinematics, cfg.StrokeAge)
	}
}

func TestParseTuningRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown mode", "mode: sideways\n"},
		{"unknown commit", "freehand_commit: later\n"},
		{"zero density", "density: 0\n"},
		{"negative split", "split_force: -1\n"},
		{"zero stroke age", "stroke_age_ms: 0\n"},
		{"elasticity above one", "elasticity: 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTuning([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("expected ErrInvalidTuning, got %v", err)
			}
			if got != Default() {
				t.Fatalf("failed parse should return defaults")
			}
		})
	}
}

func TestParseTuningSyntaxError(t *testing.T) {
	if _, err := ParseTuning([]byte("split_force: [1, 2")); err == nil {
		t.Fatalf("expected an error for malformed yaml")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}, true},
		{"00ff0080", color.NRGBA{G: 255, A: 0x80}, true},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"#12345", color.NRGBA{}, false},
		{"notacolor", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseColor(%q) err = %v", tt.in, err)
			}
			if tt.ok && got != tt.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTuningMarshalRoundTrip(t *testing.T) {
	in := Default()
	in.Mode = "freehand"
	in.Colors.Stroke = YAMLColor{color.NRGBA{R: 1, G: 2, B: 3, A: 4}}
	data, err := in.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	out, err := ParseTuning(data)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"config/tuning.yaml", TuningChanged, true},
		{"scene/scripts/slice.TENGO", SceneChanged, true},
		{"config/notes.txt", 0, false},
	}
	for _, tt := range tests {
		kind, ok := classify(tt.path)
		if ok != tt.ok || kind != tt.kind {
			t.Fatalf("classify(%q) = %v, %v", tt.path, kind, ok)
		}
	}
}
