// Package config loads the slicer tuning file and watches it for edits.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slicer/controller"
	"github.com/milk9111/slicer/fragment"
	"github.com/milk9111/slicer/slice"
	"gopkg.in/yaml.v3"
)

// TuningFile is the name of the tuning file, embedded and on disk.
const TuningFile = "tuning.yaml"

var ErrInvalidTuning = errors.New("config: invalid tuning")

type Colors struct {
	Background YAMLColor `yaml:"background"`
	Stroke     YAMLColor `yaml:"stroke"`
	Preview    YAMLColor `yaml:"preview"`
	Outline    YAMLColor `yaml:"outline"`
}

// Tuning is every knob of the slicer that can change without a rebuild.
type Tuning struct {
	Mode              string  `yaml:"mode"`
	FreehandCommit    string  `yaml:"freehand_commit"`
	SimplifyTolerance float64 `yaml:"simplify_tolerance"`
	StrokeAgeMS       int     `yaml:"stroke_age_ms"`

	SplitForce              float64 `yaml:"split_force"`
	SliceForceFactor        float64 `yaml:"slice_force_factor"`
	MaxSliceVectorMagnitude float64 `yaml:"max_slice_vector_magnitude"`
	UpwardBias              bool    `yaml:"upward_bias"`

	Epsilon float64 `yaml:"epsilon"`

	Gravity      float64 `yaml:"gravity"`
	Density      float64 `yaml:"density"`
	Friction     float64 `yaml:"friction"`
	Elasticity   float64 `yaml:"elasticity"`
	DragMaxForce float64 `yaml:"drag_max_force"`

	Colors Colors `yaml:"colors"`
}

// Default mirrors the embedded tuning.yaml.
func Default() Tuning {
	k := fragment.DefaultParams()
	return Tuning{
		Mode:                    controller.ModeSingle.String(),
		FreehandCommit:          controller.CommitOnRelease.String(),
		SimplifyTolerance:       2,
		StrokeAgeMS:             int(controller.DefaultStrokeAge / time.Millisecond),
		SplitForce:              k.SplitForce,
		SliceForceFactor:        k.SliceForceFactor,
		MaxSliceVectorMagnitude: k.MaxSliceVectorMagnitude,
		UpwardBias:              k.UpwardBias,
		Epsilon:                 slice.DefaultOptions().Epsilon,
		Gravity:                 0.3,
		Density:                 0.001,
		Friction:                0.6,
		Elasticity:              0.2,
		DragMaxForce:            200,
		Colors: Colors{
			Background: YAMLColor{color.NRGBA{R: 0x1b, G: 0x1d, B: 0x23, A: 0xff}},
			Stroke:     YAMLColor{color.NRGBA{R: 0xdf, G: 0x2f, B: 0x2f, A: 0xff}},
			Preview:    YAMLColor{color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xc0}},
			Outline:    YAMLColor{color.NRGBA{A: 0xa0}},
		},
	}
}

// ParseTuning decodes data over the defaults, so a file may set only the
// keys it cares about.
func ParseTuning(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", TuningFile, err)
	}
	if err := t.Validate(); err != nil {
		return Default(), err
	}
	return t, nil
}

// LoadTuning reads name through Load and parses it.
func LoadTuning(name string) (Tuning, error) {
	data, err := Load(name)
	if err != nil {
		return Default(), fmt.Errorf("config: load %s: %w", name, err)
	}
	return ParseTuning(data)
}

// Validate reports the first out-of-range value.
func (t Tuning) Validate() error {
	if _, err := controller.ParseMode(t.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	if _, err := controller.ParseCommitPolicy(t.FreehandCommit); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	checks := []struct {
		name string
		ok   bool
	}{
		{"simplify_tolerance must be >= 0", t.SimplifyTolerance >= 0},
		{"stroke_age_ms must be > 0", t.StrokeAgeMS > 0},
		{"split_force must be >= 0", t.SplitForce >= 0},
		{"slice_force_factor must be >= 0", t.SliceForceFactor >= 0},
		{"max_slice_vector_magnitude must be > 0", t.MaxSliceVectorMagnitude > 0},
		{"epsilon must be > 0", t.Epsilon > 0},
		{"density must be > 0", t.Density > 0},
		{"friction must be >= 0", t.Friction >= 0},
		{"elasticity must be in [0, 1]", t.Elasticity >= 0 && t.Elasticity <= 1},
		{"drag_max_force must be > 0", t.DragMaxForce > 0},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidTuning, c.name)
		}
	}
	return nil
}

// StrokeAge returns the history age as a duration.
func (t Tuning) StrokeAge() time.Duration {
	return time.Duration(t.StrokeAgeMS) * time.Millisecond
}

// Controller builds the controller config. t must have passed Validate.
func (t Tuning) Controller() controller.Config {
	mode, _ := controller.ParseMode(t.Mode)
	commit, _ := controller.ParseCommitPolicy(t.FreehandCommit)
	return controller.Config{
		Mode:   mode,
		Commit: commit,
		Kinematics: fragment.Params{
			SplitForce:              t.SplitForce,
			SliceForceFactor:        t.SliceForceFactor,
			MaxSliceVectorMagnitude: t.MaxSliceVectorMagnitude,
			UpwardBias:              t.UpwardBias,
			Up:                      cp.Vector{X: 0, Y: -1},
		},
		Partition:         slice.Options{Epsilon: t.Epsilon},
		SimplifyTolerance: t.SimplifyTolerance,
		StrokeAge:         t.StrokeAge(),
	}
}

// Marshal encodes t as YAML.
func (t Tuning) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("config: marshal %s: %w", TuningFile, err)
	}
	return data, nil
}
