package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/rook-computer/cursortrail/internal/shape"
)

// DefaultPath is the settings file used when no path is configured.
const DefaultPath = "settings.json"

// Settings is the per-frame trail configuration. The JSON keys are the
// on-disk contract of the settings file.
type Settings struct {
	NumDots     int     `json:"num_dots"`
	FollowSpeed float64 `json:"follow_speed"`
	LagSpeed    float64 `json:"lag_speed"`
	MaxSize     float64 `json:"max_size"`
	Color       [3]int  `json:"color"`
	Shape       string  `json:"shape"`
	ImagePath   string  `json:"image_path"`
}

func Defaults() Settings {
	return Settings{
		NumDots:     10,
		FollowSpeed: 0.25,
		LagSpeed:    0.20,
		MaxSize:     20,
		Color:       [3]int{0, 255, 255},
		Shape:       shape.Circle.String(),
		ImagePath:   "",
	}
}

// Normalize returns a copy that is safe to render: dot count and size are at
// least 1, color channels are within 0..255 and the shape name is canonical.
// Speeds are left as they are; values outside [0, 1] overshoot on purpose.
func (s Settings) Normalize() Settings {
	s.NumDots = max(s.NumDots, 1)
	s.MaxSize = max(s.MaxSize, 1)
	for i, c := range s.Color {
		s.Color[i] = min(max(c, 0), 255)
	}
	s.Shape = s.ShapeKind().String()
	return s
}

// ShapeKind resolves the shape name, falling back to Circle.
func (s Settings) ShapeKind() shape.Shape {
	kind, _ := shape.Parse(s.Shape)
	return kind
}

// Fill returns the trail color with the given alpha.
func (s Settings) Fill(alpha uint8) color.NRGBA {
	return color.NRGBA{
		R: channel(s.Color[0]),
		G: channel(s.Color[1]),
		B: channel(s.Color[2]),
		A: alpha,
	}
}

func channel(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

// Decode parses a settings document. Keys missing from the document keep
// their default values; unknown keys are rejected.
func Decode(data []byte) (Settings, error) {
	s := Defaults()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Defaults(), err
	}
	return s, nil
}

// Load reads the settings file. When the file is missing or cannot be
// parsed, the defaults are written back to path and returned together with
// the error that caused the fallback.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		var s Settings
		if s, err = Decode(data); err == nil {
			return s, nil
		}
		err = fmt.Errorf("parse %s: %w", path, err)
	}

	defaults := Defaults()
	if saveErr := Save(path, defaults); saveErr != nil {
		return defaults, errors.Join(err, saveErr)
	}
	return defaults, err
}

// Save writes s as indented JSON.
func Save(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
