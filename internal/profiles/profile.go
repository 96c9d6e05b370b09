package profiles

import (
	"errors"
	"fmt"

	"shape-detector/internal/geometry"
)

// BoundingMode selects how the enclosing box of a shape is drawn and measured.
type BoundingMode string

const (
	BoundingAxis    BoundingMode = "axis"
	BoundingRotated BoundingMode = "rotated"
)

// MinZoom is the smallest zoom factor; panes are filled by cropping, so
// shrinking the frame is not supported.
const MinZoom = 1.0

var ErrInvalidProfile = errors.New("invalid profile")

// Profile is a named set of tuning constants for the detection pipeline.
type Profile struct {
	Name string `yaml:"name"`

	Zoom      float64 `yaml:"zoom"`
	Shadow    float64 `yaml:"shadow"`
	Contrast  float64 `yaml:"contrast"`
	Sharpness float64 `yaml:"sharpness"`

	LengthScale float64      `yaml:"length_scale"`
	WidthScale  float64      `yaml:"width_scale"`
	MinArea     float64      `yaml:"min_area"`
	Bounding    BoundingMode `yaml:"bounding"`
	Bilateral   bool         `yaml:"bilateral"`

	GridRows        int     `yaml:"grid_rows"`
	GridCols        int     `yaml:"grid_cols"`
	GridWidthScale  float64 `yaml:"grid_width_scale"`
	GridHeightScale float64 `yaml:"grid_height_scale"`
}

// Default returns the constants the detector was originally tuned with.
func Default() Profile {
	return Profile{
		Name:            "default",
		Zoom:            1.3,
		Shadow:          0,
		Contrast:        1.0,
		Sharpness:       0,
		LengthScale:     0.03695,
		WidthScale:      0.03695,
		MinArea:         1000,
		Bounding:        BoundingAxis,
		GridRows:        4,
		GridCols:        4,
		GridWidthScale:  1.1,
		GridHeightScale: 1.0,
	}
}

// Builtin returns the profiles shipped with the binary.
func Builtin() []Profile {
	lowLight := Default()
	lowLight.Name = "low-light"
	lowLight.Shadow = 40
	lowLight.Contrast = 1.4
	lowLight.Sharpness = 0.5
	lowLight.Bilateral = true

	rotated := Default()
	rotated.Name = "rotated"
	rotated.Zoom = 1.0
	rotated.Bounding = BoundingRotated
	rotated.LengthScale = 0.0481
	rotated.WidthScale = 0.0481

	return []Profile{Default(), lowLight, rotated}
}

func (p Profile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	case p.Zoom < MinZoom:
		return fmt.Errorf("%w: %s: zoom must be at least %v, got %v", ErrInvalidProfile, p.Name, MinZoom, p.Zoom)
	case p.Contrast <= 0:
		return fmt.Errorf("%w: %s: contrast must be positive, got %v", ErrInvalidProfile, p.Name, p.Contrast)
	case p.Sharpness < 0:
		return fmt.Errorf("%w: %s: sharpness must not be negative, got %v", ErrInvalidProfile, p.Name, p.Sharpness)
	case p.LengthScale <= 0 || p.WidthScale <= 0:
		return fmt.Errorf("%w: %s: scale factors must be positive", ErrInvalidProfile, p.Name)
	case p.MinArea < 0:
		return fmt.Errorf("%w: %s: min_area must not be negative, got %v", ErrInvalidProfile, p.Name, p.MinArea)
	case p.GridRows < 1 || p.GridCols < 1:
		return fmt.Errorf("%w: %s: grid needs at least one row and column", ErrInvalidProfile, p.Name)
	case p.GridWidthScale <= 0 || p.GridHeightScale <= 0:
		return fmt.Errorf("%w: %s: grid scales must be positive", ErrInvalidProfile, p.Name)
	}

	switch p.Bounding {
	case BoundingAxis, BoundingRotated:
	default:
		return fmt.Errorf("%w: %s: unknown bounding mode %q", ErrInvalidProfile, p.Name, p.Bounding)
	}

	return nil
}

func (p Profile) Scale() geometry.Scale {
	return geometry.Scale{Length: p.LengthScale, Width: p.WidthScale}
}

func (p Profile) Grid() geometry.Grid {
	return geometry.Grid{
		Rows:        p.GridRows,
		Cols:        p.GridCols,
		WidthScale:  p.GridWidthScale,
		HeightScale: p.GridHeightScale,
	}
}
