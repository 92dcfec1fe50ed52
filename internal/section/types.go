package section

import "fmt"

// Section represents a prismatic cross-section defined by vertices
// The section is defined in a local coordinate system where:
// - Y-axis points upward
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name string `yaml:"name,omitempty"`

	// Elastic modulus of the material (MPa)
	E float64 `yaml:"e"`

	// Section geometry defined by vertices (in mm)
	// The section is assumed to be a simple polygon (no holes)
	Vertices []Point `yaml:"vertices,omitempty"`

	// Rectangle shorthand, used when no vertices are given (mm)
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `yaml:"x"` // mm
	Y float64 `yaml:"y"` // mm
}

// SectionProperties holds calculated geometric properties
type SectionProperties struct {
	// Overall dimensions
	Width  float64 // Maximum width (mm)
	Height float64 // Total height (mm)
	Area   float64 // Gross area (mm²)

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64

	// Second moment of area about the horizontal centroidal axis (mm⁴)
	Ix float64
}

// Rectangle returns a solid rectangular section of the given size
func Rectangle(width, height, e float64) *Section {
	return &Section{
		E: e,
		Vertices: []Point{
			{X: 0, Y: 0},
			{X: width, Y: 0},
			{X: width, Y: height},
			{X: 0, Y: height},
		},
	}
}

// outline returns the vertices, expanding the rectangle shorthand
func (s *Section) outline() []Point {
	if len(s.Vertices) == 0 && s.Width > 0 && s.Height > 0 {
		return Rectangle(s.Width, s.Height, s.E).Vertices
	}
	return s.Vertices
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.outline()) < 3 {
		return &ValidationError{"section must have at least 3 vertices or a width and height"}
	}
	if s.E <= 0 {
		return &ValidationError{msg: fmt.Sprintf("elastic modulus must be positive, got %g", s.E)}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
