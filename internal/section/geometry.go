package section

import (
	"fmt"
	"math"
)

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() *SectionProperties {
	props := &SectionProperties{}

	vertices := s.outline()
	if len(vertices) < 3 {
		return props
	}

	// Find bounding box
	props.MinX, props.MaxX = vertices[0].X, vertices[0].X
	props.MinY, props.MaxY = vertices[0].Y, vertices[0].Y

	for _, v := range vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}

	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	// Calculate area, centroid and inertia using the shoelace formula
	var ixOrigin float64
	props.Area, props.CentroidX, props.CentroidY, ixOrigin = shoelace(vertices)

	// Parallel axis theorem
	props.Ix = ixOrigin - props.Area*props.CentroidY*props.CentroidY

	return props
}

// shoelace returns the area, centroid and second moment of area about the
// x axis through the origin for a simple polygon of either orientation.
func shoelace(vertices []Point) (area, cx, cy, ix float64) {
	n := len(vertices)

	var signedArea float64
	var sumX, sumY, sumIx float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := vertices[i], vertices[j]
		cross := a.X*b.Y - b.X*a.Y
		signedArea += cross
		sumX += (a.X + b.X) * cross
		sumY += (a.Y + b.Y) * cross
		sumIx += (a.Y*a.Y + a.Y*b.Y + b.Y*b.Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
		ix = math.Abs(sumIx / 12)
	}

	return area, cx, cy, ix
}

// Rigidity returns the flexural rigidity EI in kN·m²
func (s *Section) Rigidity() (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	props := s.CalculateProperties()
	if props.Ix <= 0 {
		return 0, &ValidationError{msg: fmt.Sprintf("section %q has no bending stiffness", s.Name)}
	}
	// N/mm² · mm⁴ = N·mm² = 1e-9 kN·m²
	return s.E * props.Ix * 1e-9, nil
}
