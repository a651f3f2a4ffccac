package section

import (
	"encoding/json"
	"fmt"
	"os"
)

// Shapes of a cross section
const (
	ShapePolygon = "polygon"
	ShapeTube    = "tube"
)

// Section represents a beam cross section in the plane of the global Y and
// Z axes. Bending of the tower deflects it along Z and rotates it about Y.
//
// A polygon section is defined by its outer vertices and optional holes,
// a tube section by outer diameter and wall thickness.
type Section struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Shape       string `json:"shape" yaml:"shape"`

	// Polygon geometry, vertices in order (either direction)
	Vertices []Point   `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Holes    [][]Point `json:"holes,omitempty" yaml:"holes,omitempty"`

	// Tube geometry
	OuterDiameter float64 `json:"outer_diameter,omitempty" yaml:"outer_diameter,omitempty"`
	WallThickness float64 `json:"wall_thickness,omitempty" yaml:"wall_thickness,omitempty"`
}

// Point represents a 2D coordinate in the section plane
type Point struct {
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 // extent along Y
	Height float64 // extent along Z
	Area   float64

	// Centroid location
	CentroidY float64
	CentroidZ float64

	// Second moments of area about the centroid
	AreaMOI  float64 // about Y, integral of z^2 dA, used for bending
	AreaMOIZ float64 // about Z, integral of y^2 dA
}

// MassPerLength returns density * area
func (p Properties) MassPerLength(density float64) float64 {
	return density * p.Area
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	switch s.Shape {
	case ShapeTube:
		if s.OuterDiameter <= 0 {
			return &ValidationError{"outer diameter must be positive"}
		}
		if s.WallThickness <= 0 {
			return &ValidationError{"wall thickness must be positive"}
		}
		if 2*s.WallThickness > s.OuterDiameter {
			return &ValidationError{msg: fmt.Sprintf("wall thickness %g exceeds radius %g", s.WallThickness, s.OuterDiameter/2)}
		}
	case ShapePolygon, "":
		if len(s.Vertices) < 3 {
			return &ValidationError{"section must have at least 3 vertices"}
		}
		for i, h := range s.Holes {
			if len(h) < 3 {
				return &ValidationError{msg: fmt.Sprintf("hole %d must have at least 3 vertices", i+1)}
			}
		}
	default:
		return &ValidationError{msg: fmt.Sprintf("unknown shape %q, supported are %s and %s", s.Shape, ShapePolygon, ShapeTube)}
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

// LoadFromFile loads a section definition from a JSON file
func LoadFromFile(filepath string) (*Section, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var section Section
	if err := json.Unmarshal(data, &section); err != nil {
		return nil, err
	}

	if err := section.Validate(); err != nil {
		return nil, err
	}

	return &section, nil
}

// NewTube creates a circular hollow section
func NewTube(outerDiameter, wallThickness float64) *Section {
	return &Section{
		Name:          fmt.Sprintf("tube %gx%g", outerDiameter, wallThickness),
		Shape:         ShapeTube,
		OuterDiameter: outerDiameter,
		WallThickness: wallThickness,
	}
}
