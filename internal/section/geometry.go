package section

import (
	"math"
)

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() (*Properties, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Shape == ShapeTube {
		return s.tubeProperties(), nil
	}

	props := &Properties{}

	// Find bounding box
	minY, maxY := s.Vertices[0].Y, s.Vertices[0].Y
	minZ, maxZ := s.Vertices[0].Z, s.Vertices[0].Z
	for _, v := range s.Vertices {
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
		minZ = math.Min(minZ, v.Z)
		maxZ = math.Max(maxZ, v.Z)
	}
	props.Width = maxY - minY
	props.Height = maxZ - minZ

	outer := ringMoments(s.Vertices)
	total := outer
	for _, h := range s.Holes {
		total = total.minus(ringMoments(h))
	}
	if total.area <= 0 {
		return nil, &ValidationError{"section has no material area"}
	}

	props.Area = total.area
	props.CentroidY = total.sy / total.area
	props.CentroidZ = total.sz / total.area

	// parallel axis theorem back to the centroid
	props.AreaMOI = total.izz - total.area*props.CentroidZ*props.CentroidZ
	props.AreaMOIZ = total.iyy - total.area*props.CentroidY*props.CentroidY

	return props, nil
}

func (s *Section) tubeProperties() *Properties {
	d := s.OuterDiameter
	di := d - 2*s.WallThickness
	i := math.Pi / 64 * (math.Pow(d, 4) - math.Pow(di, 4))
	return &Properties{
		Width:    d,
		Height:   d,
		Area:     math.Pi / 4 * (d*d - di*di),
		AreaMOI:  i,
		AreaMOIZ: i,
	}
}

// moments are area integrals of a closed ring about the origin
type moments struct {
	area   float64 // integral of dA
	sy, sz float64 // integral of y dA, z dA
	iyy    float64 // integral of y^2 dA
	izz    float64 // integral of z^2 dA
}

func (m moments) minus(o moments) moments {
	return moments{
		area: m.area - o.area,
		sy:   m.sy - o.sy,
		sz:   m.sz - o.sz,
		iyy:  m.iyy - o.iyy,
		izz:  m.izz - o.izz,
	}
}

// ringMoments uses the shoelace formula, the result is independent of the
// direction of the vertices
func ringMoments(vertices []Point) moments {
	var m moments
	n := len(vertices)
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		cross := a.Y*b.Z - b.Y*a.Z
		m.area += cross
		m.sy += (a.Y + b.Y) * cross
		m.sz += (a.Z + b.Z) * cross
		m.iyy += (a.Y*a.Y + a.Y*b.Y + b.Y*b.Y) * cross
		m.izz += (a.Z*a.Z + a.Z*b.Z + b.Z*b.Z) * cross
	}
	m.area /= 2
	m.sy /= 6
	m.sz /= 6
	m.iyy /= 12
	m.izz /= 12

	if m.area < 0 {
		m = moments{}.minus(m)
	}
	return m
}
