package input

import (
	"fmt"
	"os"
	"sort"

	"github.com/alexiusacademia/gotower/internal/beam"
	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/entry"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/model"
	"github.com/alexiusacademia/gotower/internal/node"
)

// Run is a decoded run file with its model built
type Run struct {
	Source     string
	Header     map[string]any
	Parameters config.Parameters
	Model      *model.Model
}

// LoadFromFile reads a .json, .yaml or .yml run file and builds its model
func LoadFromFile(path string) (*Run, error) {
	return LoadWithDefaults(path, config.Default())
}

// LoadWithDefaults is LoadFromFile with the parameters the file may override
func LoadWithDefaults(path string, defaults config.Parameters) (*Run, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := DecodeWithDefaults(fh, format, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	run, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	run.Source = path
	return run, nil
}

// Build validates the parameters and creates the model
func (f *File) Build() (*Run, error) {
	if err := f.Parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	m, err := f.Model.Build()
	if err != nil {
		return nil, err
	}
	return &Run{
		Header:     f.Header,
		Parameters: f.Parameters,
		Model:      m,
	}, nil
}

// Build creates the model: the first beam starts at the origin, every
// further beam is appended to the end node. Masses, DOF and springs are
// applied afterwards.
func (s *ModelSpec) Build() (*model.Model, error) {
	kind, err := beam.ParseKind(s.BeamType)
	if err != nil {
		return nil, err
	}
	if len(s.Beams) == 0 {
		return nil, femerr.Valuef("model has no beams")
	}

	m := model.New()
	for i, spec := range s.Beams {
		props, err := spec.Properties()
		if err != nil {
			return nil, fmt.Errorf("beam %d: %w", i+1, err)
		}
		if i == 0 {
			err = addFirst(m, kind, spec.Length, props)
		} else {
			err = m.Append(spec.Length, props)
		}
		if err != nil {
			return nil, fmt.Errorf("beam %d: %w", i+1, err)
		}
		b, err := m.Beam(i)
		if err != nil {
			return nil, err
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("beam %d: %w", i+1, err)
		}
	}

	for i, def := range s.Masses {
		x, err := coordinate(def)
		if err != nil {
			return nil, fmt.Errorf("mass %d: %w", i+1, err)
		}
		mass, err := massOf(def)
		if err != nil {
			return nil, fmt.Errorf("mass %d: %w", i+1, err)
		}
		if err := m.AssignMass(mass, x, model.DefaultTolerance); err != nil {
			return nil, fmt.Errorf("mass %d: %w", i+1, err)
		}
	}

	for i, def := range s.DOFs {
		if err := applyDOFs(m, def); err != nil {
			return nil, fmt.Errorf("dofs %d: %w", i+1, err)
		}
	}

	for i, def := range s.Springs {
		if err := attachSpring(m, def); err != nil {
			return nil, fmt.Errorf("spring %d: %w", i+1, err)
		}
	}
	return m, nil
}

func addFirst(m *model.Model, kind beam.Kind, length float64, p beam.Properties) error {
	n1, n2, err := node.ByAxialLength(kind.DOFs(), length)
	if err != nil {
		return err
	}
	b, err := beam.New(kind, n1, n2, p)
	if err != nil {
		return err
	}
	return m.Add(b)
}

// Properties resolves the beam properties, using the section if present
func (b BeamSpec) Properties() (beam.Properties, error) {
	p := beam.Properties{
		Area:     b.Area,
		AreaMOI:  b.AreaMOI,
		EModulus: b.EModulus,
		Mass:     b.Mass,
	}
	if b.Section == nil {
		return p, nil
	}

	sp, err := b.Section.CalculateProperties()
	if err != nil {
		return p, fmt.Errorf("section %q: %w", b.Section.Name, err)
	}
	p.Area = sp.Area
	p.AreaMOI = sp.AreaMOI
	if p.Mass == 0 {
		if b.Density <= 0 {
			return p, femerr.Valuef("section %q needs mass or density > 0.0", b.Section.Name)
		}
		p.Mass = sp.MassPerLength(b.Density) * b.Length
	}
	return p, nil
}

func coordinate(def map[string]float64) (float64, error) {
	x, ok := def["x"]
	if !ok {
		return 0, femerr.Lookupf("missing entry \"x\"")
	}
	return x, nil
}

// entries returns all keys except "x" in sorted order
func entries(def map[string]float64) []string {
	keys := make([]string, 0, len(def))
	for k := range def {
		if k != "x" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func massOf(def map[string]float64) (*entry.Mass, error) {
	mass := entry.NewMass()
	for _, key := range entries(def) {
		value := def[key]
		if key == "mass" || key == "MASS" {
			if err := mass.SetMass(value); err != nil {
				return nil, err
			}
			continue
		}
		d, err := dof.Parse(key)
		if err != nil {
			return nil, err
		}
		if d.Type() != dof.Rotation {
			return nil, femerr.Lookupf("invalid entry %q for mass element", key)
		}
		if err := mass.SetMMOI(d, value); err != nil {
			return nil, err
		}
	}
	return mass, nil
}

func applyDOFs(m *model.Model, def map[string]float64) error {
	x, err := coordinate(def)
	if err != nil {
		return err
	}
	n, err := m.NodeByHeight(x, model.DefaultTolerance)
	if err != nil {
		return err
	}
	for _, key := range entries(def) {
		d, err := dof.Parse(key)
		if err != nil {
			return err
		}
		if err := n.SetDOF(d, def[key]); err != nil {
			return err
		}
	}
	return nil
}

func attachSpring(m *model.Model, def map[string]float64) error {
	x, err := coordinate(def)
	if err != nil {
		return err
	}
	n, err := m.NodeByHeight(x, model.DefaultTolerance)
	if err != nil {
		return err
	}
	spring := entry.NewSpring()
	for _, key := range entries(def) {
		d, err := dof.Parse(key)
		if err != nil {
			return err
		}
		if err := spring.SetValue(d, def[key]); err != nil {
			return err
		}
	}
	return m.AttachSpring(n, spring)
}
