package input

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/section"
)

// Supported formats of run files
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// File is the content of a run file
type File struct {
	Header     map[string]any    `json:"header,omitempty" yaml:"header,omitempty"`
	Parameters config.Parameters `json:"parameters" yaml:"parameters"`
	Model      ModelSpec         `json:"model" yaml:"model"`
}

// ModelSpec describes a beam chain from its base upwards.
//
// Masses, DOF and springs are keyed maps, "x" locates the node, all other
// keys are DOF names ("w", "phi", "DOF.W") or "mass".
type ModelSpec struct {
	BeamType string               `json:"beam_type" yaml:"beam_type"`
	Beams    []BeamSpec           `json:"beams" yaml:"beams"`
	Masses   []map[string]float64 `json:"masses,omitempty" yaml:"masses,omitempty"`
	DOFs     []map[string]float64 `json:"dofs,omitempty" yaml:"dofs,omitempty"`
	Springs  []map[string]float64 `json:"springs,omitempty" yaml:"springs,omitempty"`
}

// BeamSpec is a single beam. Area and area moment are taken from Section
// when given; mass then defaults to density * area * length.
type BeamSpec struct {
	Length   float64          `json:"length" yaml:"length"`
	Area     float64          `json:"area,omitempty" yaml:"area,omitempty"`
	AreaMOI  float64          `json:"area_moi,omitempty" yaml:"area_moi,omitempty"`
	EModulus float64          `json:"e_modul" yaml:"e_modul"`
	Mass     float64          `json:"mass,omitempty" yaml:"mass,omitempty"`
	Section  *section.Section `json:"section,omitempty" yaml:"section,omitempty"`
	Density  float64          `json:"density,omitempty" yaml:"density,omitempty"`
}

// FileTypeError is returned for unsupported file extensions
type FileTypeError struct {
	Path     string
	Expected []string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q of %s, expected one of %s",
		filepath.Ext(e.Path), e.Path, strings.Join(e.Expected, ", "))
}

// FormatOf derives the format from the file extension
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", &FileTypeError{Path: path, Expected: []string{".json", ".yaml", ".yml"}}
}

// Decode reads a run file in format. Missing parameters keep their defaults.
func Decode(r io.Reader, format string) (*File, error) {
	return DecodeWithDefaults(r, format, config.Default())
}

// DecodeWithDefaults is Decode with the parameters the file may override
func DecodeWithDefaults(r io.Reader, format string, defaults config.Parameters) (*File, error) {
	f := &File{Parameters: defaults}

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(f); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(f); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return f, nil
}

// Encode writes f in format
func Encode(w io.Writer, f *File, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

// Example returns a small wind tower with a top mass on a fixed base
func Example() *File {
	beam := BeamSpec{
		Length:   2.9,
		Area:     0.268920331147286,
		AreaMOI:  0.615773774261056,
		EModulus: 2.1e11,
		Mass:     6121.97133856797,
	}
	beams := make([]BeamSpec, 10)
	for i := range beams {
		beams[i] = beam
	}
	beams = append(beams, BeamSpec{
		Length:   2.0,
		EModulus: 2.1e11,
		Section:  section.NewTube(3.5, 0.03),
		Density:  7850,
	})

	return &File{
		Header: map[string]any{
			"project": "example tower",
			"author":  "",
		},
		Parameters: config.Default(),
		Model: ModelSpec{
			BeamType: "B_2DOF",
			Beams:    beams,
			Masses: []map[string]float64{
				{"x": 31, "mass": 169100, "phi": 5.0e5},
			},
			DOFs: []map[string]float64{
				{"x": 0, "w": 0, "phi": 0},
			},
		},
	}
}
