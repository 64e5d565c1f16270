package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// FieldPath addresses one value inside a template node.
type FieldPath struct {
	Node string   `json:"node"`
	Path []string `json:"path"`
}

// ParseFieldPath reads the dotted form "<node>.<key>.<key>".
func ParseFieldPath(dotted string) (FieldPath, error) {
	parts := strings.Split(strings.TrimSpace(dotted), ".")
	if len(parts) < 2 {
		return FieldPath{}, fmt.Errorf("workflow: field path %q needs a node and at least one key", dotted)
	}
	fp := FieldPath{Node: parts[0], Path: parts[1:]}
	if err := fp.validate(); err != nil {
		return FieldPath{}, err
	}
	return fp, nil
}

// UnmarshalJSON accepts either the dotted string form or
// {"node": ..., "path": [...]}.
func (f *FieldPath) UnmarshalJSON(data []byte) error {
	var dotted string
	if err := json.Unmarshal(data, &dotted); err == nil {
		fp, err := ParseFieldPath(dotted)
		if err != nil {
			return err
		}
		*f = fp
		return nil
	}
	type plain FieldPath
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("workflow: field path must be a dotted string or an object: %w", err)
	}
	*f = FieldPath(p)
	return nil
}

func (f FieldPath) String() string {
	return f.Node + "." + strings.Join(f.Path, ".")
}

func (f FieldPath) validate() error {
	if strings.TrimSpace(f.Node) == "" || len(f.Path) == 0 {
		return fmt.Errorf("%w: incomplete field path %q", ErrSchemaMismatch, f.String())
	}
	for _, segment := range f.Path {
		if segment == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrSchemaMismatch, f.String())
		}
	}
	return nil
}

// OutputRef locates the artifact list in a finished job's outputs.
type OutputRef struct {
	Node string `json:"node"`
	List string `json:"list"`
}

// Mapping declares where the client writes its parameters and where it
// reads the produced artifact.
type Mapping struct {
	Prompt FieldPath `json:"prompt"`
	Width  FieldPath `json:"width"`
	Height FieldPath `json:"height"`
	Frames FieldPath `json:"frames"`
	Output OutputRef `json:"output"`
}

// DefaultMapping matches resource/workflows/default_animation.json.
func DefaultMapping() Mapping {
	return Mapping{
		Prompt: FieldPath{Node: "1", Path: []string{"inputs", "text"}},
		Width:  FieldPath{Node: "2", Path: []string{"inputs", "width"}},
		Height: FieldPath{Node: "2", Path: []string{"inputs", "height"}},
		Frames: FieldPath{Node: "3", Path: []string{"inputs", "frames"}},
		Output: OutputRef{Node: "4", List: "images"},
	}
}

// LoadMapping reads a JSON mapping file. Omitted entries keep their defaults.
func LoadMapping(path string) (Mapping, error) {
	m := DefaultMapping()
	raw, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("workflow: read mapping: %w", err)
	}
	var override Mapping
	if err := json.Unmarshal(raw, &override); err != nil {
		return m, fmt.Errorf("workflow: decode mapping: %w", err)
	}
	m.merge(override)
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *Mapping) merge(o Mapping) {
	for _, pair := range []struct{ dst, src *FieldPath }{
		{&m.Prompt, &o.Prompt},
		{&m.Width, &o.Width},
		{&m.Height, &o.Height},
		{&m.Frames, &o.Frames},
	} {
		if pair.src.Node != "" {
			*pair.dst = *pair.src
		}
	}
	if o.Output.Node != "" {
		m.Output.Node = o.Output.Node
	}
	if o.Output.List != "" {
		m.Output.List = o.Output.List
	}
}

// Validate checks that every entry is addressable.
func (m Mapping) Validate() error {
	var errs []error
	for _, fp := range []FieldPath{m.Prompt, m.Width, m.Height, m.Frames} {
		if err := fp.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(m.Output.Node) == "" || strings.TrimSpace(m.Output.List) == "" {
		errs = append(errs, errors.New("workflow: output node and list are required"))
	}
	return errors.Join(errs...)
}
