package workflow

import "fmt"

// Values are the parameters injected into a template.
type Values struct {
	Prompt string
	Width  int
	Height int
	Frames int
}

// Patch returns a patched copy of tpl. The source template is not modified.
func Patch(tpl Template, m Mapping, v Values) (Template, error) {
	if tpl == nil {
		return nil, fmt.Errorf("%w: template is nil", ErrSchemaMismatch)
	}
	out := tpl.Clone()
	writes := []struct {
		field FieldPath
		value any
	}{
		{m.Prompt, v.Prompt},
		{m.Width, v.Width},
		{m.Height, v.Height},
		{m.Frames, v.Frames},
	}
	for _, w := range writes {
		if err := out.set(w.field, w.value); err != nil {
			return nil, err
		}
	}
	return out, nil
}
