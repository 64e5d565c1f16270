// Package workflow loads ComfyUI job templates and point-patches the few
// fields the job client owns. The template schema itself belongs to the
// server; nothing here validates or traverses it beyond the mapped paths.
package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrTemplateLoad reports an unreadable or unparsable template file.
	ErrTemplateLoad = errors.New("workflow: template load failed")
	// ErrSchemaMismatch reports a template that lacks a mapped field path.
	ErrSchemaMismatch = errors.New("workflow: template schema mismatch")
)

// Template is an API-format workflow: node id to node definition.
type Template map[string]any

// DefaultTemplatePath returns the bundled animation workflow under appRoot.
func DefaultTemplatePath(appRoot string) string {
	return filepath.Join(appRoot, "resource", "workflows", "default_animation.json")
}

// LoadTemplate reads and decodes the template at path.
func LoadTemplate(path string) (Template, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrTemplateLoad)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateLoad, err)
	}
	return ParseTemplate(raw)
}

// ParseTemplate decodes raw JSON into a Template.
func ParseTemplate(raw []byte) (Template, error) {
	var tpl Template
	if err := json.Unmarshal(raw, &tpl); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrTemplateLoad, err)
	}
	if tpl == nil {
		return nil, fmt.Errorf("%w: template is empty", ErrTemplateLoad)
	}
	return tpl, nil
}

// Clone returns a deep copy so a loaded template can be patched repeatedly.
func (t Template) Clone() Template {
	if t == nil {
		return nil
	}
	return Template(cloneValue(map[string]any(t)).(map[string]any))
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// Lookup returns the value at node/path.
func (t Template) Lookup(field FieldPath) (any, bool) {
	parent, key, err := t.parentOf(field)
	if err != nil {
		return nil, false
	}
	v, ok := parent[key]
	return v, ok
}

// set overwrites an existing leaf. Missing nodes, intermediate maps, or
// leaves are reported as ErrSchemaMismatch.
func (t Template) set(field FieldPath, value any) error {
	parent, key, err := t.parentOf(field)
	if err != nil {
		return err
	}
	if _, ok := parent[key]; !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrSchemaMismatch, field, key)
	}
	parent[key] = value
	return nil
}

func (t Template) parentOf(field FieldPath) (map[string]any, string, error) {
	if err := field.validate(); err != nil {
		return nil, "", err
	}
	node, ok := t[field.Node].(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("%w: node %q not found", ErrSchemaMismatch, field.Node)
	}
	current := node
	for _, segment := range field.Path[:len(field.Path)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s: %q is not an object", ErrSchemaMismatch, field, segment)
		}
		current = next
	}
	return current, field.Path[len(field.Path)-1], nil
}
