package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImageValue is the raw value stored for an uploaded image. Plain uploads
// carry only Path; processed uploads carry the original plus named
// conversions (e.g. "og", "twitter").
type ImageValue struct {
	Path        string            `json:"path,omitempty" yaml:"path,omitempty" firestore:"path,omitempty"`
	Original    string            `json:"original,omitempty" yaml:"original,omitempty" firestore:"original,omitempty"`
	Conversions map[string]string `json:"conversions,omitempty" yaml:"conversions,omitempty" firestore:"conversions,omitempty"`
}

// ImagePath wraps a plain storage path.
func ImagePath(path string) *ImageValue {
	return &ImageValue{Path: path}
}

// IsZero reports whether the value carries nothing resolvable.
func (v *ImageValue) IsZero() bool {
	if v == nil {
		return true
	}
	if strings.TrimSpace(v.Path) != "" || strings.TrimSpace(v.Original) != "" {
		return false
	}
	for _, c := range v.Conversions {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// IsStructured reports whether the value came from the media pipeline rather
// than a plain upload.
func (v *ImageValue) IsStructured() bool {
	return v != nil && strings.TrimSpace(v.Path) == "" && (v.Original != "" || len(v.Conversions) > 0)
}

// UnmarshalJSON accepts either a bare path string or the structured object.
func (v *ImageValue) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*v = ImageValue{Path: strings.TrimSpace(path)}
		return nil
	}
	type plain ImageValue
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("domain: decode image value: %w", err)
	}
	*v = ImageValue(out)
	return nil
}

// UnmarshalYAML accepts either a scalar path or a mapping.
func (v *ImageValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*v = ImageValue{Path: strings.TrimSpace(node.Value)}
		return nil
	}
	type plain ImageValue
	var out plain
	if err := node.Decode(&out); err != nil {
		return fmt.Errorf("domain: decode image value: %w", err)
	}
	*v = ImageValue(out)
	return nil
}

// Clone returns a deep copy.
func (v *ImageValue) Clone() *ImageValue {
	if v == nil {
		return nil
	}
	out := &ImageValue{Path: v.Path, Original: v.Original}
	if len(v.Conversions) > 0 {
		out.Conversions = make(map[string]string, len(v.Conversions))
		for k, c := range v.Conversions {
			out.Conversions[k] = c
		}
	}
	return out
}
