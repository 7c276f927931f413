package node

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/leapnodes/pkg/core"
)

// BindParameters decodes values into the node's parameter struct.
//
// Keys must match the mapstructure tags of the parameter struct; unknown
// keys are an error. Strings are split on commas for list parameters, so
// "x1, x2" binds to []string{"x1", "x2"}.
func BindParameters(n core.Node, values map[string]any) error {
	target := n.Parameters()
	if target == nil {
		if len(values) > 0 {
			return fmt.Errorf("node takes no parameters")
		}
		return nil
	}
	if len(values) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToListHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create parameter decoder: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return fmt.Errorf("invalid node parameters: %w", err)
	}
	return nil
}

// MergeParameters merges parameter maps; later maps take precedence.
func MergeParameters(maps ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// ParseAssignments parses "key=value" pairs as given on the command line.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", p)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

func stringToListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	raw, _ := data.(string)
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
