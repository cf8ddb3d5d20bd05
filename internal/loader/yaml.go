package loader

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/meza/js-translations/internal/tree"
)

// LoadYAML decodes a YAML document keeping mapping order. An empty document is
// an empty list.
func LoadYAML(data []byte) (any, error) {
	var value any
	if err := yaml.UnmarshalWithOptions(data, &value, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	if value == nil {
		return []any{}, nil
	}
	return fromYAML(value), nil
}

func fromYAML(value any) any {
	switch v := value.(type) {
	case yaml.MapSlice:
		object := tree.NewObject()
		for _, item := range v {
			object.Set(fmt.Sprint(item.Key), fromYAML(item.Value))
		}
		return object
	case []any:
		list := make([]any, 0, len(v))
		for _, item := range v {
			list = append(list, fromYAML(item))
		}
		return list
	case map[string]any:
		return fromMap(v)
	default:
		return v
	}
}
