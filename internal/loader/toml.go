package loader

import (
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/meza/js-translations/internal/tree"
)

// LoadTOML decodes a TOML document. TOML tables carry no order, so keys are
// emitted sorted to keep the output reproducible.
func LoadTOML(data []byte) (any, error) {
	document := map[string]any{}
	if err := toml.Unmarshal(data, &document); err != nil {
		return nil, err
	}
	return fromMap(document), nil
}

func fromMap(document map[string]any) *tree.Object {
	keys := make([]string, 0, len(document))
	for key := range document {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	object := tree.NewObject()
	for _, key := range keys {
		object.Set(key, fromUnordered(document[key]))
	}
	return object
}

func fromUnordered(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return fromMap(v)
	case []any:
		list := make([]any, 0, len(v))
		for _, item := range v {
			list = append(list, fromUnordered(item))
		}
		return list
	default:
		return v
	}
}
