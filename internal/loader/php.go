package loader

import (
	"fmt"
	"unicode/utf8"

	"github.com/meza/js-translations/internal/phparray"
	"github.com/meza/js-translations/internal/tree"
)

// LoadPHP evaluates a PHP translation file that returns a literal array.
// Arrays are converted the way json_encode would: sequential arrays become
// lists, everything else an ordered object. Strings must be valid UTF-8.
func LoadPHP(data []byte) (any, error) {
	value, err := phparray.Parse(data)
	if err != nil {
		return nil, err
	}
	return fromPHP(value)
}

func fromPHP(value any) (any, error) {
	array, ok := value.(*phparray.Array)
	if !ok {
		if text, isString := value.(string); isString && !utf8.ValidString(text) {
			return nil, fmt.Errorf("%w in value %q", errInvalidUTF8, text)
		}
		return value, nil
	}

	if array.IsList() {
		list := make([]any, 0, array.Len())
		for _, entry := range array.Entries {
			item, err := fromPHP(entry.Value)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	}

	object := tree.NewObject()
	for _, entry := range array.Entries {
		key := phparray.KeyString(entry.Key)
		if !utf8.ValidString(key) {
			return nil, fmt.Errorf("%w in key %q", errInvalidUTF8, key)
		}
		item, err := fromPHP(entry.Value)
		if err != nil {
			return nil, err
		}
		object.Set(key, item)
	}
	return object, nil
}
