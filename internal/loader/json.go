package loader

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/meza/js-translations/internal/tree"
)

var (
	errInvalidJSON = errors.New("invalid JSON document")
	errInvalidUTF8 = errors.New("malformed UTF-8 characters, possibly incorrectly encoded")
)

// LoadJSON decodes a JSON document keeping object member order. Numbers keep
// their literal text.
func LoadJSON(data []byte) (any, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	if !gjson.ValidBytes(data) {
		return nil, describeInvalidJSON(data)
	}
	return fromJSON(gjson.ParseBytes(data)), nil
}

func fromJSON(result gjson.Result) any {
	switch {
	case result.IsObject():
		object := tree.NewObject()
		result.ForEach(func(key, value gjson.Result) bool {
			object.Set(key.String(), fromJSON(value))
			return true
		})
		return object
	case result.IsArray():
		list := []any{}
		result.ForEach(func(_, value gjson.Result) bool {
			list = append(list, fromJSON(value))
			return true
		})
		return list
	}

	switch result.Type {
	case gjson.String:
		return result.String()
	case gjson.Number:
		return json.Number(strings.TrimSpace(result.Raw))
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

// describeInvalidJSON asks encoding/json for a positioned message.
func describeInvalidJSON(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return errors.New("empty JSON document")
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	return errInvalidJSON
}
