// Package render serializes the merged dictionary for its destination.
package render

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/meza/js-translations/internal/tree"
)

const indent = "  "

// IsJSONDestination reports whether destination gets a bare JSON document.
// Only a lowercase .json extension counts.
func IsJSONDestination(destination string) bool {
	return filepath.Ext(destination) == ".json"
}

// Render returns the dictionary as JSON, wrapped in "export default ...;"
// unless destination is a .json file.
func Render(dictionary *tree.Tree, destination string, pretty bool) ([]byte, error) {
	data, err := json.Marshal(dictionary)
	if err != nil {
		return nil, errors.Wrap(err, "encoding translations")
	}

	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", indent); err != nil {
			return nil, errors.Wrap(err, "indenting translations")
		}
		data = buf.Bytes()
	}

	if IsJSONDestination(destination) {
		return data, nil
	}

	out := make([]byte, 0, len(data)+len("export default ;"))
	out = append(out, "export default "...)
	out = append(out, data...)
	out = append(out, ';')
	return out, nil
}
