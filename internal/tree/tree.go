// Package tree holds the merged, insertion-ordered translation dictionary.
package tree

import (
	"encoding/json"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an insertion-ordered JSON object. Loaders build their maps with it
// so key order survives from the source file into the rendered output.
type Object = orderedmap.OrderedMap[string, any]

func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// Tree is the merged dictionary of a single run.
type Tree struct {
	root *Object
}

func New() *Tree {
	return &Tree{root: NewObject()}
}

// Set stores value at the dotted path, creating intermediate objects as needed.
// The value is always stored. When a non-object value had to be replaced on
// the way, or the leaf already existed, the returned CollisionError describes
// what was overwritten so the caller can decide whether that is fatal.
func (t *Tree) Set(path string, value any) *CollisionError {
	segments := strings.Split(path, ".")
	node := t.root
	var collision *CollisionError

	for i, segment := range segments[:len(segments)-1] {
		existing, present := node.Get(segment)
		if child, ok := existing.(*Object); ok {
			node = child
			continue
		}
		if present && collision == nil {
			collision = &CollisionError{
				Path:     path,
				Conflict: strings.Join(segments[:i+1], "."),
				Existing: describe(existing),
			}
		}
		child := NewObject()
		node.Set(segment, child)
		node = child
	}

	leaf := segments[len(segments)-1]
	if existing, present := node.Get(leaf); present && collision == nil {
		collision = &CollisionError{
			Path:     path,
			Conflict: path,
			Existing: describe(existing),
		}
	}
	node.Set(leaf, value)

	return collision
}

// Merge copies every entry of value into the object at the dotted path,
// creating it when needed. Entry keys are taken literally, dots included.
// Like Set, it always writes and returns the first overwrite it caused.
func (t *Tree) Merge(path string, value *Object) *CollisionError {
	existing, _ := t.Get(path)
	target, ok := existing.(*Object)
	var collision *CollisionError
	if !ok {
		target = NewObject()
		collision = t.Set(path, target)
	}

	for pair := value.Oldest(); pair != nil; pair = pair.Next() {
		if previous, taken := target.Get(pair.Key); taken && collision == nil {
			collision = &CollisionError{
				Path:     path + "." + pair.Key,
				Conflict: path + "." + pair.Key,
				Existing: describe(previous),
			}
		}
		target.Set(pair.Key, pair.Value)
	}
	return collision
}

// Get returns the value stored at the dotted path.
func (t *Tree) Get(path string) (any, bool) {
	var current any = t.root
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(*Object)
		if !ok {
			return nil, false
		}
		current, ok = node.Get(segment)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Len returns the number of top level keys, usually the number of locales.
func (t *Tree) Len() int {
	return t.root.Len()
}

// Keys returns the top level keys in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, t.root.Len())
	for pair := t.root.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.root)
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case *Object:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int64, int, uint64:
		return "number"
	default:
		return "value"
	}
}
