package tree

import "fmt"

// CollisionError reports that setting Path replaced an existing value at Conflict.
type CollisionError struct {
	Path     string
	Conflict string
	Existing string
}

func (e *CollisionError) Error() string {
	if e.Conflict == e.Path {
		return fmt.Sprintf("key %q is set more than once (previous %s overwritten)", e.Path, e.Existing)
	}
	return fmt.Sprintf("key %q needs %q to be an object, but it already holds a %s", e.Path, e.Conflict, e.Existing)
}

func (e *CollisionError) Is(target error) bool {
	t, ok := target.(*CollisionError)
	if !ok {
		return false
	}
	return e.Path == t.Path && e.Conflict == t.Conflict
}
