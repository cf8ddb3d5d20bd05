// Package phparray evaluates declarative PHP translation files: scripts whose
// only job is to return a literal array.
package phparray

import (
	"strconv"
)

// Entry is one key/value pair of an Array. Key is either an int64 or a string.
type Entry struct {
	Key   any
	Value any
}

// Array is an ordered PHP array. Values are string, int64, float64, bool, nil
// or *Array.
type Array struct {
	Entries []Entry
	index   map[any]int
	next    int64
}

func NewArray() *Array {
	return &Array{index: map[any]int{}}
}

// Append stores value under the next free integer key.
func (a *Array) Append(value any) {
	a.Set(a.next, value)
}

// Set stores value under key. Keys are normalised the way PHP does: numeric
// strings become integers, booleans become 0/1 and null becomes "".
// Overwriting a key keeps its original position.
func (a *Array) Set(key any, value any) {
	key = normalizeKey(key)
	if position, ok := a.index[key]; ok {
		a.Entries[position].Value = value
		return
	}

	a.index[key] = len(a.Entries)
	a.Entries = append(a.Entries, Entry{Key: key, Value: value})

	if i, ok := key.(int64); ok && i >= a.next {
		a.next = i + 1
	}
}

func (a *Array) Get(key any) (any, bool) {
	position, ok := a.index[normalizeKey(key)]
	if !ok {
		return nil, false
	}
	return a.Entries[position].Value, true
}

func (a *Array) Len() int {
	return len(a.Entries)
}

// IsList reports whether the keys are exactly 0..n-1 in order, which is when
// PHP's json_encode emits a JSON array instead of an object.
func (a *Array) IsList() bool {
	for i, entry := range a.Entries {
		key, ok := entry.Key.(int64)
		if !ok || key != int64(i) {
			return false
		}
	}
	return true
}

// KeyString renders an entry key as an object member name.
func KeyString(key any) string {
	switch k := key.(type) {
	case int64:
		return strconv.FormatInt(k, 10)
	case string:
		return k
	default:
		return ""
	}
}

func normalizeKey(key any) any {
	switch k := key.(type) {
	case int64:
		return k
	case int:
		return int64(k)
	case float64:
		return int64(k)
	case bool:
		if k {
			return int64(1)
		}
		return int64(0)
	case nil:
		return ""
	case string:
		if isCanonicalInt(k) {
			if i, err := strconv.ParseInt(k, 10, 64); err == nil {
				return i
			}
		}
		return k
	default:
		return key
	}
}

// isCanonicalInt matches "0", "-12" and "42" but not "012", "+1" or "-0".
func isCanonicalInt(s string) bool {
	if s == "" {
		return false
	}
	digits := s
	if s[0] == '-' {
		digits = s[1:]
		if digits == "" || digits == "0" {
			return false
		}
	}
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
