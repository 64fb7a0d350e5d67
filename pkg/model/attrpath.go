package model

import "fmt"

// The helpers below navigate an attribute tree along path-delimited keys
// ("metadata/subject", "cell/depth/value"). Store implementations build
// their path-keyed Attrs views on top of them.

// GetPath resolves a path-delimited key against the attribute tree.
func (m *AttrMap) GetPath(pth string) (AttrValue, bool) {
	segments := SplitAttrPath(pth)
	if len(segments) == 0 {
		return nil, false
	}
	current := m
	for i, segment := range segments {
		value, ok := current.Get(segment)
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		current, ok = value.(*AttrMap)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// HasPath tells if a path-delimited key resolves in the attribute tree.
func (m *AttrMap) HasPath(pth string) bool {
	_, ok := m.GetPath(pth)
	return ok
}

// SetPath stores a value at a path-delimited key, creating intermediate
// dictionaries along the way. Setting below an existing non-dictionary
// value is an error.
func (m *AttrMap) SetPath(pth string, value AttrValue) error {
	segments := SplitAttrPath(pth)
	if len(segments) == 0 {
		return fmt.Errorf("empty attribute key")
	}
	current := m
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current.Get(segment)
		if !ok {
			child := NewAttrMap()
			current.Set(segment, child)
			current = child
			continue
		}
		child, ok := next.(*AttrMap)
		if !ok {
			return fmt.Errorf("key %q in %q holds a value, not a dictionary", segment, pth)
		}
		current = child
	}
	current.Set(segments[len(segments)-1], value)
	return nil
}

// DeletePath removes the value at a path-delimited key. It reports whether
// the key was present. Emptied intermediate dictionaries are left in place.
func (m *AttrMap) DeletePath(pth string) bool {
	segments := SplitAttrPath(pth)
	if len(segments) == 0 {
		return false
	}
	current := m
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current.Get(segment)
		if !ok {
			return false
		}
		current, ok = next.(*AttrMap)
		if !ok {
			return false
		}
	}
	return current.Delete(segments[len(segments)-1])
}
