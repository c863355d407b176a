package arrskema

import (
	"fmt"
	"strconv"
)

// State locates the value under validation. A fresh State is derived for
// every element; it is never mutated after creation.
type State struct {
	Key       any    // Index (int) or object key (string); nil at the root.
	Path      string // Dotted path from the root, e.g. "items.2.sku"; "" at the root.
	Parent    any    // Container holding the value.
	Reference any    // Document root, for lookups by nested schemas.
}

// Root returns the State for a top-level validation of v.
func Root(v any) State { return State{Reference: v} }

// Child derives the State of an element stored under key in parent.
func (s State) Child(key, parent any) State {
	var seg string
	switch k := key.(type) {
	case int:
		seg = strconv.Itoa(k)
	case string:
		seg = k
	default:
		seg = fmt.Sprint(k)
	}
	p := seg
	if s.Path != "" {
		p = s.Path + "." + seg
	}
	return State{Key: key, Path: p, Parent: parent, Reference: s.Reference}
}

// PathInfo returns the key/path pair issues are reported against.
func (s State) PathInfo() PathInfo { return PathInfo{Key: s.Key, Path: s.Path} }

// PathInfo is the location attached to an Issue.
type PathInfo struct {
	Key  any
	Path string
}
