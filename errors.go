package arrskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes produced by array schemas.
const (
	CodeArrayBase                     = "array.base"
	CodeArraySparse                   = "array.sparse"
	CodeArrayExcludes                 = "array.excludes"
	CodeArrayExcludesSingle           = "array.excludesSingle"
	CodeArrayOrdered                  = "array.ordered"
	CodeArrayOrderedLength            = "array.orderedLength"
	CodeArrayIncludesOne              = "array.includesOne"
	CodeArrayIncludesOneSingle        = "array.includesOneSingle"
	CodeArrayIncludes                 = "array.includes"
	CodeArrayIncludesSingle           = "array.includesSingle"
	CodeArrayIncludesRequiredBoth     = "array.includesRequiredBoth"
	CodeArrayIncludesRequiredKnowns   = "array.includesRequiredKnowns"
	CodeArrayIncludesRequiredUnknowns = "array.includesRequiredUnknowns"
	CodeArrayMin                      = "array.min"
	CodeArrayMax                      = "array.max"
	CodeArrayLength                   = "array.length"
	CodeArrayUnique                   = "array.unique"
)

// Issue codes produced by the bundled element schemas.
const (
	CodeAnyRequired        = "any.required"
	CodeAnyUnknown         = "any.unknown"
	CodeAnyCustom          = "any.custom"
	CodeNumberBase         = "number.base"
	CodeStringBase         = "string.base"
	CodeBooleanBase        = "boolean.base"
	CodeObjectBase         = "object.base"
	CodeObjectAllowUnknown = "object.allowUnknown"
)

// Issue represents a single validation entry.
type Issue struct {
	Code    string // One of the codes listed above.
	Path    string // Dotted path of the offending value ("" for the root).
	Key     any    // Key of the container the issue was raised for.
	Message string
	// Params carries the code-specific context (e.g. {"pos": 2, "limit": 3}).
	// Nested failures are kept under "reason" as Issues.
	Params map[string]any
}

// Reason returns the nested issues recorded under Params["reason"].
func (it Issue) Reason() Issues {
	r, _ := it.Params["reason"].(Issues)
	return r
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. array.includes at tags.2
		if it.Path == "" {
			b.WriteString(it.Code)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes lists the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
