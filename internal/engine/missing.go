package engine

import (
	arrskema "github.com/reoring/arrskema"
)

// ReportMissing appends one aggregate issue describing the unmatched
// sub-schemas to errs. Labelled schemas are listed by label, the others are
// counted.
func ReportMissing(errs arrskema.Issues, unmatched []arrskema.Schema, st arrskema.State, opt arrskema.Options) arrskema.Issues {
	if len(unmatched) == 0 {
		return errs
	}
	var known []string
	unknown := 0
	for _, s := range unmatched {
		if l := s.Flags().Label; l != "" {
			known = append(known, l)
		} else {
			unknown++
		}
	}

	p := st.PathInfo()
	switch {
	case len(known) > 0 && unknown > 0:
		return append(errs, arrskema.MakeIssue(arrskema.CodeArrayIncludesRequiredBoth,
			map[string]any{"knownMisses": known, "unknownMisses": unknown}, p, opt))
	case len(known) > 0:
		return append(errs, arrskema.MakeIssue(arrskema.CodeArrayIncludesRequiredKnowns,
			map[string]any{"knownMisses": known}, p, opt))
	default:
		return append(errs, arrskema.MakeIssue(arrskema.CodeArrayIncludesRequiredUnknowns,
			map[string]any{"unknownMisses": unknown}, p, opt))
	}
}
