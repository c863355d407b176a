// Package engine resolves the elements of a sequence against the sub-schema
// pools of an array schema.
package engine

import (
	"context"

	arrskema "github.com/reoring/arrskema"
)

// Pools is the read-only view of an array schema the engine works from.
// Match never modifies these slices.
type Pools struct {
	Ordered    []arrskema.Schema // Positional slots, consumed left to right.
	Requireds  []arrskema.Schema // Each must match one distinct element.
	Inclusions []arrskema.Schema // Permitted shapes.
	Exclusions []arrskema.Schema // Forbidden shapes; presence reset to optional.
	HasItems   bool              // Any item was declared (inclusion, required or exclusion).
	Sparse     bool
}

// NeedsCheck reports whether per-element resolution has anything to enforce.
func (p Pools) NeedsCheck() bool {
	return !p.Sparse || len(p.Inclusions) > 0 || len(p.Exclusions) > 0
}

// candidate is one entry of the inclusion pool. req is the index into
// Pools.Requireds for required members and -1 for declared inclusions.
type candidate struct {
	schema arrskema.Schema
	req    int
}

type matcher struct {
	ctx    context.Context
	p      Pools
	wasSeq bool
	st     arrskema.State
	opt    arrskema.Options

	consumed    []bool            // per required member
	checks      []arrskema.Result // required results for the current element
	nextOrdered int
	candidates  []candidate

	out  []any
	errs arrskema.Issues
}

// Match resolves every element of items against p and returns the output
// sequence (accepted elements in their normalized form, stripped elements
// omitted, rejected elements unchanged) together with the issues found.
// items is not modified. With opt.AbortEarly the first issue ends the pass.
func Match(ctx context.Context, p Pools, items []any, wasSeq bool, st arrskema.State, opt arrskema.Options) ([]any, arrskema.Issues) {
	m := &matcher{
		ctx:      ctx,
		p:        p,
		wasSeq:   wasSeq,
		st:       st,
		opt:      opt,
		consumed: make([]bool, len(p.Requireds)),
		checks:   make([]arrskema.Result, len(p.Requireds)),
		out:      make([]any, 0, len(items)),
	}
	m.candidates = make([]candidate, 0, len(p.Inclusions)+len(p.Requireds))
	for _, s := range p.Inclusions {
		m.candidates = append(m.candidates, candidate{schema: s, req: -1})
	}
	for j, s := range p.Requireds {
		m.candidates = append(m.candidates, candidate{schema: s, req: j})
	}

	for _, item := range items {
		if stop := m.resolve(item, items); stop {
			return m.out, m.errs
		}
	}
	m.reportUnmatched()
	if len(m.errs) == 0 {
		return m.out, nil
	}
	return m.out, m.errs
}

// pick selects the message variant for sequences that started as scalars.
func (m *matcher) pick(seqCode, singleCode string) string {
	if m.wasSeq {
		return seqCode
	}
	return singleCode
}

// emit records an issue at the element path and reports whether the pass
// must stop.
func (m *matcher) emit(code string, params map[string]any, local arrskema.State) bool {
	m.errs = append(m.errs, arrskema.MakeIssue(code, params, arrskema.PathInfo{Key: m.st.Key, Path: local.Path}, m.opt))
	return m.opt.AbortEarly
}

// keep appends v to the output.
func (m *matcher) keep(v any) { m.out = append(m.out, v) }

// accept appends the normalized value unless the accepting schema strips it.
func (m *matcher) accept(s arrskema.Schema, res arrskema.Result) {
	if s.Flags().Strip {
		return
	}
	m.out = append(m.out, res.Value)
}

// resolve handles one element. The element position is its index in the
// output built so far, which is where it lands when kept.
func (m *matcher) resolve(item any, parent []any) (stop bool) {
	pos := len(m.out)
	local := m.st.Child(pos, parent)

	if !m.p.Sparse && arrskema.IsHole(item) {
		m.keep(item)
		return m.emit(arrskema.CodeArraySparse, nil, local)
	}

	// exclusions see the zero options so caller switches cannot change the verdict
	for _, ex := range m.p.Exclusions {
		if ex.Validate(m.ctx, item, local, arrskema.Options{}).Errors == nil {
			m.keep(item)
			return m.emit(m.pick(arrskema.CodeArrayExcludes, arrskema.CodeArrayExcludesSingle),
				map[string]any{"pos": pos, "value": item}, local)
		}
	}

	if len(m.p.Ordered) > 0 {
		if m.nextOrdered < len(m.p.Ordered) {
			slot := m.p.Ordered[m.nextOrdered]
			m.nextOrdered++
			res := slot.Validate(m.ctx, item, local, m.opt)
			if res.Errors == nil {
				m.accept(slot, res)
				return false
			}
			m.keep(item)
			return m.emit(arrskema.CodeArrayOrdered, map[string]any{"pos": pos, "reason": res.Errors, "value": item}, local)
		}
		if !m.p.HasItems {
			m.keep(item)
			return m.emit(arrskema.CodeArrayOrderedLength, map[string]any{"pos": pos, "limit": len(m.p.Ordered)}, local)
		}
	}

	// first unconsumed required member that accepts the element claims it
	for j, req := range m.p.Requireds {
		if m.consumed[j] {
			continue
		}
		res := req.Validate(m.ctx, item, local, m.opt)
		m.checks[j] = res
		if res.Errors == nil {
			m.consumed[j] = true
			m.keep(res.Value)
			return false
		}
	}

	for _, c := range m.candidates {
		var res arrskema.Result
		if c.req >= 0 && !m.consumed[c.req] {
			// already rejected above for this element
			res = m.checks[c.req]
		} else {
			res = c.schema.Validate(m.ctx, item, local, m.opt)
			if res.Errors == nil {
				m.accept(c.schema, res)
				return false
			}
		}
		if len(m.candidates) == 1 {
			if m.opt.StripUnknown {
				return false
			}
			m.keep(item)
			return m.emit(m.pick(arrskema.CodeArrayIncludesOne, arrskema.CodeArrayIncludesOneSingle),
				map[string]any{"pos": pos, "reason": res.Errors, "value": item}, local)
		}
	}

	if len(m.p.Inclusions) > 0 {
		if m.opt.StripUnknown {
			return false
		}
		m.keep(item)
		return m.emit(m.pick(arrskema.CodeArrayIncludes, arrskema.CodeArrayIncludesSingle),
			map[string]any{"pos": pos, "value": item}, local)
	}

	// nothing declared to match against: the element passes through
	m.keep(item)
	return false
}

// reportUnmatched hands unclaimed required members and unfilled required
// slots to the missing-element reporter.
func (m *matcher) reportUnmatched() {
	var missed []arrskema.Schema
	for j, req := range m.p.Requireds {
		if !m.consumed[j] {
			missed = append(missed, req)
		}
	}
	if len(missed) > 0 {
		m.errs = ReportMissing(m.errs, missed, m.st, m.opt)
		if m.opt.AbortEarly {
			return
		}
	}

	var slots []arrskema.Schema
	for _, s := range m.p.Ordered[m.nextOrdered:] {
		if s.Flags().Presence == arrskema.PresenceRequired {
			slots = append(slots, s)
		}
	}
	if len(slots) > 0 {
		m.errs = ReportMissing(m.errs, slots, m.st, m.opt)
	}
}
