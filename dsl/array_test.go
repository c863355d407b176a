package dsl_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	arrskema "github.com/reoring/arrskema"
	g "github.com/reoring/arrskema/dsl"
)

var strict = arrskema.Options{}

func mustIssues(t *testing.T, err error) arrskema.Issues {
	t.Helper()
	if err == nil {
		t.Fatalf("expected issues, got nil")
	}
	iss, ok := arrskema.AsIssues(err)
	if !ok {
		t.Fatalf("expected arrskema.Issues, got %T: %v", err, err)
	}
	return iss
}

func TestArray_AcceptsAndNormalizes(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Items(g.Number())

	v, err := arrskema.Validate(ctx, s, []any{1, "2", 3.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0, 3.5}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	again, err := arrskema.Validate(ctx, s, v)
	if err != nil {
		t.Fatalf("validating the output again failed: %v", err)
	}
	if diff := cmp.Diff(v, again); diff != "" {
		t.Fatalf("second pass changed the value (-first +second):\n%s", diff)
	}
}

func TestArray_DoesNotModifyInput(t *testing.T) {
	in := []any{1, "x", 2}
	_, _ = arrskema.Validate(context.Background(), g.Array().Items(g.Number()), in, arrskema.Options{StripUnknown: true})
	if diff := cmp.Diff([]any{1, "x", 2}, in); diff != "" {
		t.Fatalf("input modified (-want +got):\n%s", diff)
	}
}

func TestArray_Base(t *testing.T) {
	ctx := context.Background()
	for _, v := range []any{5, "abc", map[string]any{}, nil, `{"a":1}`} {
		_, err := arrskema.Validate(ctx, g.Array(), v)
		iss := mustIssues(t, err)
		if iss[0].Code != arrskema.CodeArrayBase {
			t.Errorf("%#v: expected array.base, got %v", v, iss)
		}
	}
	// absent values are left to the presence rules
	if _, err := arrskema.Validate(ctx, g.Array(), arrskema.Hole{}); err != nil {
		t.Fatalf("hole should pass an optional array: %v", err)
	}
	_, err := arrskema.Validate(ctx, g.Required(g.Array()), arrskema.Hole{})
	if iss := mustIssues(t, err); iss[0].Code != arrskema.CodeAnyRequired {
		t.Fatalf("expected any.required, got %v", iss)
	}
}

func TestArray_Literal(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Items(g.Number())

	v, err := arrskema.Validate(ctx, s, "[1, 2]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	_, err = arrskema.Validate(ctx, s, "[1, 2]", strict)
	if iss := mustIssues(t, err); iss[0].Code != arrskema.CodeArrayBase {
		t.Fatalf("literals need Convert, got %v", iss)
	}
}

func TestArray_Sparse(t *testing.T) {
	ctx := context.Background()
	in := []any{1, arrskema.Hole{}, 2}

	_, err := arrskema.Validate(ctx, g.Array(), in)
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArraySparse || iss[0].Path != "1" {
		t.Fatalf("expected array.sparse at 1, got %v", iss)
	}

	v, err := arrskema.Validate(ctx, g.Array().Sparse(true), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(in, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestArray_SparseWithoutItemShapesSkipsElements(t *testing.T) {
	ctx := context.Background()
	in := []any{"x", "y"}

	for name, s := range map[string]*g.ArraySchema{
		"required": g.Array().Sparse(true).Items(g.Required(g.Number())),
		"ordered":  g.Array().Sparse(true).Ordered(g.Number()),
	} {
		v, err := arrskema.Validate(ctx, s, in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if diff := cmp.Diff(in, v); diff != "" {
			t.Fatalf("%s: value mismatch (-want +got):\n%s", name, diff)
		}
	}

	// inclusions still force element resolution
	_, err := arrskema.Validate(ctx, g.Array().Sparse(true).Items(g.Number()), in, strict)
	if iss := mustIssues(t, err); iss[0].Code != arrskema.CodeArrayIncludesOne {
		t.Fatalf("expected array.includesOne, got %v", iss)
	}
}

func TestArray_RequiredItemsAreAMultiset(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Items(g.Required(g.String()), g.Required(g.String()))

	_, err := arrskema.Validate(ctx, s, []any{"a"})
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayIncludesRequiredUnknowns {
		t.Fatalf("expected one unknowns issue, got %v", iss)
	}
	if iss[0].Params["unknownMisses"] != 1 {
		t.Fatalf("expected one miss, got %v", iss[0].Params)
	}

	if _, err := arrskema.Validate(ctx, s, []any{"a", "b"}); err != nil {
		t.Fatalf("two elements fill two members: %v", err)
	}
}

func TestArray_MissingRequiredVariants(t *testing.T) {
	ctx := context.Background()
	owner := g.Label(g.Required(g.String()), "owner")
	admin := g.Label(g.Required(g.String()), "admin")

	tests := []struct {
		name  string
		items []arrskema.Schema
		code  string
		known []string
		miss  any
	}{
		{name: "knowns", items: []arrskema.Schema{owner, admin}, code: arrskema.CodeArrayIncludesRequiredKnowns, known: []string{"owner", "admin"}},
		{name: "unknowns", items: []arrskema.Schema{g.Required(g.Bool())}, code: arrskema.CodeArrayIncludesRequiredUnknowns, miss: 1},
		{name: "both", items: []arrskema.Schema{owner, g.Required(g.Bool())}, code: arrskema.CodeArrayIncludesRequiredBoth, known: []string{"owner"}, miss: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := arrskema.Validate(ctx, g.Array().Items(tc.items...), []any{}, strict)
			iss := mustIssues(t, err)
			if len(iss) != 1 || iss[0].Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, iss)
			}
			if iss[0].Path != "" {
				t.Fatalf("missing members are reported at the array, got %q", iss[0].Path)
			}
			if tc.known != nil {
				if diff := cmp.Diff(tc.known, iss[0].Params["knownMisses"]); diff != "" {
					t.Fatalf("known misses (-want +got):\n%s", diff)
				}
			}
			if tc.miss != nil && iss[0].Params["unknownMisses"] != tc.miss {
				t.Fatalf("unknown misses = %v, want %v", iss[0].Params["unknownMisses"], tc.miss)
			}
		})
	}
}

func TestArray_ExclusionsWinOverInclusions(t *testing.T) {
	s := g.Array().Items(g.Forbidden(g.String()), g.String(), g.Number())

	_, err := arrskema.Validate(context.Background(), s, []any{1, "a"})
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayExcludes || iss[0].Path != "1" {
		t.Fatalf("expected array.excludes at 1, got %v", iss)
	}
	if iss[0].Params["pos"] != 1 {
		t.Fatalf("expected pos 1, got %v", iss[0].Params)
	}
}

func TestArray_AbortEarlyReportsOneIssue(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Items(g.Number(), g.Required(g.Bool())).Max(1)
	in := []any{"x", "y", arrskema.Hole{}}

	_, err := arrskema.Validate(ctx, s, in, strict)
	if all := mustIssues(t, err); len(all) < 3 {
		t.Fatalf("expected several issues when collecting, got %v", all)
	}
	_, err = arrskema.Validate(ctx, s, in, arrskema.Options{AbortEarly: true})
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayIncludes || iss[0].Path != "0" {
		t.Fatalf("expected the first issue only, got %v", iss)
	}
}

func TestArray_Single(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Items(g.Number()).Single(true)

	v, err := arrskema.Validate(ctx, s, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{5.0}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	_, err = arrskema.Validate(ctx, s, "abc")
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayIncludesOneSingle {
		t.Fatalf("expected array.includesOneSingle, got %v", iss)
	}
	if iss[0].Reason()[0].Code != arrskema.CodeNumberBase {
		t.Fatalf("expected the number failure as reason, got %v", iss[0].Params)
	}

	_, err = arrskema.Validate(ctx, s, 5, strict)
	if iss := mustIssues(t, err); iss[0].Code != arrskema.CodeArrayBase {
		t.Fatalf("single wrapping needs Convert, got %v", iss)
	}
}

func TestArray_SingleExcludesVariant(t *testing.T) {
	s := g.Array().Items(g.Forbidden(g.Number()), g.String()).Single(true)
	_, err := arrskema.Validate(context.Background(), s, 7)
	iss := mustIssues(t, err)
	if iss[0].Code != arrskema.CodeArrayExcludesSingle {
		t.Fatalf("expected array.excludesSingle, got %v", iss)
	}
}

func TestArray_SingleRetriesWholeSequence(t *testing.T) {
	s := g.Array().Items(g.Array().Items(g.Number())).Single(true)

	v, err := arrskema.Validate(context.Background(), s, []any{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{[]any{1.0, 2.0}}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	v, err = arrskema.Validate(context.Background(), s, []any{[]any{3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{[]any{3.0}}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestArray_Ordered(t *testing.T) {
	ctx := context.Background()
	pair := g.Array().Ordered(g.String(), g.Number())

	v, err := arrskema.Validate(ctx, pair, []any{"x", "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{"x", 1.0}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	_, err = arrskema.Validate(ctx, pair, []any{"x", 1, 2})
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayOrderedLength || iss[0].Params["pos"] != 2 {
		t.Fatalf("expected orderedLength at 2, got %v", iss)
	}

	_, err = arrskema.Validate(ctx, pair, []any{1, 1})
	iss = mustIssues(t, err)
	if iss[0].Code != arrskema.CodeArrayOrdered || iss[0].Path != "0" {
		t.Fatalf("expected array.ordered at 0, got %v", iss)
	}

	withRest := pair.Items(g.Bool())
	if _, err := arrskema.Validate(ctx, withRest, []any{"x", 1, true, false}); err != nil {
		t.Fatalf("extra elements match the items: %v", err)
	}
}

func TestArray_OrderedRequiredSlots(t *testing.T) {
	s := g.Array().Ordered(g.Required(g.String()), g.Label(g.Required(g.Number()), "count"), g.Bool())

	_, err := arrskema.Validate(context.Background(), s, []any{})
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayIncludesRequiredBoth {
		t.Fatalf("expected includesRequiredBoth, got %v", iss)
	}

	if _, err := arrskema.Validate(context.Background(), s, []any{"a", 2}); err != nil {
		t.Fatalf("optional trailing slot may stay empty: %v", err)
	}
}

func TestArray_StripUnknown(t *testing.T) {
	s := g.Array().Items(g.Number())

	v, err := arrskema.Validate(context.Background(), s, []any{1, "x", 2}, arrskema.Options{StripUnknown: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestArray_StripModifier(t *testing.T) {
	s := g.Array().Items(g.Strip(g.String()), g.Number())

	v, err := arrskema.Validate(context.Background(), s, []any{"drop", 1, "me", 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestArray_NestedPaths(t *testing.T) {
	s := g.Array().Items(g.Array().Items(g.Number()))

	_, err := arrskema.Validate(context.Background(), s, []any{[]any{1, "x"}}, strict)
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayIncludesOne || iss[0].Path != "0" {
		t.Fatalf("expected includesOne at 0, got %v", iss)
	}
	inner := iss[0].Reason()
	if len(inner) != 1 || inner[0].Path != "0.1" {
		t.Fatalf("expected the nested issue at 0.1, got %v", inner)
	}
	if inner[0].Reason()[0].Code != arrskema.CodeNumberBase {
		t.Fatalf("expected number.base at the bottom, got %v", inner[0].Params)
	}
}

func TestArray_Unique(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Unique()

	tests := []struct {
		name string
		in   []any
		pos  int
	}{
		{name: "distinct across kinds", in: []any{1, "1", true, nil}, pos: -1},
		{name: "repeated number", in: []any{1, "1", 1.0}, pos: 2},
		{name: "adjacent", in: []any{"a", "a"}, pos: 1},
		{name: "records", in: []any{map[string]any{"id": 1}, map[string]any{"id": 1}}, pos: 1},
		{name: "lists", in: []any{[]any{1}, []any{2}}, pos: -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := arrskema.Validate(ctx, s, tc.in)
			if tc.pos < 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			iss := mustIssues(t, err)
			if iss[0].Code != arrskema.CodeArrayUnique || iss[0].Params["pos"] != tc.pos {
				t.Fatalf("expected array.unique at %d, got %v", tc.pos, iss)
			}
		})
	}
}

func TestArray_LengthRules(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		s    *g.ArraySchema
		in   []any
		code string
	}{
		{name: "min ok", s: g.Array().Min(2), in: []any{1, 2}},
		{name: "min", s: g.Array().Min(2), in: []any{1}, code: arrskema.CodeArrayMin},
		{name: "max ok", s: g.Array().Max(1), in: []any{1}},
		{name: "max", s: g.Array().Max(1), in: []any{1, 2}, code: arrskema.CodeArrayMax},
		{name: "length", s: g.Array().Length(2), in: []any{1, 2, 3}, code: arrskema.CodeArrayLength},
		{name: "length zero", s: g.Array().Length(0), in: []any{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := arrskema.Validate(ctx, tc.s, tc.in)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			iss := mustIssues(t, err)
			if len(iss) != 1 || iss[0].Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, iss)
			}
		})
	}
}

func TestArray_LengthRulesCountStrippedOutput(t *testing.T) {
	s := g.Array().Items(g.Number()).Min(2)
	_, err := arrskema.Validate(context.Background(), s, []any{1, "x"}, arrskema.Options{StripUnknown: true})
	if iss := mustIssues(t, err); iss[0].Code != arrskema.CodeArrayMin {
		t.Fatalf("expected array.min on the stripped output, got %v", iss)
	}
}

func TestArray_RulesSkippedWhenElementsFail(t *testing.T) {
	s := g.Array().Items(g.Number()).Min(3).Unique()
	_, err := arrskema.Validate(context.Background(), s, []any{"x", "x"}, strict)
	iss := mustIssues(t, err)
	for _, it := range iss {
		if it.Code == arrskema.CodeArrayMin || it.Code == arrskema.CodeArrayUnique {
			t.Fatalf("rules must not run on unresolved elements, got %v", iss)
		}
	}
}

func TestArray_Refine(t *testing.T) {
	even := g.Array().Refine("even", func(_ context.Context, seq []any) error {
		if len(seq)%2 != 0 {
			return errors.New("odd length")
		}
		return nil
	})

	if _, err := arrskema.Validate(context.Background(), even, []any{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := arrskema.Validate(context.Background(), even, []any{1})
	iss := mustIssues(t, err)
	if iss[0].Code != arrskema.CodeAnyCustom || iss[0].Params["rule"] != "even" || iss[0].Params["cause"] != "odd length" {
		t.Fatalf("unexpected issue %v", iss)
	}
}

func TestArray_BuilderIsImmutable(t *testing.T) {
	ctx := context.Background()
	base := g.Array().Items(g.Number())
	wider := base.Items(g.String())
	limited := base.Max(0)

	if arrskema.Is(ctx, base, []any{"a"}, strict) {
		t.Fatalf("base schema changed by a derived builder")
	}
	if !arrskema.Is(ctx, wider, []any{"a", 1}, strict) {
		t.Fatalf("derived schema lost the added item")
	}
	if !arrskema.Is(ctx, base, []any{1}, strict) || arrskema.Is(ctx, limited, []any{1}, strict) {
		t.Fatalf("rules leaked between derived schemas")
	}
}

func TestArray_BuildErrors(t *testing.T) {
	s, err := g.Array().Items(nil).Min(-1).Refine("r", nil).Build()
	if err == nil || s != nil {
		t.Fatalf("expected build errors")
	}
	for _, want := range []string{"items", "min", "refine"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustBuild should panic")
		}
	}()
	g.Array().Max(-2).MustBuild()
}

func TestArray_BuildOK(t *testing.T) {
	s, err := g.Array().Items(g.Number()).Min(1).Build()
	if err != nil || s == nil {
		t.Fatalf("unexpected build failure: %v", err)
	}
	_ = g.Array().MustBuild()
}

func TestArray_ConcurrentValidation(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Items(g.Required(g.String()), g.Number()).Unique().MustBuild()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				if !arrskema.Is(ctx, s, []any{"a", i, n + 100}) {
					t.Errorf("goroutine %d: valid input rejected", i)
					return
				}
				if arrskema.Is(ctx, s, []any{i, n + 100}) {
					t.Errorf("goroutine %d: missing required accepted", i)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
