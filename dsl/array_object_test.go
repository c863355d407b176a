package dsl_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	arrskema "github.com/reoring/arrskema"
	g "github.com/reoring/arrskema/dsl"
)

func member() *g.ObjectSchema {
	return g.Object(map[string]arrskema.Schema{
		"id":   g.Required(g.Number()),
		"name": g.String(),
		"note": g.Strip(g.Any()),
	})
}

func TestObject_Fields(t *testing.T) {
	ctx := context.Background()

	v, err := arrskema.Validate(ctx, member(), map[string]any{"id": "7", "note": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"id": 7.0}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	_, err = arrskema.Validate(ctx, member(), map[string]any{"name": 1, "extra": true}, strict)
	iss := mustIssues(t, err)
	if diff := cmp.Diff([]string{arrskema.CodeAnyRequired, arrskema.CodeStringBase, arrskema.CodeObjectAllowUnknown}, iss.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if iss[2].Path != "extra" {
		t.Fatalf("unknown key reported at %q", iss[2].Path)
	}
}

func TestObject_StripUnknownAndLiteral(t *testing.T) {
	ctx := context.Background()

	v, err := arrskema.Validate(ctx, member(), map[string]any{"id": 1, "extra": true}, arrskema.Options{StripUnknown: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"id": 1.0}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	v, err = arrskema.Validate(ctx, member(), `{"id": 2, "name": "b"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"id": 2.0, "name": "b"}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	_, err = arrskema.Validate(ctx, member(), []any{}, strict)
	if iss := mustIssues(t, err); iss[0].Code != arrskema.CodeObjectBase {
		t.Fatalf("expected object.base, got %v", iss)
	}
}

func TestArrayOfObjects(t *testing.T) {
	ctx := context.Background()
	s := g.Array().Items(member()).Unique()

	in := []any{
		map[string]any{"id": 1, "name": "a"},
		map[string]any{"name": "b"},
	}
	_, err := arrskema.Validate(ctx, s, in)
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayIncludesOne || iss[0].Path != "1" {
		t.Fatalf("expected includesOne at 1, got %v", iss)
	}
	reason := iss[0].Reason()
	if len(reason) != 1 || reason[0].Code != arrskema.CodeAnyRequired || reason[0].Path != "1.id" {
		t.Fatalf("expected any.required at 1.id, got %v", reason)
	}

	_, err = arrskema.Validate(ctx, s, []any{
		map[string]any{"id": 1},
		map[string]any{"id": 1.0},
	})
	if iss := mustIssues(t, err); iss[0].Code != arrskema.CodeArrayUnique || iss[0].Params["pos"] != 1 {
		t.Fatalf("normalized records compare equal, got %v", iss)
	}
}

func TestArrayOfObjects_RequiredMember(t *testing.T) {
	owner := g.Label(g.Required(g.Object(map[string]arrskema.Schema{
		"role": g.Required(g.String()),
		"id":   g.Number(),
	})), "owner")
	s := g.Array().Items(owner, member())

	_, err := arrskema.Validate(context.Background(), s, []any{map[string]any{"id": 1}})
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != arrskema.CodeArrayIncludesRequiredKnowns {
		t.Fatalf("expected includesRequiredKnowns, got %v", iss)
	}
	if diff := cmp.Diff([]string{"owner"}, iss[0].Params["knownMisses"]); diff != "" {
		t.Fatalf("known misses (-want +got):\n%s", diff)
	}
}
