package schemasynth_test

import (
	"errors"
	"fmt"
	"testing"

	schemasynth "github.com/reoring/schemasynth"
)

func TestIssues_ErrorSummarizesFirstThree(t *testing.T) {
	iss := schemasynth.Issues{
		{Code: "a", Path: "/1"}, {Code: "b", Path: "/2"}, {Code: "c", Path: "/3"}, {Code: "d", Path: "/4"},
	}
	want := "a at /1; b at /2; c at /3; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := (schemasynth.Issues{}).Error(); got != "" {
		t.Fatalf("empty: %q", got)
	}
}

func TestAsIssues_ThroughWrapping(t *testing.T) {
	base := schemasynth.Issues{{Code: schemasynth.CodeInvalidKeyword, Path: "/minLength"}}
	wrapped := fmt.Errorf("loading: %w", base)
	iss, ok := schemasynth.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Path != "/minLength" {
		t.Fatalf("got %v %v", iss, ok)
	}
	if _, ok := schemasynth.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error must not yield Issues")
	}
	if _, ok := schemasynth.AsIssues(nil); ok {
		t.Fatalf("nil must not yield Issues")
	}
}

func TestBudget(t *testing.T) {
	b := schemasynth.NewBudget(schemasynth.Limits{MaxDepth: 2, MaxNodes: 3})
	for i := 0; i < 3; i++ {
		if err := b.Enter("", 0); err != nil {
			t.Fatalf("enter %d: %v", i, err)
		}
	}
	err := b.Enter("/x", 1)
	if !errors.Is(err, schemasynth.ErrLimitExceeded) {
		t.Fatalf("expected node limit, got %v", err)
	}
	iss, _ := schemasynth.AsIssues(err)
	if iss[0].Code != schemasynth.CodeLimitExceeded || iss[0].Path != "/x" || iss[0].Params["kind"] != "node" {
		t.Fatalf("issue: %+v", iss[0])
	}

	b = schemasynth.NewBudget(schemasynth.Limits{MaxDepth: 2})
	if err := b.Enter("/a/b/c", 3); !errors.Is(err, schemasynth.ErrLimitExceeded) {
		t.Fatalf("expected depth limit, got %v", err)
	}
	if b.Nodes() != 0 {
		t.Fatalf("depth failure must not count a node")
	}
}

func TestDefaultLimits(t *testing.T) {
	l := schemasynth.DefaultLimits()
	if l.MaxDepth != schemasynth.DefaultMaxDepth || l.MaxNodes != schemasynth.DefaultMaxNodes {
		t.Fatalf("got %+v", l)
	}
}
