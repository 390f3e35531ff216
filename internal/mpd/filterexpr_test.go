package mpd

import (
	"testing"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

func TestParseFilterSingleComparison(t *testing.T) {
	got, err := ParseFilter("find", `(Artist == 'Foo Fighters')`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []mpdcore.FilterExpr{{Tag: "Artist", Op: mpdcore.FilterEquals, Value: "Foo Fighters"}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParseFilterConjunction(t *testing.T) {
	got, err := ParseFilter("find", `((Artist == 'A') AND (Album == 'B'))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d clauses, want 2", len(got))
	}
	if got[0].Tag != "Artist" || got[0].Value != "A" {
		t.Fatalf("clause 0 = %#v", got[0])
	}
	if got[1].Tag != "Album" || got[1].Value != "B" {
		t.Fatalf("clause 1 = %#v", got[1])
	}
}

func TestParseFilterNegation(t *testing.T) {
	got, err := ParseFilter("find", `(!(Artist == 'A'))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !got[0].Negated {
		t.Fatalf("got %#v, want a single negated clause", got)
	}
}

func TestParseFilterNegatedConjunctionRejected(t *testing.T) {
	_, err := ParseFilter("find", `(!((Artist == 'A') AND (Album == 'B')))`)
	if err == nil {
		t.Fatal("negation of a multi-clause conjunction must be rejected")
	}
}

func TestParseFilterTrailingGarbageRejected(t *testing.T) {
	_, err := ParseFilter("find", `(Artist == 'A') garbage`)
	if err == nil {
		t.Fatal("trailing input after the top-level expression must be rejected")
	}
}

func TestParseFilterBaseAndModifiedSince(t *testing.T) {
	got, err := ParseFilter("find", `(base 'Music')`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Op != mpdcore.FilterBase || got[0].Value != "Music" {
		t.Fatalf("got %#v", got)
	}

	got, err = ParseFilter("find", `(modified-since '2020-01-01')`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Op != mpdcore.FilterModifiedSince || got[0].Value != "2020-01-01" {
		t.Fatalf("got %#v", got)
	}
}
