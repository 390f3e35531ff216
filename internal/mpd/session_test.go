package mpd

import "testing"

func TestNewSessionStartsWithFullTagSet(t *testing.T) {
	s := NewSession(true)
	if !s.Authenticated {
		t.Fatal("expected authenticated session")
	}
	if len(s.TagTypes) != len(AllTagTypes) {
		t.Fatalf("got %d enabled tag types, want %d", len(s.TagTypes), len(AllTagTypes))
	}
	if s.IsIdle() {
		t.Fatal("a fresh session must not be idle")
	}
}

func TestCommandListLifecycle(t *testing.T) {
	s := NewSession(true)
	s.BeginCommandList(true)
	if s.CommandListMode != CommandListCollectingOK {
		t.Fatalf("got mode %v, want CommandListCollectingOK", s.CommandListMode)
	}

	s.Buffered = append(s.Buffered, "ping", "status")
	lines := s.EndCommandList()
	if len(lines) != 2 {
		t.Fatalf("got %v, want 2 buffered lines", lines)
	}
	if s.CommandListMode != CommandListOff {
		t.Fatal("EndCommandList must reset the mode to off")
	}
	if s.Buffered != nil {
		t.Fatal("EndCommandList must clear the buffer")
	}
}

func TestTagTypeMutators(t *testing.T) {
	s := NewSession(true)

	s.ClearTagTypes()
	if len(s.TagTypes) != 0 {
		t.Fatal("ClearTagTypes must disable every tag")
	}

	s.AddTagTypes([]string{"Artist", "Album"})
	if !s.TagTypes["Artist"] || !s.TagTypes["Album"] || len(s.TagTypes) != 2 {
		t.Fatalf("got %v, want exactly Artist+Album enabled", s.TagTypes)
	}

	s.RemoveTagTypes([]string{"Album"})
	if s.TagTypes["Album"] || !s.TagTypes["Artist"] {
		t.Fatalf("got %v, want only Artist remaining", s.TagTypes)
	}

	s.ResetTagTypes()
	if len(s.TagTypes) != len(AllTagTypes) {
		t.Fatal("ResetTagTypes must restore the full canonical set")
	}
}

func TestIsIdleTracksSubscriptions(t *testing.T) {
	s := NewSession(true)
	if s.IsIdle() {
		t.Fatal("no subscriptions yet")
	}
	s.IdleSubscriptions[SubsystemPlayer] = true
	if !s.IsIdle() {
		t.Fatal("expected IsIdle once a subscription is present")
	}
}
