package mpd

import "testing"

func TestURIMapCollisionSuffixing(t *testing.T) {
	m := NewURIMap()

	first := m.Insert("Song", "file:///a.mp3", false)
	if first != "Song" {
		t.Fatalf("first insert got %q, want Song", first)
	}

	second := m.Insert("Song", "file:///b.mp3", false)
	if second != "Song [2]" {
		t.Fatalf("colliding insert got %q, want %q", second, "Song [2]")
	}

	third := m.Insert("Song", "file:///c.mp3", false)
	if third != "Song [3]" {
		t.Fatalf("second collision got %q, want %q", third, "Song [3]")
	}
}

func TestURIMapIdempotentReuse(t *testing.T) {
	m := NewURIMap()
	first := m.Insert("Song", "file:///a.mp3", false)
	again := m.Insert("Song", "file:///a.mp3", false)
	if first != again {
		t.Fatalf("re-inserting the same (name, uri) pair got %q then %q", first, again)
	}
}

func TestURIMapLookupRoundTrip(t *testing.T) {
	m := NewURIMap()
	name := m.Insert("Track One", "file:///t1.mp3", false)

	uri, ok := m.URIFromName(name)
	if !ok || uri != "file:///t1.mp3" {
		t.Fatalf("URIFromName(%q) = (%q, %v), want (file:///t1.mp3, true)", name, uri, ok)
	}

	back, ok := m.BrowseNameFromURI("file:///t1.mp3")
	if !ok || back != name {
		t.Fatalf("BrowseNameFromURI = (%q, %v), want (%q, true)", back, ok, name)
	}
}

func TestURIMapPlaylistStripsSlash(t *testing.T) {
	m := NewURIMap()
	name := m.Insert("a/b", "playlist:///ab", true)
	if name != "ab" {
		t.Fatalf("playlist insert got %q, want slash stripped to %q", name, "ab")
	}
}
