package mpd

import "testing"

func allTags() map[string]bool {
	tags := make(map[string]bool, len(AllTagTypes))
	for _, t := range AllTagTypes {
		tags[t] = true
	}
	return tags
}

func TestFormatLinesPlainStringAndTuple(t *testing.T) {
	lines := FormatLines("OK", allTags())
	if len(lines) != 1 || lines[0] != "OK" {
		t.Fatalf("got %v", lines)
	}

	lines = FormatLines(Tuple("volume", 50), allTags())
	if len(lines) != 1 || lines[0] != "volume: 50" {
		t.Fatalf("got %v", lines)
	}
}

func TestFormatLinesFiltersDisabledTagType(t *testing.T) {
	tags := allTags()
	delete(tags, "Artist")

	dict := NewDict(Tuple("file", "a.mp3"), Tuple("Artist", "Foo"), Tuple("Title", "Bar"))
	lines := FormatLines(dict, tags)

	for _, l := range lines {
		if l == "Artist: Foo" {
			t.Fatalf("Artist must be suppressed when disabled: %v", lines)
		}
	}
	if len(lines) != 2 {
		t.Fatalf("got %v, want file+Title only", lines)
	}
}

func TestFormatLinesSkipsEmptyTagValues(t *testing.T) {
	dict := NewDict(Tuple("file", "a.mp3"), Tuple("Genre", ""), Tuple("Disc", 0))
	lines := FormatLines(dict, allTags())
	for _, l := range lines {
		if l == "Genre: " || l == "Disc: 0" {
			t.Fatalf("empty tag values must be omitted: %v", lines)
		}
	}
	if len(lines) != 1 {
		t.Fatalf("got %v, want just file", lines)
	}
}

func TestFormatLinesNonTagKeyAlwaysEmitted(t *testing.T) {
	// "directory" is not a tag type, so it must survive even if its value
	// would otherwise look "empty" by tag-filtering rules.
	lines := FormatLines(Tuple("directory", ""), allTags())
	if len(lines) != 1 || lines[0] != "directory: " {
		t.Fatalf("got %v, want directory line preserved", lines)
	}
}

func TestFormatLinesFlattensNestedLists(t *testing.T) {
	result := []Result{
		Tuple("file", "a.mp3"),
		[]ResultTuple{Tuple("file", "b.mp3"), Tuple("file", "c.mp3")},
	}
	lines := FormatLines(result, allTags())
	if len(lines) != 3 {
		t.Fatalf("got %v, want 3 flattened lines", lines)
	}
}

func TestFormatLinesNilResultProducesNoLines(t *testing.T) {
	lines := FormatLines(nil, allTags())
	if len(lines) != 0 {
		t.Fatalf("got %v, want no lines for nil result", lines)
	}
}
