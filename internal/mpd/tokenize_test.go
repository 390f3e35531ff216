package mpd

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"simple", "play 1", []string{"play", "1"}, false},
		{"quoted", `find "Artist" "Foo Bar"`, []string{"find", "Artist", "Foo Bar"}, false},
		{"quoted escapes", `add "a \"b\" c"`, []string{"add", `a "b" c`}, false},
		{"backslash escape", `add "a\\b"`, []string{"add", `a\b`}, false},
		{"unterminated quote", `add "unterminated`, nil, true},
		{"trailing backslash", `add a\`, nil, true},
		{"extra whitespace", "  play   1  ", []string{"play", "1"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tokenize(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got tokens %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}
