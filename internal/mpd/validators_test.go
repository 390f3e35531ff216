package mpd

import "testing"

func TestConvertUint(t *testing.T) {
	if _, err := ConvertUint("-1"); err == nil {
		t.Fatal("expected error for negative value")
	}
	if _, err := ConvertUint("abc"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	n, err := ConvertUint("42")
	if err != nil || n != 42 {
		t.Fatalf("got (%d, %v), want (42, nil)", n, err)
	}
}

func TestConvertBool(t *testing.T) {
	if v, err := ConvertBool("1"); err != nil || !v {
		t.Fatalf("got (%v, %v), want (true, nil)", v, err)
	}
	if v, err := ConvertBool("0"); err != nil || v {
		t.Fatalf("got (%v, %v), want (false, nil)", v, err)
	}
	if _, err := ConvertBool("2"); err == nil {
		t.Fatal("expected error for value outside {0,1}")
	}
}

func TestConvertRange(t *testing.T) {
	cases := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{"5", Range{Start: 5, Stop: 6}, false},
		{"2:5", Range{Start: 2, Stop: 5}, false},
		{"2:", Range{Start: 2, Stop: -1}, false},
		{"5:2", Range{}, true},
		{"5:5", Range{}, true},
		{"-1:3", Range{}, true},
	}
	for _, tc := range cases {
		got, err := ConvertRange(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ConvertRange(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ConvertRange(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ConvertRange(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRangeResolve(t *testing.T) {
	open := Range{Start: 2, Stop: -1}
	if !open.Open() {
		t.Fatal("expected Stop < 0 to be open")
	}
	resolved := open.Resolve(10)
	if resolved != (Range{Start: 2, Stop: 10}) {
		t.Fatalf("got %v, want {2 10}", resolved)
	}

	closed := Range{Start: 2, Stop: 5}
	if closed.Resolve(10) != closed {
		t.Fatal("a closed range must resolve to itself")
	}
}
