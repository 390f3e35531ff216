package mpd

import "testing"

func TestBindRequiredAndOptionalParams(t *testing.T) {
	c := &Command{
		Name: "seek",
		Params: []Param{
			{Name: "songpos", Convert: ConvUint},
			{Name: "time", Convert: ConvFloat, Optional: true, Default: float64(0)},
		},
	}

	bound, err := c.Bind([]string{"3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bound[0].(int) != 3 || bound[1].(float64) != 0 {
		t.Fatalf("got %v, want [3, 0]", bound)
	}

	bound, err = c.Bind([]string{"3", "1.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bound[0].(int) != 3 || bound[1].(float64) != 1.5 {
		t.Fatalf("got %v, want [3, 1.5]", bound)
	}
}

func TestBindWrongArgCount(t *testing.T) {
	c := &Command{
		Name:   "play",
		Params: []Param{{Name: "songpos", Convert: ConvUint}},
	}
	if _, err := c.Bind(nil); err == nil {
		t.Fatal("expected error for missing required arg")
	}
	if _, err := c.Bind([]string{"1", "2"}); err == nil {
		t.Fatal("expected error for too many args")
	}
}

func TestBindVariadic(t *testing.T) {
	p := Param{Name: "uri", Convert: ConvString}
	c := &Command{Name: "add", Variadic: &p}

	bound, err := c.Bind([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bound) != 3 || bound[0] != "a" || bound[2] != "c" {
		t.Fatalf("got %v", bound)
	}

	bound, err = c.Bind(nil)
	if err != nil || len(bound) != 0 {
		t.Fatalf("empty variadic call: got (%v, %v)", bound, err)
	}
}

func TestBindConvertErrorPropagates(t *testing.T) {
	c := &Command{
		Name:   "seekid",
		Params: []Param{{Name: "id", Convert: ConvUint}},
	}
	if _, err := c.Bind([]string{"not-a-number"}); err == nil {
		t.Fatal("expected conversion error to propagate")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected registering the same command name twice to panic")
		}
	}()
	r := NewRegistry()
	noop := func(ctx *Context, args []any) (Result, error) { return nil, nil }
	r.Register("dup", noop)
	r.Register("dup", noop)
}

func TestRegisterBothPositionalsAndVariadicPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected declaring both positionals and a variadic tail to panic")
		}
	}()
	r := NewRegistry()
	noop := func(ctx *Context, args []any) (Result, error) { return nil, nil }
	r.Register("bad", noop, WithParams(Param{Name: "a", Convert: ConvString}), WithVariadic(Param{Name: "rest", Convert: ConvString}))
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	noop := func(ctx *Context, args []any) (Result, error) { return nil, nil }
	r.Register("ping", noop, NoAuth)

	cmd, ok := r.Lookup("ping")
	if !ok {
		t.Fatal("expected ping to be registered")
	}
	if cmd.AuthRequired {
		t.Fatal("NoAuth option should have cleared AuthRequired")
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("expected missing command to not be found")
	}
}
