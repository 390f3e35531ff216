package mpd

import "sort"

// registerConnectionCommands adds the connection/session management
// commands: close, kill, password, ping, tagtypes.
func registerConnectionCommands(r *Registry) {
	r.Register("close", func(ctx *Context, args []any) (Result, error) {
		return nil, ErrCloseSession
	}, NoAuth, NotListable)

	r.Register("kill", func(ctx *Context, args []any) (Result, error) {
		return nil, PermissionError("kill")
	}, NotListable)

	r.Register("password", func(ctx *Context, args []any) (Result, error) {
		pass := args[0].(string)
		if !ctx.CheckPassword(pass) {
			return nil, PasswordError("password", "incorrect password")
		}
		ctx.Session.Authenticated = true
		return nil, nil
	}, NoAuth, WithParams(Param{Name: "password", Convert: ConvString}))

	r.Register("ping", func(ctx *Context, args []any) (Result, error) {
		return nil, nil
	}, NoAuth)

	r.Register("tagtypes", cmdTagTypes, WithVariadic(Param{Name: "args", Convert: ConvString}))

	r.Register("command_list_begin", func(ctx *Context, args []any) (Result, error) {
		ctx.Session.BeginCommandList(false)
		return nil, nil
	}, NotListable, Silent)

	r.Register("command_list_ok_begin", func(ctx *Context, args []any) (Result, error) {
		ctx.Session.BeginCommandList(true)
		return nil, nil
	}, NotListable, Silent)

	// Reached only when command_list_end arrives with no list open; the
	// dispatcher intercepts it directly while a list is being buffered, so
	// this handler never sees a legitimate replay.
	r.Register("command_list_end", func(ctx *Context, args []any) (Result, error) {
		return nil, ArgError("command_list_end", "no command list active")
	}, NotListable)
}

func cmdTagTypes(ctx *Context, args []any) (Result, error) {
	if len(args) == 0 {
		var out []ResultTuple
		names := make([]string, 0, len(ctx.Session.TagTypes))
		for name := range ctx.Session.TagTypes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, Tuple("tagtype", name))
		}
		return out, nil
	}

	sub := args[0].(string)
	rest := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		rest = append(rest, a.(string))
	}

	switch sub {
	case "all":
		ctx.Session.ResetTagTypes()
	case "clear":
		ctx.Session.ClearTagTypes()
	case "enable":
		if err := validateTagNames(rest); err != nil {
			return nil, err
		}
		ctx.Session.AddTagTypes(rest)
	case "disable":
		if err := validateTagNames(rest); err != nil {
			return nil, err
		}
		ctx.Session.RemoveTagTypes(rest)
	default:
		return nil, ArgError("tagtypes", "incorrect arguments")
	}
	return nil, nil
}

func validateTagNames(names []string) error {
	for _, n := range names {
		if !knownTagTypes[n] {
			return ArgError("tagtypes", "incorrect arguments")
		}
	}
	return nil
}
