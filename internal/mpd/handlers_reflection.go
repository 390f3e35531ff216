package mpd

import "sort"

// registerReflectionCommands adds commands, notcommands, urlhandlers,
// decoders, config.
func registerReflectionCommands(r *Registry) {
	r.Register("commands", func(ctx *Context, args []any) (Result, error) {
		names := r.names()
		sort.Strings(names)
		var out []ResultTuple
		for _, n := range names {
			cmd, _ := r.Lookup(n)
			if ctx.Session.Authenticated || !cmd.AuthRequired {
				out = append(out, Tuple("command", n))
			}
		}
		return out, nil
	})

	r.Register("notcommands", func(ctx *Context, args []any) (Result, error) {
		if ctx.Session.Authenticated {
			return nil, nil
		}
		names := r.names()
		sort.Strings(names)
		var out []ResultTuple
		for _, n := range names {
			cmd, _ := r.Lookup(n)
			if cmd.AuthRequired {
				out = append(out, Tuple("command", n))
			}
		}
		return out, nil
	})

	r.Register("urlhandlers", func(ctx *Context, args []any) (Result, error) {
		return Tuple("handler", "file"), nil
	})

	r.Register("decoders", func(ctx *Context, args []any) (Result, error) {
		return []ResultTuple{
			Tuple("plugin", "mad"),
			Tuple("suffix", "mp3"),
			Tuple("plugin", "flac"),
			Tuple("suffix", "flac"),
		}, nil
	})

	r.Register("config", func(ctx *Context, args []any) (Result, error) {
		if ctx.Config == nil {
			return nil, nil
		}
		return Tuple("music_directory", ctx.Config.MusicDirectory), nil
	})
}

// names returns the registered command names. Exposed only to this
// package for the reflection commands above.
func (r *Registry) names() []string {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	return names
}
