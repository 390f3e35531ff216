package mpd

// registerNonGoalCommands adds the protocol surface this server
// acknowledges but does not implement: stickers, channels, mounts and
// neighbors. Each ACKs NotImplemented so well-behaved clients that probe
// for the feature get a clean, documented refusal instead of Unknown.
func registerNonGoalCommands(r *Registry) {
	r.Register("sticker", func(ctx *Context, args []any) (Result, error) {
		return nil, NotImplementedError("sticker")
	}, NotListable, WithVariadic(Param{Name: "args", Convert: ConvString}))

	for _, name := range []string{"subscribe", "unsubscribe", "channels", "readmessages", "sendmessage"} {
		name := name
		r.Register(name, func(ctx *Context, args []any) (Result, error) {
			return nil, NotImplementedError(name)
		}, WithVariadic(Param{Name: "args", Convert: ConvString}))
	}

	for _, name := range []string{"mount", "unmount", "listmounts", "listneighbors"} {
		name := name
		r.Register(name, func(ctx *Context, args []any) (Result, error) {
			return nil, NotImplementedError(name)
		}, WithVariadic(Param{Name: "args", Convert: ConvString}))
	}
}
