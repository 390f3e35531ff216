package mpd

import "context"

// registerPlaybackCommands adds the playback-control commands: play,
// playid, pause, stop, next, previous, seek, seekid, seekcur, setvol,
// repeat, random, single, consume.
func registerPlaybackCommands(r *Registry) {
	r.Register("play", func(ctx *Context, args []any) (Result, error) {
		if args[0] == nil {
			return nil, ctx.Core.Playback().PlayAt(context.Background(), 0)
		}
		return nil, ctx.Core.Playback().PlayAt(context.Background(), args[0].(int))
	}, WithParams(Param{Name: "songpos", Convert: ConvUint, Optional: true}))

	r.Register("playid", func(ctx *Context, args []any) (Result, error) {
		if args[0] == nil {
			return nil, ctx.Core.Playback().PlayTlid(context.Background(), nil)
		}
		tlid := args[0].(int)
		return nil, ctx.Core.Playback().PlayTlid(context.Background(), &tlid)
	}, WithParams(Param{Name: "tlid", Convert: ConvUint, Optional: true}))

	r.Register("pause", func(ctx *Context, args []any) (Result, error) {
		if args[0] != nil && !args[0].(bool) {
			return nil, ctx.Core.Playback().Resume(context.Background())
		}
		return nil, ctx.Core.Playback().Pause(context.Background())
	}, WithParams(Param{Name: "pause", Convert: ConvBool, Optional: true}))

	r.Register("stop", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Playback().Stop(context.Background())
	})

	r.Register("next", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Playback().Next(context.Background())
	})

	r.Register("previous", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Playback().Previous(context.Background())
	})

	r.Register("seek", func(ctx *Context, args []any) (Result, error) {
		pos := args[0].(int)
		timeSec := args[1].(float64)
		if err := ctx.Core.Playback().PlayAt(context.Background(), pos); err != nil {
			return nil, err
		}
		return nil, ctx.Core.Playback().Seek(context.Background(), int64(timeSec*1000))
	}, WithParams(Param{Name: "songpos", Convert: ConvUint}, Param{Name: "time", Convert: ConvUfloat}))

	r.Register("seekid", func(ctx *Context, args []any) (Result, error) {
		tlid := args[0].(int)
		timeSec := args[1].(float64)
		if err := ctx.Core.Playback().PlayTlid(context.Background(), &tlid); err != nil {
			return nil, err
		}
		return nil, ctx.Core.Playback().Seek(context.Background(), int64(timeSec*1000))
	}, WithParams(Param{Name: "tlid", Convert: ConvUint}, Param{Name: "time", Convert: ConvUfloat}))

	r.Register("seekcur", func(ctx *Context, args []any) (Result, error) {
		timeSec := args[0].(float64)
		return nil, ctx.Core.Playback().Seek(context.Background(), int64(timeSec*1000))
	}, WithParams(Param{Name: "time", Convert: ConvUfloat}))

	r.Register("setvol", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Mixer().SetVolume(context.Background(), args[0].(int))
	}, WithParams(Param{Name: "vol", Convert: ConvUint}))

	r.Register("repeat", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Tracklist().SetRepeat(context.Background(), args[0].(bool))
	}, WithParams(Param{Name: "state", Convert: ConvBool}))

	r.Register("random", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Tracklist().SetRandom(context.Background(), args[0].(bool))
	}, WithParams(Param{Name: "state", Convert: ConvBool}))

	r.Register("single", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Tracklist().SetSingle(context.Background(), args[0].(bool))
	}, WithParams(Param{Name: "state", Convert: ConvBool}))

	r.Register("consume", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Tracklist().SetConsume(context.Background(), args[0].(bool))
	}, WithParams(Param{Name: "state", Convert: ConvBool}))
}
