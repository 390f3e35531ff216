package mpd

import (
	"context"
	"strings"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// registerTracklistCommands adds the current-playlist (tracklist) command
// set: add, addid, delete, deleteid, clear, move, moveid, playlist,
// playlistfind, playlistid, playlistinfo, playlistsearch, plchanges,
// plchangesposid, prio, prioid, rangeid, shuffle, swap, swapid, addtagid,
// cleartagid.
func registerTracklistCommands(r *Registry) {
	r.Register("add", func(ctx *Context, args []any) (Result, error) {
		uri := args[0].(string)
		_, err := ctx.Core.Tracklist().Add(context.Background(), []string{uri}, nil)
		return nil, err
	}, WithParams(Param{Name: "uri", Convert: ConvString}))

	r.Register("addid", func(ctx *Context, args []any) (Result, error) {
		uri := args[0].(string)
		var pos *int
		if args[1] != nil {
			p := args[1].(int)
			pos = &p
		}
		added, err := ctx.Core.Tracklist().Add(context.Background(), []string{uri}, pos)
		if err != nil {
			return nil, err
		}
		if len(added) == 0 {
			return nil, NoExistError("addid", "No such song")
		}
		return Tuple("Id", added[0].Tlid), nil
	}, WithParams(Param{Name: "uri", Convert: ConvString}, Param{Name: "songpos", Convert: ConvUint, Optional: true}))

	r.Register("delete", func(ctx *Context, args []any) (Result, error) {
		rng := args[0].(Range)
		return nil, ctx.Core.Tracklist().Remove(context.Background(), mpdcore.Range(rng))
	}, WithParams(Param{Name: "songrange", Convert: ConvRange}))

	r.Register("deleteid", func(ctx *Context, args []any) (Result, error) {
		tlid := args[0].(int)
		return nil, ctx.Core.Tracklist().RemoveByTlid(context.Background(), []int{tlid})
	}, WithParams(Param{Name: "tlid", Convert: ConvUint}))

	r.Register("clear", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Tracklist().Clear(context.Background())
	})

	r.Register("move", func(ctx *Context, args []any) (Result, error) {
		rng := args[0].(Range)
		to := args[1].(int)
		return nil, ctx.Core.Tracklist().Move(context.Background(), mpdcore.Range(rng), to)
	}, WithParams(Param{Name: "songrange", Convert: ConvRange}, Param{Name: "to", Convert: ConvUint}))

	r.Register("moveid", func(ctx *Context, args []any) (Result, error) {
		tlid := args[0].(int)
		to := args[1].(int)
		return nil, ctx.Core.Tracklist().MoveByTlid(context.Background(), tlid, to)
	}, WithParams(Param{Name: "tlid", Convert: ConvUint}, Param{Name: "to", Convert: ConvUint}))

	r.Register("playlist", func(ctx *Context, args []any) (Result, error) {
		items := ctx.Core.Tracklist().Slice(context.Background(), mpdcore.Range{Start: 0, Stop: -1})
		var out []ResultTuple
		for i, tl := range items {
			out = append(out, TlTrackToResult(tl, i)...)
		}
		return out, nil
	})

	r.Register("playlistid", func(ctx *Context, args []any) (Result, error) {
		if args[0] == nil {
			items := ctx.Core.Tracklist().Slice(context.Background(), mpdcore.Range{Start: 0, Stop: -1})
			var out []ResultTuple
			for i, tl := range items {
				out = append(out, TlTrackToResult(tl, i)...)
			}
			return out, nil
		}
		tlid := args[0].(int)
		tl, ok := ctx.Core.Tracklist().Get(context.Background(), tlid)
		if !ok {
			return nil, NoExistError("playlistid", "No such song")
		}
		pos, _ := ctx.Core.Tracklist().Index(context.Background(), &tlid)
		return TlTrackToResult(tl, pos), nil
	}, WithParams(Param{Name: "tlid", Convert: ConvUint, Optional: true}))

	r.Register("playlistinfo", func(ctx *Context, args []any) (Result, error) {
		rng := mpdcore.Range{Start: 0, Stop: -1}
		if args[0] != nil {
			rng = mpdcore.Range(args[0].(Range))
		}
		items := ctx.Core.Tracklist().Slice(context.Background(), rng)
		var out []ResultTuple
		for i, tl := range items {
			out = append(out, TlTrackToResult(tl, rng.Start+i)...)
		}
		return out, nil
	}, WithParams(Param{Name: "songrange", Convert: ConvRange, Optional: true}))

	r.Register("playlistfind", cmdPlaylistFilter("playlistfind", true))
	r.Register("playlistsearch", cmdPlaylistFilter("playlistsearch", false))

	r.Register("plchanges", func(ctx *Context, args []any) (Result, error) {
		version := args[0].(int)
		changed := ctx.Core.Tracklist().ChangesSince(context.Background(), version)
		var out []ResultTuple
		for _, tl := range changed {
			pos, _ := ctx.Core.Tracklist().Index(context.Background(), &tl.Tlid)
			out = append(out, TlTrackToResult(tl, pos)...)
		}
		return out, nil
	}, WithParams(Param{Name: "version", Convert: ConvInt}))

	r.Register("plchangesposid", func(ctx *Context, args []any) (Result, error) {
		version := args[0].(int)
		changed := ctx.Core.Tracklist().ChangesSince(context.Background(), version)
		var out []ResultTuple
		for _, tl := range changed {
			pos, _ := ctx.Core.Tracklist().Index(context.Background(), &tl.Tlid)
			out = append(out, Tuple("cpos", pos), Tuple("Id", tl.Tlid))
		}
		return out, nil
	}, WithParams(Param{Name: "version", Convert: ConvInt}))

	r.Register("prio", func(ctx *Context, args []any) (Result, error) {
		return nil, nil // priority queueing is not modeled by the reference core
	}, WithParams(Param{Name: "priority", Convert: ConvUint}, Param{Name: "position", Convert: ConvRange}))

	r.Register("prioid", func(ctx *Context, args []any) (Result, error) {
		return nil, nil
	}, WithVariadic(Param{Name: "args", Convert: ConvString}))

	r.Register("rangeid", func(ctx *Context, args []any) (Result, error) {
		return nil, nil // partial-track playback windows are not modeled
	}, WithParams(Param{Name: "tlid", Convert: ConvUint}, Param{Name: "songrange", Convert: ConvRange}))

	r.Register("shuffle", func(ctx *Context, args []any) (Result, error) {
		rng := mpdcore.Range{Start: 0, Stop: -1}
		if args[0] != nil {
			rng = mpdcore.Range(args[0].(Range))
		}
		return nil, ctx.Core.Tracklist().Shuffle(context.Background(), rng)
	}, WithParams(Param{Name: "songrange", Convert: ConvRange, Optional: true}))

	r.Register("swap", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Tracklist().Swap(context.Background(), args[0].(int), args[1].(int))
	}, WithParams(Param{Name: "songpos1", Convert: ConvUint}, Param{Name: "songpos2", Convert: ConvUint}))

	r.Register("swapid", func(ctx *Context, args []any) (Result, error) {
		return nil, ctx.Core.Tracklist().SwapByTlid(context.Background(), args[0].(int), args[1].(int))
	}, WithParams(Param{Name: "tlid1", Convert: ConvUint}, Param{Name: "tlid2", Convert: ConvUint}))

	r.Register("addtagid", func(ctx *Context, args []any) (Result, error) {
		return nil, nil // ad hoc tag overrides are not modeled by the reference core
	}, WithVariadic(Param{Name: "args", Convert: ConvString}))

	r.Register("cleartagid", func(ctx *Context, args []any) (Result, error) {
		return nil, nil
	}, WithVariadic(Param{Name: "args", Convert: ConvString}))
}

func cmdPlaylistFilter(name string, exact bool) Handler {
	return func(ctx *Context, args []any) (Result, error) {
		var clauses []mpdcore.FilterExpr
		if len(args) >= 2 {
			clauses = append(clauses, mpdcore.FilterExpr{Tag: args[0].(string), Op: mpdcore.FilterEquals, Value: args[1].(string)})
		}
		items := ctx.Core.Tracklist().Slice(context.Background(), mpdcore.Range{Start: 0, Stop: -1})
		var out []ResultTuple
		for i, tl := range items {
			if matchesFilterClauses(tl.Track, clauses, exact) {
				out = append(out, TlTrackToResult(tl, i)...)
			}
		}
		return out, nil
	}
}

func matchesFilterClauses(t mpdcore.Track, clauses []mpdcore.FilterExpr, exact bool) bool {
	for _, f := range clauses {
		field := trackFieldValue(t, f.Tag)
		if exact {
			if !strings.EqualFold(field, f.Value) {
				return false
			}
		} else if !strings.Contains(strings.ToLower(field), strings.ToLower(f.Value)) {
			return false
		}
	}
	return true
}

func trackFieldValue(t mpdcore.Track, tag string) string {
	switch strings.ToLower(tag) {
	case "artist":
		if len(t.Artists) > 0 {
			return t.Artists[0]
		}
		return ""
	case "album":
		return t.Album.Name
	case "title":
		return t.Name
	case "genre":
		return t.Genre
	case "date":
		return t.Date
	default:
		return ""
	}
}
