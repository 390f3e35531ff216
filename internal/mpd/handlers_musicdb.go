package mpd

import (
	"context"
	"sort"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// registerMusicDBCommands adds lsinfo, list, find, search, findadd,
// searchadd, searchaddpl, count, update, rescan.
func registerMusicDBCommands(r *Registry) {
	r.Register("lsinfo", func(ctx *Context, args []any) (Result, error) {
		path := ""
		if args[0] != nil {
			path = args[0].(string)
		}
		entries, err := ctx.Browse(path, false)
		if err != nil {
			return nil, err
		}
		var out []ResultTuple
		for _, e := range entries {
			if e.Ref.Kind == mpdcore.RefTrack {
				tracks, lookupErr := ctx.Core.Library().Lookup(context.Background(), []string{e.Ref.URI})
				if lookupErr == nil && len(tracks) > 0 {
					out = append(out, TrackToResult(tracks[0], nil, nil, "")...)
					continue
				}
			}
			out = append(out, RefToResult(e.Path, e.Ref))
		}
		return out, nil
	}, WithParams(Param{Name: "uri", Convert: ConvString, Optional: true}))

	r.Register("list", func(ctx *Context, args []any) (Result, error) {
		if len(args) == 0 {
			return nil, ArgError("list", "incorrect arguments")
		}
		tag := args[0].(string)
		var clauses []mpdcore.FilterExpr
		if len(args) == 2 {
			parsed, err := ParseFilter("list", args[1].(string))
			if err != nil {
				return nil, err
			}
			clauses = parsed
		}
		tracks, err := ctx.Core.Library().Find(context.Background(), clauses)
		if err != nil {
			return nil, SystemError("list", err)
		}
		seen := make(map[string]bool)
		var values []string
		for _, t := range tracks {
			v := trackFieldValue(t, tag)
			if v != "" && !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sort.Strings(values)
		var out []ResultTuple
		for _, v := range values {
			out = append(out, Tuple(tag, v))
		}
		return out, nil
	}, WithVariadic(Param{Name: "args", Convert: ConvString}))

	r.Register("find", cmdFindOrSearch("find", true), WithParams(Param{Name: "filter", Convert: ConvString}))
	r.Register("search", cmdFindOrSearch("search", false), WithParams(Param{Name: "filter", Convert: ConvString}))

	r.Register("findadd", func(ctx *Context, args []any) (Result, error) {
		tracks, err := filterTracks(ctx, "findadd", args[0].(string), true)
		if err != nil {
			return nil, err
		}
		return nil, addTracksToTracklist(ctx, tracks)
	}, WithParams(Param{Name: "filter", Convert: ConvString}))

	r.Register("searchadd", func(ctx *Context, args []any) (Result, error) {
		tracks, err := filterTracks(ctx, "searchadd", args[0].(string), false)
		if err != nil {
			return nil, err
		}
		return nil, addTracksToTracklist(ctx, tracks)
	}, WithParams(Param{Name: "filter", Convert: ConvString}))

	r.Register("searchaddpl", func(ctx *Context, args []any) (Result, error) {
		name := args[0].(string)
		tracks, err := filterTracks(ctx, "searchaddpl", args[1].(string), false)
		if err != nil {
			return nil, err
		}
		pl, plErr := lookupOrCreatePlaylist(ctx, name)
		if plErr != nil {
			return nil, plErr
		}
		pl.Tracks = append(pl.Tracks, tracks...)
		return nil, ctx.Core.Playlists().Save(context.Background(), pl)
	}, WithParams(Param{Name: "name", Convert: ConvString}, Param{Name: "filter", Convert: ConvString}))

	r.Register("count", func(ctx *Context, args []any) (Result, error) {
		tracks, err := filterTracks(ctx, "count", args[0].(string), true)
		if err != nil {
			return nil, err
		}
		var playtime int64
		for _, t := range tracks {
			playtime += t.LengthMs / 1000
		}
		return []ResultTuple{
			Tuple("songs", len(tracks)),
			Tuple("playtime", playtime),
		}, nil
	}, WithParams(Param{Name: "filter", Convert: ConvString}))

	r.Register("update", cmdUpdate, WithParams(Param{Name: "uri", Convert: ConvString, Optional: true}))
	r.Register("rescan", cmdUpdate, WithParams(Param{Name: "uri", Convert: ConvString, Optional: true}))
}

func cmdFindOrSearch(name string, exact bool) Handler {
	return func(ctx *Context, args []any) (Result, error) {
		tracks, err := filterTracks(ctx, name, args[0].(string), exact)
		if err != nil {
			return nil, err
		}
		return TracksToResult(tracks, 0), nil
	}
}

func filterTracks(ctx *Context, command, filterArg string, exact bool) ([]mpdcore.Track, error) {
	clauses, err := ParseFilter(command, filterArg)
	if err != nil {
		return nil, err
	}
	var tracks []mpdcore.Track
	if exact {
		tracks, err = ctx.Core.Library().Find(context.Background(), clauses)
	} else {
		tracks, err = ctx.Core.Library().Search(context.Background(), clauses)
	}
	if err != nil {
		return nil, SystemError(command, err)
	}
	return tracks, nil
}

func addTracksToTracklist(ctx *Context, tracks []mpdcore.Track) error {
	uris := make([]string, len(tracks))
	for i, t := range tracks {
		uris[i] = t.URI
	}
	_, err := ctx.Core.Tracklist().Add(context.Background(), uris, nil)
	return err
}

func cmdUpdate(ctx *Context, args []any) (Result, error) {
	uri := ""
	if args[0] != nil {
		uri = args[0].(string)
	}
	if err := ctx.Core.Library().Refresh(context.Background(), uri); err != nil {
		return nil, SystemError("update", err)
	}
	return Tuple("updating_db", 1), nil
}
