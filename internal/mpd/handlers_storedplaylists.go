package mpd

import (
	"context"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// registerStoredPlaylistCommands adds listplaylist, listplaylistinfo,
// listplaylists, load, playlistadd, playlistclear, playlistdelete,
// playlistmove, rename, rm, save.
func registerStoredPlaylistCommands(r *Registry) {
	r.Register("listplaylist", func(ctx *Context, args []any) (Result, error) {
		pl, err := lookupStoredPlaylist(ctx, args[0].(string))
		if err != nil {
			return nil, err
		}
		var out []string
		for _, t := range pl.Tracks {
			out = append(out, "file: "+t.URI)
		}
		return out, nil
	}, WithParams(Param{Name: "name", Convert: ConvString}))

	r.Register("listplaylistinfo", func(ctx *Context, args []any) (Result, error) {
		pl, err := lookupStoredPlaylist(ctx, args[0].(string))
		if err != nil {
			return nil, err
		}
		return TracksToResult(pl.Tracks, 0), nil
	}, WithParams(Param{Name: "name", Convert: ConvString}))

	r.Register("listplaylists", func(ctx *Context, args []any) (Result, error) {
		refs := ctx.Core.Playlists().AsList(context.Background())
		var out []ResultTuple
		for _, ref := range refs {
			name := ctx.URIMap.Insert(ref.Name, ref.URI, true)
			out = append(out, Tuple("playlist", name))
		}
		return out, nil
	})

	r.Register("load", func(ctx *Context, args []any) (Result, error) {
		pl, err := lookupStoredPlaylist(ctx, args[0].(string))
		if err != nil {
			return nil, err
		}
		uris := make([]string, len(pl.Tracks))
		for i, t := range pl.Tracks {
			uris[i] = t.URI
		}
		_, addErr := ctx.Core.Tracklist().Add(context.Background(), uris, nil)
		return nil, addErr
	}, WithParams(Param{Name: "name", Convert: ConvString}, Param{Name: "playlist_slice", Convert: ConvRange, Optional: true}))

	r.Register("playlistadd", func(ctx *Context, args []any) (Result, error) {
		name := args[0].(string)
		uri := args[1].(string)
		pl, err := lookupOrCreatePlaylist(ctx, name)
		if err != nil {
			return nil, err
		}
		tracks, lookupErr := ctx.Core.Library().Lookup(context.Background(), []string{uri})
		if lookupErr != nil || len(tracks) == 0 {
			return nil, NoExistError("playlistadd", "No such song")
		}
		pl.Tracks = append(pl.Tracks, tracks[0])
		return nil, ctx.Core.Playlists().Save(context.Background(), pl)
	}, WithParams(Param{Name: "name", Convert: ConvString}, Param{Name: "uri", Convert: ConvString}))

	r.Register("playlistclear", func(ctx *Context, args []any) (Result, error) {
		name := args[0].(string)
		pl, err := lookupOrCreatePlaylist(ctx, name)
		if err != nil {
			return nil, err
		}
		pl.Tracks = nil
		return nil, ctx.Core.Playlists().Save(context.Background(), pl)
	}, WithParams(Param{Name: "name", Convert: ConvString}))

	r.Register("playlistdelete", func(ctx *Context, args []any) (Result, error) {
		name := args[0].(string)
		pos := args[1].(int)
		pl, err := lookupStoredPlaylist(ctx, name)
		if err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(pl.Tracks) {
			return nil, NoExistError("playlistdelete", "No such song")
		}
		pl.Tracks = append(pl.Tracks[:pos], pl.Tracks[pos+1:]...)
		return nil, ctx.Core.Playlists().Save(context.Background(), pl)
	}, WithParams(Param{Name: "name", Convert: ConvString}, Param{Name: "songpos", Convert: ConvUint}))

	r.Register("playlistmove", func(ctx *Context, args []any) (Result, error) {
		name := args[0].(string)
		from := args[1].(int)
		to := args[2].(int)
		pl, err := lookupStoredPlaylist(ctx, name)
		if err != nil {
			return nil, err
		}
		if from < 0 || from >= len(pl.Tracks) || to < 0 || to >= len(pl.Tracks) {
			return nil, NoExistError("playlistmove", "No such song")
		}
		track := pl.Tracks[from]
		pl.Tracks = append(pl.Tracks[:from], pl.Tracks[from+1:]...)
		out := append([]mpdcore.Track(nil), pl.Tracks[:to]...)
		out = append(out, track)
		out = append(out, pl.Tracks[to:]...)
		pl.Tracks = out
		return nil, ctx.Core.Playlists().Save(context.Background(), pl)
	}, WithParams(Param{Name: "name", Convert: ConvString}, Param{Name: "from_pos", Convert: ConvUint}, Param{Name: "to_pos", Convert: ConvUint}))

	r.Register("rename", func(ctx *Context, args []any) (Result, error) {
		oldName := args[0].(string)
		newName := args[1].(string)
		pl, err := lookupStoredPlaylist(ctx, oldName)
		if err != nil {
			return nil, err
		}
		if err := ctx.Core.Playlists().Delete(context.Background(), pl.URI); err != nil {
			return nil, err
		}
		pl.Name = newName
		pl.URI = "playlist://" + newName
		return nil, ctx.Core.Playlists().Save(context.Background(), pl)
	}, WithParams(Param{Name: "name", Convert: ConvString}, Param{Name: "new_name", Convert: ConvString}))

	r.Register("rm", func(ctx *Context, args []any) (Result, error) {
		pl, err := lookupStoredPlaylist(ctx, args[0].(string))
		if err != nil {
			return nil, err
		}
		return nil, ctx.Core.Playlists().Delete(context.Background(), pl.URI)
	}, WithParams(Param{Name: "name", Convert: ConvString}))

	r.Register("save", func(ctx *Context, args []any) (Result, error) {
		name := args[0].(string)
		items := ctx.Core.Tracklist().Slice(context.Background(), mpdcore.Range{Start: 0, Stop: -1})
		tracks := make([]mpdcore.Track, len(items))
		for i, tl := range items {
			tracks[i] = tl.Track
		}
		pl, err := lookupOrCreatePlaylist(ctx, name)
		if err != nil {
			return nil, err
		}
		pl.Tracks = tracks
		return nil, ctx.Core.Playlists().Save(context.Background(), pl)
	}, WithParams(Param{Name: "name", Convert: ConvString}))
}

func lookupStoredPlaylist(ctx *Context, name string) (*mpdcore.Playlist, error) {
	uri, ok := ctx.URIMap.PlaylistURIFromName(name)
	if !ok {
		// lazily refresh the mapping from the core's current playlist list
		for _, ref := range ctx.Core.Playlists().AsList(context.Background()) {
			ctx.URIMap.Insert(ref.Name, ref.URI, true)
		}
		uri, ok = ctx.URIMap.PlaylistURIFromName(name)
		if !ok {
			return nil, NoExistError("", "No such playlist")
		}
	}
	pl, err := ctx.Core.Playlists().Lookup(context.Background(), uri)
	if err != nil {
		return nil, SystemError("", err)
	}
	if pl == nil {
		return nil, NoExistError("", "No such playlist")
	}
	return pl, nil
}

func lookupOrCreatePlaylist(ctx *Context, name string) (*mpdcore.Playlist, error) {
	pl, err := lookupStoredPlaylist(ctx, name)
	if err == nil {
		return pl, nil
	}
	if ack, ok := err.(*AckError); !ok || ack.Kind != KindNoExist {
		return nil, err
	}
	created, createErr := ctx.Core.Playlists().Create(context.Background(), name)
	if createErr != nil {
		return nil, SystemError("", createErr)
	}
	ctx.URIMap.Insert(name, created.URI, true)
	return created, nil
}
