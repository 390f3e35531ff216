package mpd

import (
	"context"
	"fmt"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// registerStatusCommands adds clearerror, currentsong, idle, noidle,
// stats and status.
func registerStatusCommands(r *Registry) {
	r.Register("clearerror", func(ctx *Context, args []any) (Result, error) {
		return nil, NotImplementedError("clearerror")
	})

	r.Register("currentsong", func(ctx *Context, args []any) (Result, error) {
		tl := ctx.Core.Playback().CurrentTlTrack(context.Background())
		if tl == nil {
			return nil, nil
		}
		pos, _ := ctx.Core.Tracklist().Index(context.Background(), &tl.Tlid)
		title := ctx.Core.Playback().StreamTitle(context.Background())
		return TrackToResult(tl.Track, &pos, &tl.Tlid, title), nil
	})

	r.Register("idle", cmdIdle, NotListable, WithVariadic(Param{Name: "subsystems", Convert: ConvString}))
	r.Register("noidle", cmdNoIdle, NotListable)

	r.Register("stats", func(ctx *Context, args []any) (Result, error) {
		stats := ctx.Core.Library().Stats(context.Background())
		uptime := int64(0)
		if lc, ok := ctx.Core.(*mpdcore.LocalCore); ok {
			uptime = lc.Uptime()
		}
		return []ResultTuple{
			Tuple("artists", stats.Artists),
			Tuple("albums", stats.Albums),
			Tuple("songs", stats.Songs),
			Tuple("uptime", uptime),
			Tuple("db_playtime", stats.DBPlaytime),
			Tuple("db_update", stats.DBUpdate),
			Tuple("playtime", uptime),
		}, nil
	})

	r.Register("status", cmdStatus)
}

func cmdIdle(ctx *Context, args []any) (Result, error) {
	session := ctx.Session
	subsystems := AllSubsystems
	if len(args) > 0 {
		subsystems = make([]string, len(args))
		for i, a := range args {
			name := a.(string)
			if !validSubsystems[name] {
				return nil, ArgError("idle", "incorrect arguments")
			}
			subsystems[i] = name
		}
	}

	session.mu.Lock()
	for _, s := range subsystems {
		session.IdleSubscriptions[s] = true
	}
	active := intersect(session.PendingEvents, session.IdleSubscriptions)
	if len(active) == 0 {
		session.PreventIdleTimeout = true
		session.mu.Unlock()
		return nil, nil
	}
	session.PendingEvents = make(map[string]bool)
	session.IdleSubscriptions = make(map[string]bool)
	session.mu.Unlock()

	var out []string
	for _, s := range active {
		out = append(out, fmt.Sprintf("changed: %s", s))
	}
	return out, nil
}

func cmdNoIdle(ctx *Context, args []any) (Result, error) {
	session := ctx.Session
	session.mu.Lock()
	defer session.mu.Unlock()
	if len(session.IdleSubscriptions) == 0 {
		return nil, nil
	}
	session.IdleSubscriptions = make(map[string]bool)
	session.PendingEvents = make(map[string]bool)
	session.PreventIdleTimeout = false
	return nil, nil
}

func cmdStatus(ctx *Context, args []any) (Result, error) {
	c := ctx.Core
	bg := context.Background()

	currentTl := c.Playback().CurrentTlTrack(bg)
	var currentTlid *int
	if currentTl != nil {
		currentTlid = &currentTl.Tlid
	}
	nextTlid, hasNext := c.Tracklist().NextTlid(bg)

	currentIndex, hasCurrentIndex := c.Tracklist().Index(bg, currentTlid)
	volume := c.Mixer().GetVolume(bg)
	var nextIndexPtr *int
	if hasNext {
		idx, ok := c.Tracklist().Index(bg, &nextTlid)
		if ok {
			nextIndexPtr = &idx
		}
	}
	state := c.Playback().State(bg)
	timePos := c.Playback().TimePosition(bg)

	out := []ResultTuple{
		Tuple("volume", volume),
		Tuple("repeat", boolToInt(c.Tracklist().GetRepeat(bg))),
		Tuple("random", boolToInt(c.Tracklist().GetRandom(bg))),
		Tuple("single", boolToInt(c.Tracklist().GetSingle(bg))),
		Tuple("consume", boolToInt(c.Tracklist().GetConsume(bg))),
		Tuple("playlist", c.Tracklist().Version(bg)),
		Tuple("playlistlength", c.Tracklist().Length(bg)),
		Tuple("xfade", 0),
		Tuple("state", state.String()),
	}

	if currentTlid != nil && hasCurrentIndex {
		out = append(out, Tuple("song", currentIndex), Tuple("songid", *currentTlid))
	}
	if hasNext && nextIndexPtr != nil {
		out = append(out, Tuple("nextsong", *nextIndexPtr), Tuple("nextsongid", nextTlid))
	}
	if (state == mpdcore.StatePlaying || state == mpdcore.StatePaused) && currentTl != nil {
		total := currentTl.Track.LengthMs / 1000
		out = append(out,
			Tuple("time", fmt.Sprintf("%d:%d", timePos/1000, total)),
			Tuple("elapsed", fmt.Sprintf("%.3f", float64(timePos)/1000.0)),
			Tuple("bitrate", currentTl.Track.Bitrate),
		)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
