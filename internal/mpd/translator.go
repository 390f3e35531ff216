package mpd

import (
	"strconv"
	"strings"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// TrackToResult renders one track (optionally a tracklist item with a
// stable position/tlid, optionally a streaming track with a stream title)
// into the ordered tuple sequence the `file`/`Time`/`Artist`/... lines are
// built from. Tag-type filtering happens later in the formatter.
func TrackToResult(track mpdcore.Track, position *int, tlid *int, streamTitle string) []ResultTuple {
	var out []ResultTuple
	out = append(out, Tuple("file", track.URI))
	out = append(out, Tuple("Time", int(track.LengthMs/1000)))

	for _, a := range track.Artists {
		out = append(out, Tuple("Artist", a))
	}
	if track.Album.Name != "" {
		out = append(out, Tuple("Album", track.Album.Name))
	}

	if streamTitle != "" {
		out = append(out, Tuple("Title", streamTitle))
		out = append(out, Tuple("Name", track.Name))
	} else {
		out = append(out, Tuple("Title", track.Name))
	}

	if track.Date != "" {
		out = append(out, Tuple("Date", track.Date))
	}

	if track.TrackNo != 0 {
		if track.Album.NumTracks > 0 {
			out = append(out, Tuple("Track", strconv.Itoa(track.TrackNo)+"/"+strconv.Itoa(track.Album.NumTracks)))
		} else {
			out = append(out, Tuple("Track", track.TrackNo))
		}
	}

	if position != nil && tlid != nil {
		out = append(out, Tuple("Pos", *position))
		out = append(out, Tuple("Id", *tlid))
	}

	if track.Album.MusicBrainzID != "" {
		out = append(out, Tuple("MUSICBRAINZ_ALBUMID", track.Album.MusicBrainzID))
	}
	if len(track.Album.Artists) > 0 {
		out = append(out, Tuple("AlbumArtist", strings.Join(track.Album.Artists, ";")))
	}

	for _, c := range track.Composers {
		out = append(out, Tuple("Composer", c))
	}
	for _, p := range track.Performers {
		out = append(out, Tuple("Performer", p))
	}
	if track.Genre != "" {
		out = append(out, Tuple("Genre", track.Genre))
	}
	if track.DiscNo != 0 {
		out = append(out, Tuple("Disc", track.DiscNo))
	}
	if !track.LastModified.IsZero() {
		out = append(out, Tuple("Last-Modified", track.LastModified.UTC().Format("2006-01-02T15:04:05Z")))
	}
	if track.MusicBrainzID != "" {
		out = append(out, Tuple("MUSICBRAINZ_TRACKID", track.MusicBrainzID))
	}
	if track.Album.URI != "" {
		out = append(out, Tuple("X-AlbumUri", track.Album.URI))
	}

	return out
}

// TracksToResult renders a slice of tracks, optionally numbering their
// position starting at startPos.
func TracksToResult(tracks []mpdcore.Track, startPos int) []ResultTuple {
	var out []ResultTuple
	for i, t := range tracks {
		pos := startPos + i
		out = append(out, TrackToResult(t, &pos, nil, "")...)
	}
	return out
}

// TlTrackToResult renders one tracklist entry with its position and tlid.
func TlTrackToResult(tl mpdcore.TlTrack, position int) []ResultTuple {
	return TrackToResult(tl.Track, &position, &tl.Tlid, "")
}

// RefToResult renders a browse Ref as a directory/playlist/file entry line.
func RefToResult(path string, ref mpdcore.Ref) ResultTuple {
	switch ref.Kind {
	case mpdcore.RefDirectory:
		return Tuple("directory", path)
	case mpdcore.RefPlaylist:
		return Tuple("playlist", path)
	default:
		return Tuple("file", path)
	}
}
