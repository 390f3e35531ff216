package mpdcore

import "context"

// EventKind is a core-originated event, mapped to an MPD idle subsystem by
// internal/mpd's event fan-out.
type EventKind int

const (
	EventPlaybackStateChanged EventKind = iota
	EventSeeked
	EventTracklistChanged
	EventStreamTitleChanged
	EventPlaylistsLoaded
	EventPlaylistChanged
	EventPlaylistDeleted
	EventOptionsChanged
	EventVolumeChanged
	EventMuteChanged
	EventTrackPlaybackStarted
	EventTrackPlaybackEnded
	EventTrackPlaybackPaused
	EventTrackPlaybackResumed
)

// Event is one notification from the core's event stream.
type Event struct {
	Kind EventKind
}

// Tracklist is the current-playlist half of the core.
type Tracklist interface {
	Add(ctx context.Context, uris []string, atPosition *int) ([]TlTrack, error)
	Remove(ctx context.Context, rng Range) error
	RemoveByTlid(ctx context.Context, tlids []int) error
	Move(ctx context.Context, rng Range, to int) error
	MoveByTlid(ctx context.Context, tlid, to int) error
	Clear(ctx context.Context) error
	Shuffle(ctx context.Context, rng Range) error
	Swap(ctx context.Context, posA, posB int) error
	SwapByTlid(ctx context.Context, tlidA, tlidB int) error
	Index(ctx context.Context, tlid *int) (int, bool)
	Get(ctx context.Context, tlid int) (TlTrack, bool)
	Slice(ctx context.Context, rng Range) []TlTrack
	Version(ctx context.Context) int
	ChangesSince(ctx context.Context, version int) []TlTrack
	Length(ctx context.Context) int
	NextTlid(ctx context.Context) (int, bool)

	SetRepeat(ctx context.Context, v bool) error
	SetRandom(ctx context.Context, v bool) error
	SetSingle(ctx context.Context, v bool) error
	SetConsume(ctx context.Context, v bool) error
	GetRepeat(ctx context.Context) bool
	GetRandom(ctx context.Context) bool
	GetSingle(ctx context.Context) bool
	GetConsume(ctx context.Context) bool
}

// Range is a half-open [Start, Stop) interval over the tracklist, mirroring
// internal/mpd.Range but kept independent so this package has no import on
// the wire-protocol package.
type Range struct {
	Start int
	Stop  int
}

// Playback is the playback-engine half of the core.
type Playback interface {
	PlayTlid(ctx context.Context, tlid *int) error
	PlayAt(ctx context.Context, position int) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(ctx context.Context, positionMs int64) error
	SeekRelative(ctx context.Context, deltaMs int64) error

	State(ctx context.Context) PlayState
	CurrentTlTrack(ctx context.Context) *TlTrack
	TimePosition(ctx context.Context) int64
	StreamTitle(ctx context.Context) string
}

// Mixer is the volume-control half of the core.
type Mixer interface {
	GetVolume(ctx context.Context) int // -1 if unset
	SetVolume(ctx context.Context, volume int) error
}

// Library is the browse/search half of the core.
type Library interface {
	Browse(ctx context.Context, uri string) ([]Ref, error)
	Lookup(ctx context.Context, uris []string) ([]Track, error)
	Find(ctx context.Context, filter []FilterExpr) ([]Track, error)
	Search(ctx context.Context, filter []FilterExpr) ([]Track, error)
	Refresh(ctx context.Context, uri string) error
	Stats(ctx context.Context) LibraryStats
}

// LibraryStats backs the MPD `stats` command.
type LibraryStats struct {
	Artists    int
	Albums     int
	Songs      int
	DBPlaytime int64 // seconds
	DBUpdate   int64 // unix time
}

// Playlists is the stored-playlists half of the core.
type Playlists interface {
	AsList(ctx context.Context) []Ref
	Lookup(ctx context.Context, uri string) (*Playlist, error)
	Create(ctx context.Context, name string) (*Playlist, error)
	Save(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, uri string) error
}

// Outputs is the audio-output half of the core.
type Outputs interface {
	List(ctx context.Context) []Output
	SetEnabled(ctx context.Context, id int, enabled bool) error
}

// Core is the full external playback collaborator the MPD frontend drives.
// It is the one abstraction boundary between wire-protocol concerns and
// actual music playback.
type Core interface {
	Tracklist() Tracklist
	Playback() Playback
	Mixer() Mixer
	Library() Library
	Playlists() Playlists
	Outputs() Outputs

	// Events returns the event stream; closed when the core shuts down.
	Events() <-chan Event
}
