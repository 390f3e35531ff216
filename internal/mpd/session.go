package mpd

import "sync"

// CommandListMode tracks whether a session is currently buffering a batched
// command list, and if so, which delimiter style it was opened with.
type CommandListMode int

const (
	CommandListOff CommandListMode = iota
	CommandListCollectingPlain
	CommandListCollectingOK
)

// AllTagTypes is the canonical set of tag names a freshly connected session
// starts with enabled.
var AllTagTypes = []string{
	"Artist", "ArtistSort", "Album", "AlbumSort", "AlbumArtist", "AlbumArtistSort",
	"Title", "Track", "Name", "Genre", "Date", "OriginalDate", "Composer",
	"Performer", "Conductor", "Work", "Grouping", "Comment", "Disc",
	"Label", "MUSICBRAINZ_ARTISTID", "MUSICBRAINZ_ALBUMID",
	"MUSICBRAINZ_ALBUMARTISTID", "MUSICBRAINZ_TRACKID", "MUSICBRAINZ_RELEASETRACKID",
	"MUSICBRAINZ_WORKID",
}

// Session holds the per-connection mutable state described in §3 of the
// protocol design: authentication, command-list buffering, idle
// subscriptions and pending events, and enabled tag types.
type Session struct {
	mu sync.Mutex

	Authenticated bool

	CommandListMode CommandListMode
	Buffered        []string

	// CommandListIndex is non-nil only while replaying a batched list; it
	// tags ACK errors with the offending sub-command's position.
	CommandListIndex *int

	IdleSubscriptions map[string]bool
	PendingEvents     map[string]bool

	TagTypes map[string]bool

	PreventIdleTimeout bool
}

// NewSession returns a freshly connected session. authenticated should be
// true iff no server password is configured.
func NewSession(authenticated bool) *Session {
	tags := make(map[string]bool, len(AllTagTypes))
	for _, t := range AllTagTypes {
		tags[t] = true
	}
	return &Session{
		Authenticated:     authenticated,
		IdleSubscriptions: make(map[string]bool),
		PendingEvents:     make(map[string]bool),
		TagTypes:          tags,
	}
}

// IsIdle reports whether the session is currently blocked in idle.
func (s *Session) IsIdle() bool {
	return len(s.IdleSubscriptions) > 0
}

// BeginCommandList switches the session into list-collecting mode.
func (s *Session) BeginCommandList(ok bool) {
	if ok {
		s.CommandListMode = CommandListCollectingOK
	} else {
		s.CommandListMode = CommandListCollectingPlain
	}
	s.Buffered = nil
}

// EndCommandList returns the buffered lines and resets to the off state.
func (s *Session) EndCommandList() []string {
	lines := s.Buffered
	s.CommandListMode = CommandListOff
	s.Buffered = nil
	return lines
}

// AddTagTypes enables the named tag types.
func (s *Session) AddTagTypes(names []string) {
	for _, n := range names {
		s.TagTypes[n] = true
	}
}

// RemoveTagTypes disables the named tag types.
func (s *Session) RemoveTagTypes(names []string) {
	for _, n := range names {
		delete(s.TagTypes, n)
	}
}

// ClearTagTypes disables every tag type.
func (s *Session) ClearTagTypes() {
	s.TagTypes = make(map[string]bool)
}

// ResetTagTypes restores the full canonical set.
func (s *Session) ResetTagTypes() {
	s.TagTypes = make(map[string]bool, len(AllTagTypes))
	for _, t := range AllTagTypes {
		s.TagTypes[t] = true
	}
}
