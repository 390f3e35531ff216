package mpd

import (
	"sync"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// Subsystems that can be named in an `idle` request.
const (
	SubsystemDatabase       = "database"
	SubsystemMixer          = "mixer"
	SubsystemOptions        = "options"
	SubsystemOutput         = "output"
	SubsystemPlayer         = "player"
	SubsystemPlaylist       = "playlist"
	SubsystemStoredPlaylist = "stored_playlist"
	SubsystemUpdate         = "update"
)

// AllSubsystems is the default subscription set for a bare `idle` command.
var AllSubsystems = []string{
	SubsystemDatabase, SubsystemMixer, SubsystemOptions, SubsystemOutput,
	SubsystemPlayer, SubsystemPlaylist, SubsystemStoredPlaylist, SubsystemUpdate,
}

var validSubsystems = func() map[string]bool {
	m := make(map[string]bool, len(AllSubsystems))
	for _, s := range AllSubsystems {
		m[s] = true
	}
	return m
}()

// subsystemForEvent maps a core event to the MPD subsystem name it
// notifies, or "" for events that are dropped (track_playback_* family).
func subsystemForEvent(kind mpdcore.EventKind) string {
	switch kind {
	case mpdcore.EventPlaybackStateChanged, mpdcore.EventSeeked:
		return SubsystemPlayer
	case mpdcore.EventTracklistChanged, mpdcore.EventStreamTitleChanged:
		return SubsystemPlaylist
	case mpdcore.EventPlaylistsLoaded, mpdcore.EventPlaylistChanged, mpdcore.EventPlaylistDeleted:
		return SubsystemStoredPlaylist
	case mpdcore.EventOptionsChanged:
		return SubsystemOptions
	case mpdcore.EventVolumeChanged:
		return SubsystemMixer
	case mpdcore.EventMuteChanged:
		return SubsystemOutput
	default:
		return ""
	}
}

// notifyFunc is how the registry delivers a `changed:` line (or set of
// them) to a live connection; Connection implements it by writing the
// formatted response, re-arming its idle timer, and waking its read loop.
type notifyFunc func(subsystems []string)

// IdleRegistry fans out core events to every live session, intersecting
// each session's pending/subscribed subsystems and delivering a `changed:`
// batch when they overlap.
type IdleRegistry struct {
	mu      sync.RWMutex
	nextID  int
	members map[int]*idleMember
}

type idleMember struct {
	session *Session
	notify  notifyFunc
}

// NewIdleRegistry returns an empty registry.
func NewIdleRegistry() *IdleRegistry {
	return &IdleRegistry{members: make(map[int]*idleMember)}
}

// Register adds a live connection and returns a token for Unregister.
func (r *IdleRegistry) Register(session *Session, notify notifyFunc) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.members[id] = &idleMember{session: session, notify: notify}
	return id
}

// Unregister removes a connection when it closes.
func (r *IdleRegistry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
}

// Broadcast applies a core event to every live session: adds the mapped
// subsystem to pending_events, and if a session is idle and subscribed to
// it, delivers the changed lines and clears both sets.
func (r *IdleRegistry) Broadcast(kind mpdcore.EventKind) {
	subsystem := subsystemForEvent(kind)
	if subsystem == "" {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		s := m.session
		s.mu.Lock()
		s.PendingEvents[subsystem] = true
		if s.IsIdle() {
			active := intersect(s.PendingEvents, s.IdleSubscriptions)
			if len(active) > 0 {
				s.PendingEvents = make(map[string]bool)
				s.IdleSubscriptions = make(map[string]bool)
				s.PreventIdleTimeout = false
				s.mu.Unlock()
				m.notify(active)
				continue
			}
		}
		s.mu.Unlock()
	}
}

func intersect(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if b[k] {
			out = append(out, k)
		}
	}
	return out
}

// Run drains core events into the registry until events is closed.
func (r *IdleRegistry) Run(events <-chan mpdcore.Event) {
	for ev := range events {
		r.Broadcast(ev.Kind)
	}
}
