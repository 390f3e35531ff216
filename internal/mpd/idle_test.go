package mpd

import (
	"testing"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

func TestBroadcastDeliversToIdleSubscriber(t *testing.T) {
	r := NewIdleRegistry()
	session := NewSession(true)
	session.IdleSubscriptions[SubsystemPlayer] = true

	var got []string
	token := r.Register(session, func(subsystems []string) { got = subsystems })
	defer r.Unregister(token)

	r.Broadcast(mpdcore.EventPlaybackStateChanged)

	if len(got) != 1 || got[0] != SubsystemPlayer {
		t.Fatalf("got %v, want [%s]", got, SubsystemPlayer)
	}
	if session.IsIdle() {
		t.Fatal("delivering a match must clear the subscription")
	}
	if len(session.PendingEvents) != 0 {
		t.Fatal("delivering a match must clear pending events")
	}
}

func TestBroadcastQueuesWithoutMatchingSubscription(t *testing.T) {
	r := NewIdleRegistry()
	session := NewSession(true)
	session.IdleSubscriptions[SubsystemPlaylist] = true

	delivered := false
	token := r.Register(session, func(subsystems []string) { delivered = true })
	defer r.Unregister(token)

	r.Broadcast(mpdcore.EventPlaybackStateChanged)

	if delivered {
		t.Fatal("a player event must not wake a playlist-only subscriber")
	}
	if !session.PendingEvents[SubsystemPlayer] {
		t.Fatal("the event should still be recorded as pending")
	}
}

func TestBroadcastNotIdleOnlyQueues(t *testing.T) {
	r := NewIdleRegistry()
	session := NewSession(true)

	delivered := false
	token := r.Register(session, func(subsystems []string) { delivered = true })
	defer r.Unregister(token)

	r.Broadcast(mpdcore.EventVolumeChanged)

	if delivered {
		t.Fatal("a session not currently idle must not be notified")
	}
	if !session.PendingEvents[SubsystemMixer] {
		t.Fatal("expected the mixer event to be queued as pending")
	}
}

func TestBroadcastUnmappedEventIsDropped(t *testing.T) {
	r := NewIdleRegistry()
	session := NewSession(true)
	session.IdleSubscriptions[SubsystemPlayer] = true

	delivered := false
	token := r.Register(session, func(subsystems []string) { delivered = true })
	defer r.Unregister(token)

	r.Broadcast(mpdcore.EventKind(9999))

	if delivered || len(session.PendingEvents) != 0 {
		t.Fatal("an event with no mapped subsystem must be dropped entirely")
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	r := NewIdleRegistry()
	session := NewSession(true)
	session.IdleSubscriptions[SubsystemPlayer] = true

	delivered := false
	token := r.Register(session, func(subsystems []string) { delivered = true })
	r.Unregister(token)

	r.Broadcast(mpdcore.EventPlaybackStateChanged)

	if delivered {
		t.Fatal("an unregistered member must not receive further broadcasts")
	}
}
