package mpd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cmars/mpdfrontd/internal/config"
	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// newTestContext scans a temp directory containing a couple of placeholder
// audio files into a real LocalCore and wires it into a fresh dispatcher
// context, the same way cmd/mpdfrontd does at startup.
func newTestContext(t *testing.T) (*Dispatcher, *Context) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"one.mp3", "two.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("not a real audio file"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	log := logrus.NewEntry(logrus.New())
	core := mpdcore.NewLocalCore(dir, log)
	registry := RegisterAll()
	dispatcher := NewDispatcher(registry)
	cfg := config.DefaultConfig()
	session := NewSession(true)
	ctx := NewContext(core, cfg, NewURIMap(), session, log, nil)
	return dispatcher, ctx
}

func mustOK(t *testing.T, lines []string, pending, closeConn bool) {
	t.Helper()
	if pending {
		t.Fatal("did not expect a pending (blocking idle) response")
	}
	if closeConn {
		t.Fatalf("did not expect the connection to close, got lines %v", lines)
	}
	if len(lines) == 0 || lines[len(lines)-1] != "OK" {
		t.Fatalf("expected a trailing OK, got %v", lines)
	}
}

func TestDispatcherPingAndStatus(t *testing.T) {
	d, ctx := newTestContext(t)

	lines, pending, closeConn := d.HandleRequest(ctx, "ping")
	mustOK(t, lines, pending, closeConn)
	if len(lines) != 1 {
		t.Fatalf("ping should produce just OK, got %v", lines)
	}

	lines, pending, closeConn = d.HandleRequest(ctx, "status")
	mustOK(t, lines, pending, closeConn)
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "state: ") {
			found = true
		}
	}
	if !found {
		t.Fatalf("status response missing state line: %v", lines)
	}
}

func TestDispatcherUnknownCommand(t *testing.T) {
	d, ctx := newTestContext(t)
	lines, pending, closeConn := d.HandleRequest(ctx, "bogus")
	if pending || closeConn {
		t.Fatalf("unexpected pending/close for unknown command")
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ACK [5@0]") {
		t.Fatalf("got %v, want a kind-5 ACK", lines)
	}
}

func TestDispatcherUnauthenticatedUnknownCommandIsPermission(t *testing.T) {
	d, ctx := newTestContext(t)
	ctx.Session.Authenticated = false

	lines, pending, closeConn := d.HandleRequest(ctx, "bogus")
	if pending || closeConn {
		t.Fatalf("unexpected pending/close")
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ACK [4@0]") {
		t.Fatalf("got %v, want a kind-4 permission ACK for an unknown command while unauthenticated", lines)
	}
}

func TestDispatcherCommandListBeginRequiresAuth(t *testing.T) {
	d, ctx := newTestContext(t)
	ctx.Session.Authenticated = false

	lines, pending, closeConn := d.HandleRequest(ctx, "command_list_begin")
	if pending || closeConn {
		t.Fatal("unexpected pending/close")
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ACK [4@0]") {
		t.Fatalf("got %v, want a kind-4 permission ACK; unauthenticated clients must not be able to open a command list", lines)
	}
	if ctx.Session.CommandListMode != CommandListOff {
		t.Fatal("a rejected command_list_begin must not leave the session buffering")
	}
}

func TestDispatcherCommandListBeginIsSilent(t *testing.T) {
	d, ctx := newTestContext(t)

	lines, pending, closeConn := d.HandleRequest(ctx, "command_list_begin")
	if pending || closeConn {
		t.Fatal("unexpected pending/close")
	}
	if lines != nil {
		t.Fatalf("command_list_begin must produce no response of its own, got %v", lines)
	}
	if ctx.Session.CommandListMode != CommandListCollectingPlain {
		t.Fatal("expected the session to now be buffering")
	}

	lines, pending, closeConn = d.HandleRequest(ctx, "command_list_end")
	mustOK(t, lines, pending, closeConn)
	if len(lines) != 1 {
		t.Fatalf("an empty command list should reply with just OK, got %v", lines)
	}
}

func TestDispatcherListedInCommandsWhenAuthenticated(t *testing.T) {
	d, ctx := newTestContext(t)
	lines, pending, closeConn := d.HandleRequest(ctx, "commands")
	mustOK(t, lines, pending, closeConn)

	found := false
	for _, l := range lines {
		if l == "command: command_list_begin" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected command_list_begin to be listed by 'commands', got %v", lines)
	}
}

func TestDispatcherAuthGate(t *testing.T) {
	d, ctx := newTestContext(t)
	ctx.Session.Authenticated = false

	// "kill" always requires auth and always refuses anyway, but
	// "tagtypes" is AuthRequired by default and has no other gate.
	lines, pending, closeConn := d.HandleRequest(ctx, "tagtypes")
	if pending || closeConn {
		t.Fatal("unexpected pending/close")
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ACK [4@0]") {
		t.Fatalf("got %v, want a kind-4 permission ACK", lines)
	}
}

func TestDispatcherIdleViolationClosesConnection(t *testing.T) {
	d, ctx := newTestContext(t)

	_, pending, closeConn := d.HandleRequest(ctx, "idle")
	if closeConn {
		t.Fatal("bare idle with nothing pending must not close")
	}
	if !pending {
		t.Fatal("bare idle with nothing pending must report pending")
	}

	// Any command other than noidle while idle must close the session.
	_, _, closeConn = d.HandleRequest(ctx, "ping")
	if !closeConn {
		t.Fatal("a non-noidle request while idle must close the connection")
	}
}

func TestDispatcherNoidleWithoutIdleIsANoop(t *testing.T) {
	d, ctx := newTestContext(t)
	lines, pending, closeConn := d.HandleRequest(ctx, "noidle")
	if lines != nil || pending || closeConn {
		t.Fatalf("noidle outside idle must produce no response at all, got %v (pending=%v, close=%v)", lines, pending, closeConn)
	}
}

func TestDispatcherCommandListOKStripping(t *testing.T) {
	d, ctx := newTestContext(t)

	// Opening the list and buffering its lines produce no response; the
	// replies all arrive together on command_list_end.
	mustSilent := func(req string) {
		t.Helper()
		lines, pending, closeConn := d.dispatchLines(ctx, req)
		if lines != nil || pending || closeConn {
			t.Fatalf("%q must produce no response while a command list is being opened/buffered, got %v", req, lines)
		}
	}
	mustSilent("command_list_ok_begin")
	mustSilent("ping")
	mustSilent("ping")
	lines, pending, closeConn := d.HandleRequest(ctx, "command_list_end")
	mustOK(t, lines, pending, closeConn)

	count := 0
	for _, l := range lines {
		if l == "list_OK" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 list_OK markers, got %d in %v", count, lines)
	}
	if lines[len(lines)-1] != "OK" {
		t.Fatalf("final line must be the list-closing OK, got %v", lines)
	}
}

// dispatchLines is a tiny test helper so command-list buffering calls read
// the same as a real request/response pair.
func (d *Dispatcher) dispatchLines(ctx *Context, line string) ([]string, bool, bool) {
	return d.HandleRequest(ctx, line)
}

func TestAddAndPlaylistInfoRoundTrip(t *testing.T) {
	d, ctx := newTestContext(t)

	browsed, err := ctx.Browse("", false)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(browsed) == 0 {
		t.Fatal("expected the scanned library to yield at least one entry")
	}

	uri := browsed[0].Ref.URI
	lines, pending, closeConn := d.HandleRequest(ctx, `add "`+uri+`"`)
	mustOK(t, lines, pending, closeConn)

	lines, pending, closeConn = d.HandleRequest(ctx, "playlistinfo")
	mustOK(t, lines, pending, closeConn)
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "file: "+uri) {
			found = true
		}
	}
	if !found {
		t.Fatalf("playlistinfo missing the added track: %v", lines)
	}
}
