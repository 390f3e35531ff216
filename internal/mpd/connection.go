package mpd

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// controlCharReplacer strips every byte in U+0000-U+001F from an outgoing
// line; clients must never see a bare control character on the wire.
var controlCharReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 64)
	for b := 0; b <= 0x1F; b++ {
		pairs = append(pairs, string(rune(b)), "")
	}
	return strings.NewReplacer(pairs...)
}()

func sanitizeEgress(line string) string {
	return controlCharReplacer.Replace(line)
}

// Connection is one accepted socket turned into an MPD session: it frames
// the byte stream into lines, feeds them through the Dispatcher, and holds
// the per-connection idle-wait state needed to support a blocking `idle`
// command without starving a concurrent `noidle` on the same socket.
type Connection struct {
	conn         net.Conn
	ctx          *Context
	dispatcher   *Dispatcher
	idleRegistry *IdleRegistry
	timeout      time.Duration
	log          *logrus.Entry

	writeMu sync.Mutex
}

// NewConnection wires one accepted socket to a dispatcher, a shared idle
// registry and a freshly-minted session context. timeout of zero disables
// the inactivity timer.
func NewConnection(conn net.Conn, ctx *Context, dispatcher *Dispatcher, idleRegistry *IdleRegistry, timeout time.Duration, log *logrus.Entry) *Connection {
	return &Connection{
		conn:         conn,
		ctx:          ctx,
		dispatcher:   dispatcher,
		idleRegistry: idleRegistry,
		timeout:      timeout,
		log:          log.WithField("remote_addr", conn.RemoteAddr().String()),
	}
}

// Serve drives the connection until the client disconnects, the protocol
// says to close (close, or an idle violation), or a read/write error
// occurs. It blocks until the connection ends, so callers run it in its
// own goroutine per accepted socket.
func (c *Connection) Serve() {
	defer c.conn.Close()

	c.log.Debug("client connected")
	if err := c.writeLines([]string{"OK MPD " + Version}); err != nil {
		return
	}

	incoming := make(chan string)
	readErr := make(chan error, 1)
	go c.readLoop(incoming, readErr)

	for {
		if !c.resetDeadline() {
			return
		}
		select {
		case line, ok := <-incoming:
			if !ok {
				c.drainReadErr(readErr)
				return
			}
			if c.handleLine(line, incoming, readErr) {
				return
			}
		case err := <-readErr:
			if err != nil && err != io.EOF {
				c.log.WithError(err).Debug("connection read error")
			}
			return
		}
	}
}

// handleLine runs one request line through the dispatcher and writes its
// response. It returns true when the connection must close.
func (c *Connection) handleLine(line string, incoming <-chan string, readErr <-chan error) bool {
	lines, pending, closeConn := c.dispatcher.HandleRequest(c.ctx, line)
	if closeConn {
		return true
	}
	if pending {
		return c.waitForIdle(incoming, readErr)
	}
	if lines != nil {
		if err := c.writeLines(lines); err != nil {
			return true
		}
	}
	return false
}

// waitForIdle blocks the connection's request loop while a bare `idle` is
// outstanding. It wakes on one of three events: the idle registry finds a
// matching subsystem change, the client sends another line on this same
// socket (almost always `noidle`, handled by re-entering the dispatcher,
// which clears the idle subscription and replies OK), or the socket errors
// out. cmdIdle already set PreventIdleTimeout before returning, but the
// deadline armed by Serve's last resetDeadline call (made before that flag
// was set) is still live on the socket; disarm it here or readLoop's
// blocked read eventually times out and this function mistakes it for a
// dead connection. A session that said "prevent idle timeout" is expected
// to wait indefinitely.
func (c *Connection) waitForIdle(incoming <-chan string, readErr <-chan error) bool {
	if !c.resetDeadline() {
		return true
	}

	notify := make(chan []string, 1)
	token := c.idleRegistry.Register(c.ctx.Session, func(subsystems []string) {
		notify <- subsystems
	})
	defer c.idleRegistry.Unregister(token)

	for {
		select {
		case subsystems := <-notify:
			out := make([]string, 0, len(subsystems)+1)
			for _, s := range subsystems {
				out = append(out, "changed: "+s)
			}
			out = append(out, "OK")
			return c.writeLines(out) != nil

		case line, ok := <-incoming:
			if !ok {
				c.drainReadErr(readErr)
				return true
			}
			lines, pending, closeConn := c.dispatcher.HandleRequest(c.ctx, line)
			if closeConn {
				return true
			}
			if pending {
				// A second bare idle while already idle is rejected by the
				// idle gate before it ever reaches here; defensive only.
				continue
			}
			if lines != nil {
				if err := c.writeLines(lines); err != nil {
					return true
				}
			}
			return false

		case err := <-readErr:
			if err != nil && err != io.EOF {
				c.log.WithError(err).Debug("connection read error during idle")
			}
			return true
		}
	}
}

// readLoop decodes the socket into complete lines, split on \r?\n, and
// feeds them to incoming. It never applies the inactivity timer itself;
// Serve owns the deadline on the underlying net.Conn.
func (c *Connection) readLoop(incoming chan<- string, readErr chan<- error) {
	defer close(incoming)
	reader := bufio.NewReader(c.conn)
	for {
		raw, err := reader.ReadString('\n')
		if len(raw) > 0 {
			line := strings.TrimRight(raw, "\r\n")
			incoming <- line
		}
		if err != nil {
			readErr <- err
			return
		}
	}
}

func (c *Connection) drainReadErr(readErr <-chan error) {
	select {
	case err := <-readErr:
		if err != nil && err != io.EOF {
			c.log.WithError(err).Debug("connection read error")
		}
	default:
	}
}

// resetDeadline re-arms the inactivity timer unless the session is
// currently exempt (idle with PreventIdleTimeout set). Returns false if
// setting the deadline failed, meaning the socket is no longer usable.
func (c *Connection) resetDeadline() bool {
	if c.timeout <= 0 {
		return true
	}
	c.ctx.Session.mu.Lock()
	exempt := c.ctx.Session.PreventIdleTimeout
	c.ctx.Session.mu.Unlock()
	if exempt {
		return c.conn.SetDeadline(time.Time{}) == nil
	}
	return c.conn.SetDeadline(time.Now().Add(c.timeout)) == nil
}

func (c *Connection) writeLines(lines []string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(sanitizeEgress(l))
		b.WriteString(LineTerminator)
	}
	_, err := io.WriteString(c.conn, b.String())
	if err != nil {
		c.log.WithError(err).Debug("connection write error")
	}
	return err
}
