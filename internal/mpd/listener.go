package mpd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cmars/mpdfrontd/internal/config"
	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// Listener owns the bound socket (TCP, UNIX, or one inherited from a
// service manager) and turns each accepted connection into a Connection
// bound to a shared dispatcher, idle registry and core.
type Listener struct {
	ln       net.Listener
	unixPath string

	core         mpdcore.Core
	cfg          *config.Config
	uriMap       *URIMap
	dispatcher   *Dispatcher
	idleRegistry *IdleRegistry
	passwordHash []byte
	log          *logrus.Entry

	mu     sync.Mutex
	active map[net.Conn]struct{}
}

// NewListener binds the socket named by cfg.Hostname/cfg.Port (or an
// inherited "mpd" socket from the service manager, if present) and returns
// a Listener ready for Serve.
func NewListener(cfg *config.Config, core mpdcore.Core, uriMap *URIMap, dispatcher *Dispatcher, idleRegistry *IdleRegistry, passwordHash []byte, log *logrus.Entry) (*Listener, error) {
	l := &Listener{
		core:         core,
		cfg:          cfg,
		uriMap:       uriMap,
		dispatcher:   dispatcher,
		idleRegistry: idleRegistry,
		passwordHash: passwordHash,
		log:          log,
		active:       make(map[net.Conn]struct{}),
	}

	if ln, ok := getInheritedSocket("mpd"); ok {
		l.ln = ln
		log.Info("listening on socket inherited from service manager")
		return l, nil
	}

	if path, ok := unixSocketPath(cfg.Hostname); ok {
		os.Remove(path)
		ln, err := net.Listen("unix", path)
		if err != nil {
			return nil, fmt.Errorf("listen unix %s: %w", path, err)
		}
		l.ln = ln
		l.unixPath = path
		log.WithField("path", path).Info("listening on unix socket")
		return l, nil
	}

	addr := net.JoinHostPort(formatHostname(cfg.Hostname), strconv.Itoa(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen tcp %s: %w", addr, err)
	}
	l.ln = ln
	log.WithField("addr", ln.Addr().String()).Info("listening")
	return l, nil
}

// unixSocketPath recognizes the "unix:/absolute/path" hostname form.
func unixSocketPath(hostname string) (string, bool) {
	if !strings.HasPrefix(hostname, "unix:") {
		return "", false
	}
	return strings.TrimPrefix(hostname, "unix:"), true
}

// formatHostname maps the configured hostname to the literal net.Listen
// accepts. "any" or empty binds every interface, letting Go's "tcp" network
// pick IPv6 dual-stack when the platform supports it. An IPv4 literal is
// rewritten into its IPv4-in-IPv6 form so a single dual-stack listener can
// still accept it.
func formatHostname(hostname string) string {
	if hostname == "" || hostname == "any" {
		return ""
	}
	if ip := net.ParseIP(hostname); ip != nil && ip.To4() != nil {
		return "::ffff:" + hostname
	}
	return hostname
}

// getInheritedSocket looks for a socket-activation style handoff: an
// fd count in LISTEN_FDS, one name per fd in colon-separated LISTEN_FDNAMES
// (conventionally starting at fd 3), and returns the one named name.
func getInheritedSocket(name string) (net.Listener, bool) {
	count, err := strconv.Atoi(os.Getenv("LISTEN_FDS"))
	if err != nil || count <= 0 {
		return nil, false
	}
	names := strings.Split(os.Getenv("LISTEN_FDNAMES"), ":")
	for i := 0; i < count; i++ {
		fdName := "mpd"
		if i < len(names) && names[i] != "" {
			fdName = names[i]
		}
		if fdName != name {
			continue
		}
		file := os.NewFile(uintptr(3+i), fdName)
		ln, err := net.FileListener(file)
		if err != nil {
			return nil, false
		}
		return ln, true
	}
	return nil, false
}

// Serve accepts connections until ctx is cancelled or the listener socket
// is closed. Each accepted connection gets its own goroutine and a fresh
// Session; MaxConnections bounds how many run concurrently.
func (l *Listener) Serve(ctx context.Context) {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			l.log.WithError(err).Warn("accept error")
			return
		}

		l.mu.Lock()
		full := l.cfg.MaxConnections > 0 && len(l.active) >= l.cfg.MaxConnections
		if !full {
			l.active[conn] = struct{}{}
		}
		l.mu.Unlock()

		if full {
			l.log.Warnf("Rejected connection from %s: Maximum connections exceeded", conn.RemoteAddr())
			conn.Close()
			continue
		}

		go l.serve(conn)
	}
}

func (l *Listener) serve(conn net.Conn) {
	defer func() {
		l.mu.Lock()
		delete(l.active, conn)
		l.mu.Unlock()
	}()

	noPassword := l.cfg.Password == "" && l.cfg.PasswordHash == ""
	session := NewSession(noPassword)
	reqCtx := NewContext(l.core, l.cfg, l.uriMap, session, l.log, l.passwordHash)
	timeout := time.Duration(l.cfg.ConnectionTimeoutSeconds) * time.Second
	NewConnection(conn, reqCtx, l.dispatcher, l.idleRegistry, timeout, l.log).Serve()
}

// Close stops accepting, closes the listening socket, unlinks any UNIX
// socket path, and closes every live connection so Serve's goroutines
// unwind promptly instead of waiting out their next read.
func (l *Listener) Close() error {
	err := l.ln.Close()
	if l.unixPath != "" {
		os.Remove(l.unixPath)
	}

	l.mu.Lock()
	conns := make([]net.Conn, 0, len(l.active))
	for c := range l.active {
		conns = append(conns, c)
	}
	l.mu.Unlock()
	for _, c := range conns {
		c.Close()
	}
	return err
}

// Addr returns the bound address, useful for tests that bind to port 0.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}
