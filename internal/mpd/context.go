package mpd

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmars/mpdfrontd/internal/config"
	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// Context is the first argument to every command handler: it exposes the
// core API, configuration, URI map and per-session state, plus the browse
// helper used by the music-DB handlers.
type Context struct {
	Core    mpdcore.Core
	Config  *config.Config
	URIMap  *URIMap
	Session *Session
	Log     *logrus.Entry

	passwordHash []byte
}

// NewContext builds a request context for one connection. passwordHash may
// be nil if no password is configured.
func NewContext(core mpdcore.Core, cfg *config.Config, uriMap *URIMap, session *Session, log *logrus.Entry, passwordHash []byte) *Context {
	return &Context{
		Core:         core,
		Config:       cfg,
		URIMap:       uriMap,
		Session:      session,
		Log:          log,
		passwordHash: passwordHash,
	}
}

// CheckPassword compares candidate against the configured password. The
// secret is held as a bcrypt digest rather than plaintext; this changes
// only the in-memory representation, not the command's observable
// semantics (exact match of the one configured password succeeds).
func (c *Context) CheckPassword(candidate string) bool {
	if c.passwordHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.passwordHash, []byte(candidate)) == nil
}

// HashPassword hashes a plaintext password for storage in a Context.
func HashPassword(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
}

// BrowseEntry is one entry yielded by Browse: its virtual path plus the
// library Ref, whose Kind tells a track from a directory or playlist.
type BrowseEntry struct {
	Path string
	Ref  mpdcore.Ref
}

// Browse converts an MPD virtual path into a sequence of (virtual_path,
// ref) entries. It resolves each path segment by listing the parent's
// children from the core library, matches non-track refs by exact name,
// and inserts every visited entry into the URI map to establish a stable
// name. If recursive is true it performs a depth-first traversal, yielding
// directories before their children. Entries missing a name or URI are
// skipped. A missing intermediate segment returns NoExist("Not found").
func (c *Context) Browse(path string, recursive bool) ([]BrowseEntry, error) {
	path = strings.Trim(path, "/")
	segments := []string{}
	if path != "" {
		segments = strings.Split(path, "/")
	}

	uri := ""
	virtualPath := ""
	for _, seg := range segments {
		refs, err := c.Core.Library().Browse(context.Background(), uri)
		if err != nil {
			return nil, SystemError("", err)
		}
		found := false
		for _, r := range refs {
			if r.Name == seg && r.Kind != mpdcore.RefTrack {
				uri = r.URI
				found = true
				break
			}
		}
		if !found {
			return nil, NoExistError("", "Not found")
		}
		virtualPath = joinVirtual(virtualPath, seg)
		c.URIMap.Insert(virtualPath, uri, false)
	}

	refs, err := c.Core.Library().Browse(context.Background(), uri)
	if err != nil {
		return nil, SystemError("", err)
	}

	var out []BrowseEntry
	for _, r := range refs {
		if r.Name == "" || r.URI == "" {
			continue
		}
		childPath := joinVirtual(virtualPath, r.Name)
		c.URIMap.Insert(childPath, r.URI, false)

		if r.Kind == mpdcore.RefTrack {
			out = append(out, BrowseEntry{Path: childPath, Ref: r})
			continue
		}

		out = append(out, BrowseEntry{Path: childPath, Ref: r})
		if recursive {
			children, err := c.browseRecursive(childPath, r.URI)
			if err != nil {
				return nil, err
			}
			out = append(out, children...)
		}
	}

	return out, nil
}

func (c *Context) browseRecursive(virtualPath, uri string) ([]BrowseEntry, error) {
	refs, err := c.Core.Library().Browse(context.Background(), uri)
	if err != nil {
		return nil, SystemError("", err)
	}
	var out []BrowseEntry
	for _, r := range refs {
		if r.Name == "" || r.URI == "" {
			continue
		}
		childPath := joinVirtual(virtualPath, r.Name)
		c.URIMap.Insert(childPath, r.URI, false)
		out = append(out, BrowseEntry{Path: childPath, Ref: r})
		if r.Kind != mpdcore.RefTrack {
			children, err := c.browseRecursive(childPath, r.URI)
			if err != nil {
				return nil, err
			}
			out = append(out, children...)
		}
	}
	return out, nil
}

func joinVirtual(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
