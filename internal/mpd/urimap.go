package mpd

import (
	"fmt"
	"strings"
	"sync"
)

// invalidBrowseChars are stripped from browse entry names before they are
// made unique; MPD names cannot carry newlines since the wire protocol is
// line-oriented.
const invalidBrowseChars = "\n\r"

// invalidPlaylistChars are stripped from stored-playlist names; names double
// as relative filesystem paths in backends that persist playlists, so a
// slash would escape the playlist directory.
const invalidPlaylistChars = "/"

// URIMap is the process-wide, bidirectional mapping between MPD-safe names
// and backend URIs used for browse listings and stored playlists. Every
// name is unique across both the browse and playlist namespaces.
type URIMap struct {
	mu               sync.RWMutex
	uriByName        map[string]string
	browseNameByURI  map[string]string
	playlistNameByURI map[string]string
}

// NewURIMap returns an empty URI map.
func NewURIMap() *URIMap {
	return &URIMap{
		uriByName:         make(map[string]string),
		browseNameByURI:   make(map[string]string),
		playlistNameByURI: make(map[string]string),
	}
}

// Insert registers a name/URI pair, resolving collisions by appending
// " [2]", " [3]", ... until unique, unless the colliding name is already
// mapped to the same URI (idempotent reuse). Returns the name actually
// stored.
func (m *URIMap) Insert(name, uri string, playlist bool) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if playlist {
		name = stripChars(name, invalidPlaylistChars)
	} else {
		name = stripChars(name, invalidBrowseChars)
	}

	unique := m.uniqueNameLocked(name, uri)
	m.uriByName[unique] = uri
	if playlist {
		m.playlistNameByURI[uri] = unique
	} else {
		m.browseNameByURI[uri] = unique
	}
	return unique
}

func (m *URIMap) uniqueNameLocked(name, uri string) string {
	if existing, ok := m.uriByName[name]; !ok || existing == uri {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s [%d]", name, i)
		if existing, ok := m.uriByName[candidate]; !ok || existing == uri {
			return candidate
		}
	}
}

// URIFromName resolves any previously inserted name back to its URI.
func (m *URIMap) URIFromName(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uri, ok := m.uriByName[name]
	return uri, ok
}

// PlaylistNameFromURI resolves a stored-playlist URI to its mapped name.
func (m *URIMap) PlaylistNameFromURI(uri string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.playlistNameByURI[uri]
	return name, ok
}

// PlaylistURIFromName resolves a stored-playlist name to its URI.
func (m *URIMap) PlaylistURIFromName(name string) (string, bool) {
	return m.URIFromName(name)
}

// BrowseNameFromURI resolves a browse entry URI to its mapped name.
func (m *URIMap) BrowseNameFromURI(uri string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.browseNameByURI[uri]
	return name, ok
}

func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}
