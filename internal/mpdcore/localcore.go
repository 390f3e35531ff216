package mpdcore

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"
	"github.com/sirupsen/logrus"
)

// LocalCore is the reference Core implementation: an in-memory tracklist
// over a filesystem-scanned music library. It drives no real audio
// hardware — played/paused/stopped transitions are bookkeeping plus a
// ticking clock, not sent to any sink, since the wire protocol
// is this repository's subject, not audio I/O.
type LocalCore struct {
	log *logrus.Entry

	mu        sync.RWMutex
	library   []Track // flat index, scanned once at startup
	rootURI   string  // file:// URI of the scanned music directory
	byURI     map[string]*Track
	playlists map[string]*Playlist // keyed by URI

	tracklist []TlTrack
	nextTlid  int
	version   int
	changeLog []tlChange

	repeat, random, single, consume bool

	state        PlayState
	currentIndex int // index into tracklist, -1 if none
	startedAt    time.Time
	pausedAt     time.Time
	elapsedAtPause time.Duration
	streamTitle  string

	volume int // -1 if unset

	outputs []Output

	events  chan Event
	startTime time.Time
	dbUpdate  int64
}

type tlChange struct {
	version int
	track   TlTrack
}

// NewLocalCore scans musicDir (non-recursive errors are logged and
// skipped) and returns a ready reference core with one synthetic output.
func NewLocalCore(musicDir string, log *logrus.Entry) *LocalCore {
	c := &LocalCore{
		log:          log,
		byURI:        make(map[string]*Track),
		playlists:    make(map[string]*Playlist),
		currentIndex: -1,
		volume:       -1,
		events:       make(chan Event, 64),
		startTime:    time.Now(),
		outputs:      []Output{{ID: 0, Name: "default", Enabled: true}},
	}
	if musicDir != "" {
		c.rootURI = "file://" + filepath.Clean(musicDir)
		c.scan(musicDir)
	}
	return c
}

func (c *LocalCore) scan(dir string) {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			c.log.WithError(err).WithField("path", path).Warn("library scan error")
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !isSupportedAudioExt(filepath.Ext(path)) {
			return nil
		}
		track := trackFromFile(path)
		c.library = append(c.library, track)
		c.byURI[track.URI] = &c.library[len(c.library)-1]
		return nil
	})
	if err != nil {
		c.log.WithError(err).Warn("library scan aborted")
	}
	c.dbUpdate = time.Now().Unix()
}

var supportedAudioExt = map[string]bool{
	".mp3": true, ".flac": true, ".ogg": true, ".m4a": true, ".wav": true,
}

func isSupportedAudioExt(ext string) bool {
	return supportedAudioExt[strings.ToLower(ext)]
}

func trackFromFile(path string) Track {
	uri := "file://" + path
	track := Track{
		URI:          uri,
		Name:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		LastModified: time.Now(),
	}
	if info, err := os.Stat(path); err == nil {
		track.LastModified = info.ModTime()
	}

	f, err := os.Open(path)
	if err != nil {
		return track
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return track
	}
	if m.Title() != "" {
		track.Name = m.Title()
	}
	if m.Artist() != "" {
		track.Artists = []string{m.Artist()}
	}
	if m.Album() != "" {
		track.Album = Album{Name: m.Album()}
	}
	if m.Genre() != "" {
		track.Genre = m.Genre()
	}
	if num, _ := m.Track(); num != 0 {
		track.TrackNo = num
	}
	if disc, _ := m.Disc(); disc != 0 {
		track.DiscNo = disc
	}
	return track
}

func (c *LocalCore) emit(kind EventKind) {
	select {
	case c.events <- Event{Kind: kind}:
	default:
		c.log.Warn("event channel full, dropping event")
	}
}

// Events implements Core.
func (c *LocalCore) Events() <-chan Event { return c.events }

// Tracklist implements Core.
func (c *LocalCore) Tracklist() Tracklist { return (*localTracklist)(c) }

// Playback implements Core.
func (c *LocalCore) Playback() Playback { return (*localPlayback)(c) }

// Mixer implements Core.
func (c *LocalCore) Mixer() Mixer { return (*localMixer)(c) }

// Library implements Core.
func (c *LocalCore) Library() Library { return (*localLibrary)(c) }

// Playlists implements Core.
func (c *LocalCore) Playlists() Playlists { return (*localPlaylists)(c) }

// Outputs implements Core.
func (c *LocalCore) Outputs() Outputs { return (*localOutputs)(c) }

type localTracklist LocalCore

func (t *localTracklist) core() *LocalCore { return (*LocalCore)(t) }

func (t *localTracklist) Add(ctx context.Context, uris []string, atPosition *int) ([]TlTrack, error) {
	c := t.core()
	c.mu.Lock()
	defer c.mu.Unlock()

	var added []TlTrack
	for _, uri := range uris {
		track, ok := c.byURI[uri]
		if !ok {
			continue
		}
		tl := TlTrack{Tlid: c.nextTlid, Track: *track}
		c.nextTlid++
		if atPosition != nil && *atPosition <= len(c.tracklist) {
			pos := *atPosition
			c.tracklist = append(c.tracklist, TlTrack{})
			copy(c.tracklist[pos+1:], c.tracklist[pos:])
			c.tracklist[pos] = tl
		} else {
			c.tracklist = append(c.tracklist, tl)
		}
		added = append(added, tl)
	}
	c.bumpVersionLocked(added...)
	c.emit(EventTracklistChanged)
	return added, nil
}

func (c *LocalCore) bumpVersionLocked(added ...TlTrack) {
	c.version++
	for _, tl := range added {
		c.changeLog = append(c.changeLog, tlChange{version: c.version, track: tl})
	}
	const maxChangeLog = 1000
	if len(c.changeLog) > maxChangeLog {
		c.changeLog = c.changeLog[len(c.changeLog)-maxChangeLog:]
	}
}

func (t *localTracklist) Remove(ctx context.Context, rng Range) error {
	c := t.core()
	c.mu.Lock()
	defer c.mu.Unlock()
	start, stop := clampRange(rng, len(c.tracklist))
	if start >= stop {
		return nil
	}
	c.tracklist = append(c.tracklist[:start], c.tracklist[stop:]...)
	c.bumpVersionLocked()
	c.emit(EventTracklistChanged)
	return nil
}

func (t *localTracklist) RemoveByTlid(ctx context.Context, tlids []int) error {
	c := t.core()
	c.mu.Lock()
	defer c.mu.Unlock()
	want := make(map[int]bool, len(tlids))
	for _, id := range tlids {
		want[id] = true
	}
	out := c.tracklist[:0]
	for _, tl := range c.tracklist {
		if !want[tl.Tlid] {
			out = append(out, tl)
		}
	}
	c.tracklist = out
	c.bumpVersionLocked()
	c.emit(EventTracklistChanged)
	return nil
}

func (t *localTracklist) Move(ctx context.Context, rng Range, to int) error {
	c := t.core()
	c.mu.Lock()
	defer c.mu.Unlock()
	start, stop := clampRange(rng, len(c.tracklist))
	if start >= stop || to < 0 || to > len(c.tracklist) {
		return nil
	}
	moved := append([]TlTrack(nil), c.tracklist[start:stop]...)
	rest := append(c.tracklist[:start:start], c.tracklist[stop:]...)
	if to > start {
		to -= stop - start
	}
	out := append([]TlTrack(nil), rest[:to]...)
	out = append(out, moved...)
	out = append(out, rest[to:]...)
	c.tracklist = out
	c.bumpVersionLocked()
	c.emit(EventTracklistChanged)
	return nil
}

func (t *localTracklist) MoveByTlid(ctx context.Context, tlid, to int) error {
	c := t.core()
	c.mu.RLock()
	pos := -1
	for i, tl := range c.tracklist {
		if tl.Tlid == tlid {
			pos = i
			break
		}
	}
	c.mu.RUnlock()
	if pos < 0 {
		return nil
	}
	return t.Move(ctx, Range{Start: pos, Stop: pos + 1}, to)
}

func (t *localTracklist) Clear(ctx context.Context) error {
	c := t.core()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracklist = nil
	c.currentIndex = -1
	c.state = StateStopped
	c.bumpVersionLocked()
	c.emit(EventTracklistChanged)
	return nil
}

func (t *localTracklist) Shuffle(ctx context.Context, rng Range) error {
	c := t.core()
	c.mu.Lock()
	defer c.mu.Unlock()
	start, stop := clampRange(rng, len(c.tracklist))
	section := c.tracklist[start:stop]
	for i := len(section) - 1; i > 0; i-- {
		j := pseudoRandIndex(i + 1)
		section[i], section[j] = section[j], section[i]
	}
	c.bumpVersionLocked()
	c.emit(EventTracklistChanged)
	return nil
}

// pseudoRandIndex avoids math/rand's global lock contention for the tiny
// shuffles this reference core performs; good enough for a stand-in core
// with no cryptographic requirement.
func pseudoRandIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return int(time.Now().UnixNano()) % n
}

func (t *localTracklist) Swap(ctx context.Context, posA, posB int) error {
	c := t.core()
	c.mu.Lock()
	defer c.mu.Unlock()
	if posA < 0 || posB < 0 || posA >= len(c.tracklist) || posB >= len(c.tracklist) {
		return nil
	}
	c.tracklist[posA], c.tracklist[posB] = c.tracklist[posB], c.tracklist[posA]
	c.bumpVersionLocked()
	c.emit(EventTracklistChanged)
	return nil
}

func (t *localTracklist) SwapByTlid(ctx context.Context, tlidA, tlidB int) error {
	c := t.core()
	c.mu.RLock()
	a, b := -1, -1
	for i, tl := range c.tracklist {
		if tl.Tlid == tlidA {
			a = i
		}
		if tl.Tlid == tlidB {
			b = i
		}
	}
	c.mu.RUnlock()
	if a < 0 || b < 0 {
		return nil
	}
	return t.Swap(ctx, a, b)
}

func (t *localTracklist) Index(ctx context.Context, tlid *int) (int, bool) {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if tlid == nil {
		return 0, false
	}
	for i, tl := range c.tracklist {
		if tl.Tlid == *tlid {
			return i, true
		}
	}
	return 0, false
}

func (t *localTracklist) Get(ctx context.Context, tlid int) (TlTrack, bool) {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, tl := range c.tracklist {
		if tl.Tlid == tlid {
			return tl, true
		}
	}
	return TlTrack{}, false
}

func (t *localTracklist) Slice(ctx context.Context, rng Range) []TlTrack {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	start, stop := clampRange(rng, len(c.tracklist))
	out := make([]TlTrack, stop-start)
	copy(out, c.tracklist[start:stop])
	return out
}

func (t *localTracklist) Version(ctx context.Context) int {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (t *localTracklist) ChangesSince(ctx context.Context, version int) []TlTrack {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []TlTrack
	for _, ch := range c.changeLog {
		if ch.version > version {
			out = append(out, ch.track)
		}
	}
	return out
}

func (t *localTracklist) Length(ctx context.Context) int {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tracklist)
}

func (t *localTracklist) NextTlid(ctx context.Context) (int, bool) {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.currentIndex < 0 || c.currentIndex+1 >= len(c.tracklist) {
		return 0, false
	}
	return c.tracklist[c.currentIndex+1].Tlid, true
}

func (t *localTracklist) SetRepeat(ctx context.Context, v bool) error {
	c := t.core()
	c.mu.Lock()
	c.repeat = v
	c.mu.Unlock()
	c.emit(EventOptionsChanged)
	return nil
}

func (t *localTracklist) SetRandom(ctx context.Context, v bool) error {
	c := t.core()
	c.mu.Lock()
	c.random = v
	c.mu.Unlock()
	c.emit(EventOptionsChanged)
	return nil
}

func (t *localTracklist) SetSingle(ctx context.Context, v bool) error {
	c := t.core()
	c.mu.Lock()
	c.single = v
	c.mu.Unlock()
	c.emit(EventOptionsChanged)
	return nil
}

func (t *localTracklist) SetConsume(ctx context.Context, v bool) error {
	c := t.core()
	c.mu.Lock()
	c.consume = v
	c.mu.Unlock()
	c.emit(EventOptionsChanged)
	return nil
}

func (t *localTracklist) GetRepeat(ctx context.Context) bool {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.repeat
}

func (t *localTracklist) GetRandom(ctx context.Context) bool {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.random
}

func (t *localTracklist) GetSingle(ctx context.Context) bool {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.single
}

func (t *localTracklist) GetConsume(ctx context.Context) bool {
	c := t.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.consume
}

func clampRange(rng Range, length int) (int, int) {
	start, stop := rng.Start, rng.Stop
	if stop < 0 || stop > length {
		stop = length
	}
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if stop < start {
		stop = start
	}
	return start, stop
}

type localPlayback LocalCore

func (p *localPlayback) core() *LocalCore { return (*LocalCore)(p) }

func (p *localPlayback) PlayTlid(ctx context.Context, tlid *int) error {
	c := p.core()
	c.mu.Lock()
	if tlid == nil {
		if len(c.tracklist) == 0 {
			c.mu.Unlock()
			return nil
		}
		if c.currentIndex < 0 {
			c.currentIndex = 0
		}
	} else {
		found := -1
		for i, tl := range c.tracklist {
			if tl.Tlid == *tlid {
				found = i
				break
			}
		}
		if found < 0 {
			c.mu.Unlock()
			return nil
		}
		c.currentIndex = found
	}
	c.state = StatePlaying
	c.startedAt = time.Now()
	c.elapsedAtPause = 0
	c.mu.Unlock()
	c.emit(EventPlaybackStateChanged)
	return nil
}

func (p *localPlayback) PlayAt(ctx context.Context, position int) error {
	c := p.core()
	c.mu.RLock()
	if position < 0 || position >= len(c.tracklist) {
		c.mu.RUnlock()
		return nil
	}
	tlid := c.tracklist[position].Tlid
	c.mu.RUnlock()
	return p.PlayTlid(ctx, &tlid)
}

func (p *localPlayback) Pause(ctx context.Context) error {
	c := p.core()
	c.mu.Lock()
	if c.state == StatePlaying {
		c.elapsedAtPause += time.Since(c.startedAt)
		c.state = StatePaused
		c.pausedAt = time.Now()
	}
	c.mu.Unlock()
	c.emit(EventPlaybackStateChanged)
	return nil
}

func (p *localPlayback) Resume(ctx context.Context) error {
	c := p.core()
	c.mu.Lock()
	if c.state == StatePaused {
		c.state = StatePlaying
		c.startedAt = time.Now()
	}
	c.mu.Unlock()
	c.emit(EventPlaybackStateChanged)
	return nil
}

func (p *localPlayback) Stop(ctx context.Context) error {
	c := p.core()
	c.mu.Lock()
	c.state = StateStopped
	c.elapsedAtPause = 0
	c.mu.Unlock()
	c.emit(EventPlaybackStateChanged)
	return nil
}

func (p *localPlayback) Next(ctx context.Context) error {
	c := p.core()
	c.mu.Lock()
	if c.currentIndex+1 < len(c.tracklist) {
		c.currentIndex++
	} else if c.repeat {
		c.currentIndex = 0
	} else {
		c.state = StateStopped
		c.mu.Unlock()
		c.emit(EventPlaybackStateChanged)
		return nil
	}
	c.state = StatePlaying
	c.startedAt = time.Now()
	c.elapsedAtPause = 0
	c.mu.Unlock()
	c.emit(EventPlaybackStateChanged)
	return nil
}

func (p *localPlayback) Previous(ctx context.Context) error {
	c := p.core()
	c.mu.Lock()
	if c.currentIndex > 0 {
		c.currentIndex--
	}
	c.state = StatePlaying
	c.startedAt = time.Now()
	c.elapsedAtPause = 0
	c.mu.Unlock()
	c.emit(EventPlaybackStateChanged)
	return nil
}

func (p *localPlayback) Seek(ctx context.Context, positionMs int64) error {
	c := p.core()
	c.mu.Lock()
	c.elapsedAtPause = time.Duration(positionMs) * time.Millisecond
	c.startedAt = time.Now()
	c.mu.Unlock()
	c.emit(EventSeeked)
	return nil
}

func (p *localPlayback) SeekRelative(ctx context.Context, deltaMs int64) error {
	cur := p.TimePosition(ctx)
	return p.Seek(ctx, cur+deltaMs)
}

func (p *localPlayback) State(ctx context.Context) PlayState {
	c := p.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (p *localPlayback) CurrentTlTrack(ctx context.Context) *TlTrack {
	c := p.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.currentIndex < 0 || c.currentIndex >= len(c.tracklist) {
		return nil
	}
	tl := c.tracklist[c.currentIndex]
	return &tl
}

func (p *localPlayback) TimePosition(ctx context.Context) int64 {
	c := p.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	elapsed := c.elapsedAtPause
	if c.state == StatePlaying {
		elapsed += time.Since(c.startedAt)
	}
	return elapsed.Milliseconds()
}

func (p *localPlayback) StreamTitle(ctx context.Context) string {
	c := p.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.streamTitle
}

type localMixer LocalCore

func (m *localMixer) core() *LocalCore { return (*LocalCore)(m) }

func (m *localMixer) GetVolume(ctx context.Context) int {
	c := m.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.volume
}

func (m *localMixer) SetVolume(ctx context.Context, volume int) error {
	c := m.core()
	c.mu.Lock()
	c.volume = volume
	c.mu.Unlock()
	c.emit(EventVolumeChanged)
	return nil
}

type localLibrary LocalCore

func (l *localLibrary) core() *LocalCore { return (*LocalCore)(l) }

func (l *localLibrary) Browse(ctx context.Context, uri string) ([]Ref, error) {
	c := l.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if uri == "" {
		uri = c.rootURI
	}
	prefix := strings.TrimSuffix(uri, "/") + "/"
	seenDirs := make(map[string]bool)
	var refs []Ref
	for _, t := range c.library {
		if !strings.HasPrefix(t.URI, prefix) {
			continue
		}
		rest := strings.TrimPrefix(t.URI, prefix)
		if idx := strings.Index(rest, "/"); idx >= 0 {
			dir := rest[:idx]
			if !seenDirs[dir] {
				seenDirs[dir] = true
				refs = append(refs, Ref{URI: prefix + dir, Name: dir, Kind: RefDirectory})
			}
			continue
		}
		refs = append(refs, Ref{URI: t.URI, Name: t.Name, Kind: RefTrack})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (l *localLibrary) Lookup(ctx context.Context, uris []string) ([]Track, error) {
	c := l.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Track
	for _, uri := range uris {
		if t, ok := c.byURI[uri]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (l *localLibrary) Find(ctx context.Context, filter []FilterExpr) ([]Track, error) {
	return l.matchFilter(filter, true)
}

func (l *localLibrary) Search(ctx context.Context, filter []FilterExpr) ([]Track, error) {
	return l.matchFilter(filter, false)
}

func (l *localLibrary) matchFilter(filter []FilterExpr, exact bool) ([]Track, error) {
	c := l.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Track
	for _, t := range c.library {
		if matchesAll(t, filter, exact) {
			out = append(out, t)
		}
	}
	return out, nil
}

func matchesAll(t Track, filter []FilterExpr, exact bool) bool {
	for _, f := range filter {
		if !matchesOne(t, f, exact) {
			return false
		}
	}
	return true
}

func matchesOne(t Track, f FilterExpr, exact bool) bool {
	field := fieldValue(t, f.Tag)
	var result bool
	switch f.Op {
	case FilterNotEquals:
		result = !strings.EqualFold(field, f.Value)
	case FilterContains, FilterNotContains:
		result = strings.Contains(strings.ToLower(field), strings.ToLower(f.Value))
		if f.Op == FilterNotContains {
			result = !result
		}
	case FilterMatches, FilterNotMatches:
		result = strings.Contains(strings.ToLower(field), strings.ToLower(f.Value))
		if f.Op == FilterNotMatches {
			result = !result
		}
	default: // FilterEquals and the search/find default comparison
		if exact {
			result = strings.EqualFold(field, f.Value)
		} else {
			result = strings.Contains(strings.ToLower(field), strings.ToLower(f.Value))
		}
	}
	if f.Negated {
		result = !result
	}
	return result
}

func fieldValue(t Track, tag string) string {
	switch strings.ToLower(tag) {
	case "artist":
		if len(t.Artists) > 0 {
			return t.Artists[0]
		}
		return ""
	case "album":
		return t.Album.Name
	case "title":
		return t.Name
	case "genre":
		return t.Genre
	case "date":
		return t.Date
	default:
		return ""
	}
}

func (l *localLibrary) Refresh(ctx context.Context, uri string) error {
	c := l.core()
	c.mu.Lock()
	c.dbUpdate = time.Now().Unix()
	c.mu.Unlock()
	return nil
}

func (l *localLibrary) Stats(ctx context.Context) LibraryStats {
	c := l.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	artists := make(map[string]bool)
	albums := make(map[string]bool)
	var playtime int64
	for _, t := range c.library {
		for _, a := range t.Artists {
			artists[a] = true
		}
		if t.Album.Name != "" {
			albums[t.Album.Name] = true
		}
		playtime += t.LengthMs / 1000
	}
	return LibraryStats{
		Artists:    len(artists),
		Albums:     len(albums),
		Songs:      len(c.library),
		DBPlaytime: playtime,
		DBUpdate:   c.dbUpdate,
	}
}

type localPlaylists LocalCore

func (p *localPlaylists) core() *LocalCore { return (*LocalCore)(p) }

func (p *localPlaylists) AsList(ctx context.Context) []Ref {
	c := p.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Ref
	for _, pl := range c.playlists {
		out = append(out, Ref{URI: pl.URI, Name: pl.Name, Kind: RefPlaylist})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *localPlaylists) Lookup(ctx context.Context, uri string) (*Playlist, error) {
	c := p.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	pl, ok := c.playlists[uri]
	if !ok {
		return nil, nil
	}
	cp := *pl
	return &cp, nil
}

func (p *localPlaylists) Create(ctx context.Context, name string) (*Playlist, error) {
	c := p.core()
	c.mu.Lock()
	uri := "playlist://" + name
	pl := &Playlist{URI: uri, Name: name, LastModified: time.Now()}
	c.playlists[uri] = pl
	c.mu.Unlock()
	c.emit(EventPlaylistsLoaded)
	cp := *pl
	return &cp, nil
}

func (p *localPlaylists) Save(ctx context.Context, playlist *Playlist) error {
	c := p.core()
	c.mu.Lock()
	playlist.LastModified = time.Now()
	cp := *playlist
	c.playlists[playlist.URI] = &cp
	c.mu.Unlock()
	c.emit(EventPlaylistChanged)
	return nil
}

func (p *localPlaylists) Delete(ctx context.Context, uri string) error {
	c := p.core()
	c.mu.Lock()
	delete(c.playlists, uri)
	c.mu.Unlock()
	c.emit(EventPlaylistDeleted)
	return nil
}

type localOutputs LocalCore

func (o *localOutputs) core() *LocalCore { return (*LocalCore)(o) }

func (o *localOutputs) List(ctx context.Context) []Output {
	c := o.core()
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Output, len(c.outputs))
	copy(out, c.outputs)
	return out
}

func (o *localOutputs) SetEnabled(ctx context.Context, id int, enabled bool) error {
	c := o.core()
	c.mu.Lock()
	found := false
	for i := range c.outputs {
		if c.outputs[i].ID == id {
			c.outputs[i].Enabled = enabled
			found = true
		}
	}
	c.mu.Unlock()
	if !found {
		return nil
	}
	c.emit(EventMuteChanged)
	return nil
}

// Uptime reports process uptime in seconds, for the `stats` command.
func (c *LocalCore) Uptime() int64 {
	return int64(time.Since(c.startTime).Seconds())
}
