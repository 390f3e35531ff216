package mpd

// RegisterAll populates a fresh registry with every command this server
// implements, grouped the way the protocol's own sections are: connection,
// status/idle, playback control, current playlist, stored playlists, music
// database, audio output, reflection, and the explicitly out-of-scope
// surface that still needs a clean ACK.
func RegisterAll() *Registry {
	r := NewRegistry()
	registerConnectionCommands(r)
	registerStatusCommands(r)
	registerPlaybackCommands(r)
	registerTracklistCommands(r)
	registerStoredPlaylistCommands(r)
	registerMusicDBCommands(r)
	registerOutputCommands(r)
	registerReflectionCommands(r)
	registerNonGoalCommands(r)
	return r
}
