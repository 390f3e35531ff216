package mpd

import "fmt"

// Kind is an MPD ACK error code, see musicpd.org's protocol reference.
type Kind int

const (
	KindNotList    Kind = 1
	KindArg        Kind = 2
	KindPassword   Kind = 3
	KindPermission Kind = 4
	KindUnknown    Kind = 5

	KindNoExist       Kind = 50
	KindPlaylistMax   Kind = 51
	KindSystem        Kind = 52
	KindPlaylistLoad  Kind = 53
	KindUpdateAlready Kind = 54
	KindPlayerSync    Kind = 55
	KindExist         Kind = 56

	// The following have no MPD wire code of their own; they exist so
	// handlers can report a distinguishable condition while still producing
	// a well-formed ACK. InvalidPlaylistName reuses Arg's code (2), the
	// others are sent as 0.
	KindNotImplemented           Kind = 0
	KindDisabled                 Kind = 0
	KindInvalidPlaylistName      Kind = 2
	KindInvalidTrackForPlaylist  Kind = 0
	KindFailedToSavePlaylist     Kind = 0
)

// AckError is the error type every MPD command handler communicates failure
// through. The dispatcher's outermost filter catches it and renders it as
// the single-line ACK response.
type AckError struct {
	Kind    Kind
	Message string
	Index   int
	Command string
	cause   error
}

func (e *AckError) Error() string {
	return fmt.Sprintf("ACK [%d@%d] {%s} %s", e.Kind, e.Index, e.Command, e.Message)
}

func (e *AckError) Unwrap() error { return e.cause }

// WireLine renders the exact ACK line sent to the client.
func (e *AckError) WireLine() string {
	return e.Error()
}

func newAck(kind Kind, command, message string) *AckError {
	return &AckError{Kind: kind, Command: command, Message: message}
}

// ErrCloseSession is a sentinel returned by the dispatcher when the
// connection must be closed silently: a non-noidle request arriving while
// a session is idle, or the "close" command. It never produces a wire
// line.
var ErrCloseSession = fmt.Errorf("mpd: close session")

// ArgError reports a malformed or missing argument.
func ArgError(command, message string) *AckError {
	return newAck(KindArg, command, message)
}

// WrongArgCount reports a handler called with the wrong number of tokens.
func WrongArgCount(command string) *AckError {
	return newAck(KindArg, command, fmt.Sprintf("wrong number of arguments for %q", command))
}

// PasswordError reports an incorrect password.
func PasswordError(command, message string) *AckError {
	return newAck(KindPassword, command, message)
}

// PermissionError reports a privileged command used before authentication.
func PermissionError(command string) *AckError {
	return newAck(KindPermission, command, fmt.Sprintf("you don't have permission for %q", command))
}

// UnknownCommandError reports an unregistered command name. Per the
// reference implementation the command field is left empty in the ACK line.
func UnknownCommandError(command string) *AckError {
	return newAck(KindUnknown, "", fmt.Sprintf("unknown command %q", command))
}

// NoCommandError reports an empty request line reaching the handler.
func NoCommandError() *AckError {
	return newAck(KindUnknown, "", "No command given")
}

// NoExistError reports a missing track, playlist, directory or tlid.
func NoExistError(command, message string) *AckError {
	return newAck(KindNoExist, command, message)
}

// ExistError reports a name collision (e.g. saving over an existing
// playlist name without overwrite semantics).
func ExistError(command, message string) *AckError {
	return newAck(KindExist, command, message)
}

// SystemError wraps an unexpected failure from the core.
func SystemError(command string, cause error) *AckError {
	e := newAck(KindSystem, command, cause.Error())
	e.cause = cause
	return e
}

// NotImplementedError reports protocol surface area this server
// acknowledges but does not implement (stickers, channels, mounts, ...).
func NotImplementedError(command string) *AckError {
	return newAck(KindNotImplemented, command, "Not implemented")
}

// DisabledError reports a command refused because it is blacklisted.
func DisabledError(command string) *AckError {
	return newAck(KindDisabled, command, fmt.Sprintf("%q has been disabled in the server", command))
}

// InvalidPlaylistNameError reports a playlist name containing '/', '\n' or '\r'.
func InvalidPlaylistNameError(command string) *AckError {
	return newAck(KindInvalidPlaylistName, command,
		"playlist name is invalid: playlist names may not contain slashes, newlines or carriage returns")
}

// InvalidTrackForPlaylistError reports a track whose URI scheme the target
// playlist's backend cannot store.
func InvalidTrackForPlaylistError(command, playlistScheme, trackScheme string) *AckError {
	return newAck(KindInvalidTrackForPlaylist, command,
		fmt.Sprintf("Playlist with scheme %q can't store track scheme %q", playlistScheme, trackScheme))
}

// FailedToSavePlaylistError reports a playlist backend that rejected a save.
func FailedToSavePlaylistError(command, backendScheme string) *AckError {
	return newAck(KindFailedToSavePlaylist, command,
		fmt.Sprintf("Backend with scheme %q failed to save playlist", backendScheme))
}
