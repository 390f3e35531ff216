package mpd

import (
	"strings"
)

// Dispatcher runs one request line through the filter chain: command-list
// buffering, tokenizing, command lookup and auth, idle gate, command-list
// eligibility, blacklist, handler invocation, then OK appending. Any
// AckError raised along the way is rendered as the single ACK line.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher builds a dispatcher over a populated command registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// HandleRequest processes one raw request line. It returns the response
// lines (data lines plus the trailing OK/ACK; nil if the request was a
// "noidle" outside idle, a command-list opener or buffered list line, or a
// bare "idle" with nothing yet to report), whether the caller must now
// block this connection on the idle registry until a matching event or
// "noidle" arrives, and whether the connection must be closed outright (an
// idle violation, or the "close" command).
func (d *Dispatcher) HandleRequest(ctx *Context, line string) (lines []string, pending bool, closeConn bool) {
	return d.dispatch(ctx, line, nil)
}

func (d *Dispatcher) dispatch(ctx *Context, line string, index *int) ([]string, bool, bool) {
	lines, pending, err := d.runChain(ctx, line, index)
	if err != nil {
		if err == ErrCloseSession {
			return nil, false, true
		}
		if ack, ok := err.(*AckError); ok {
			if index != nil {
				ack.Index = *index
			}
			return []string{ack.WireLine()}, false, false
		}
		sysErr := SystemError("", err)
		return []string{sysErr.WireLine()}, false, false
	}
	return lines, pending, false
}

// runChain applies command-list -> auth -> idle-gate -> handler, appending
// OK on success. It is the single place that knows the chain order.
func (d *Dispatcher) runChain(ctx *Context, line string, index *int) ([]string, bool, error) {
	session := ctx.Session

	// Command-list filter: buffering state takes priority over everything
	// else, including auth, since the reference implementation buffers the
	// raw line unconditionally while collecting.
	trimmed := strings.TrimSpace(line)
	if session.CommandListMode != CommandListOff {
		switch trimmed {
		case "command_list_end":
			lines, err := d.replayCommandList(ctx)
			return lines, false, err
		default:
			session.Buffered = append(session.Buffered, line)
			return nil, false, nil
		}
	}

	tokens, err := Tokenize(line)
	if err != nil {
		return nil, false, err
	}
	if len(tokens) == 0 {
		return nil, false, NoCommandError()
	}
	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	// Auth filter. This must subsume the unknown-command check: an
	// unauthenticated client gets Permission for an unrecognized name too,
	// the same as the reference implementation's dispatcher, which raises
	// permission whenever the looked-up command is falsy. Only once the
	// session is authenticated does a missing command become Unknown.
	cmd, ok := d.registry.Lookup(name)
	if !ok {
		if !session.Authenticated {
			return nil, false, PermissionError(name)
		}
		return nil, false, UnknownCommandError(name)
	}
	if !session.Authenticated && cmd.AuthRequired {
		return nil, false, PermissionError(name)
	}

	// Idle gate: while idle, only noidle is permitted; anything else
	// closes the session outright.
	if session.IsIdle() && name != "noidle" {
		return nil, false, ErrCloseSession
	}

	// A command list can never legally contain idle itself.
	if index != nil && !cmd.Listable {
		return nil, false, ArgError(name, "not able to execute in a command list")
	}

	// A noidle outside idle is a no-op with no response at all.
	if name == "noidle" && !session.IsIdle() {
		return nil, false, nil
	}

	// Command blacklist.
	if ctx.Config != nil && ctx.Config.IsBlacklisted(name) {
		return nil, false, DisabledError(name)
	}

	result, err := cmd.Call(ctx, args)
	if err != nil {
		return nil, false, err
	}

	if name == "idle" && result == nil {
		return nil, true, nil
	}

	if cmd.Silent {
		return nil, false, nil
	}

	lines := FormatLines(result, session.TagTypes)
	lines = append(lines, "OK")
	return lines, false, nil
}

// replayCommandList executes the buffered requests in order, assigning an
// incrementing index to each, concatenating their responses with each
// sub-response's trailing OK stripped (and followed by list_OK when the list
// was opened with command_list_ok_begin), then appends one final OK. Any ACK
// aborts the list immediately and is the terminal response.
func (d *Dispatcher) replayCommandList(ctx *Context) ([]string, error) {
	session := ctx.Session
	withListOK := session.CommandListMode == CommandListCollectingOK
	buffered := session.EndCommandList()
	defer func() { session.CommandListIndex = nil }()

	var out []string
	for i, reqLine := range buffered {
		idx := i
		session.CommandListIndex = &idx
		lines, _, err := d.runChain(ctx, reqLine, &idx)
		if err != nil {
			if err == ErrCloseSession {
				return nil, ErrCloseSession
			}
			if ack, ok := err.(*AckError); ok {
				ack.Index = idx
				return []string{ack.WireLine()}, nil
			}
			return nil, err
		}
		if len(lines) > 0 && lines[len(lines)-1] == "OK" {
			lines = lines[:len(lines)-1]
		}
		out = append(out, lines...)
		if withListOK {
			out = append(out, "list_OK")
		}
	}
	out = append(out, "OK")
	return out, nil
}
