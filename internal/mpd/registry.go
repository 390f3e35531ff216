package mpd

import "fmt"

// Converter turns one raw argument token into a typed value, as described
// in §4.E (INT/UINT/FLOAT/UFLOAT/BOOL/RANGE).
type Converter func(string) (any, error)

// Param describes one named, positional handler argument.
type Param struct {
	Name     string
	Convert  Converter
	Optional bool
	Default  any
}

// Handler is the function a command dispatches to, after arity checking and
// conversion. Args are positional, in registration order; a variadic
// command receives its converted tail tokens as args, one entry per token.
type Handler func(ctx *Context, args []any) (Result, error)

// Command is a registered, immutable command definition.
type Command struct {
	Name         string
	AuthRequired bool
	Listable     bool
	Silent       bool // true: never formats a result or appends OK (command_list_begin/ok_begin)
	Params       []Param
	Variadic     *Param // non-nil means the final positional is a variadic tail
	Run          Handler
}

// Registry is the process-wide table of name -> Command.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// RegisterOption mutates a Command at registration time.
type RegisterOption func(*Command)

// NoAuth marks a command as usable before authentication (e.g. "password",
// "ping", "close").
func NoAuth(c *Command) { c.AuthRequired = false }

// NotListable excludes a command from command-list batching (e.g. "noidle",
// "kill" in the reference implementation).
func NotListable(c *Command) { c.Listable = false }

// Silent marks a command as producing no response of its own: the dispatcher
// neither formats its result nor appends OK. Used by command_list_begin and
// command_list_ok_begin, which must open buffering silently and defer any
// reply until command_list_end replays the buffered requests.
func Silent(c *Command) { c.Silent = true }

// WithParams sets the command's required/optional positional parameters.
func WithParams(params ...Param) RegisterOption {
	return func(c *Command) { c.Params = params }
}

// WithVariadic sets the command's variadic tail parameter. A command may
// have either positionals or a variadic tail, never both.
func WithVariadic(p Param) RegisterOption {
	return func(c *Command) { c.Variadic = &p }
}

// Register adds a command under a lowercase name. Registering the same name
// twice is a programming error and panics, matching the reference
// implementation's load-time assertion.
func (r *Registry) Register(name string, run Handler, opts ...RegisterOption) {
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("mpd: command %q registered twice", name))
	}
	c := &Command{Name: name, AuthRequired: true, Listable: true, Run: run}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.Params) > 0 && c.Variadic != nil {
		panic(fmt.Sprintf("mpd: command %q declares both positionals and a variadic tail", name))
	}
	r.commands[name] = c
}

// Lookup returns the registered command, if any.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Bind converts raw argument tokens against a command's declared params,
// enforcing arity. It does not invoke the handler.
func (c *Command) Bind(args []string) ([]any, error) {
	if c.Variadic != nil {
		out := make([]any, 0, len(args))
		for _, a := range args {
			v, err := c.Variadic.Convert(a)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	required := 0
	for _, p := range c.Params {
		if !p.Optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(c.Params) {
		return nil, WrongArgCount(c.Name)
	}

	out := make([]any, len(c.Params))
	for i, p := range c.Params {
		if i < len(args) {
			v, err := p.Convert(args[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		} else {
			out[i] = p.Default
		}
	}
	return out, nil
}

// Call converts args and invokes the handler in one step.
func (c *Command) Call(ctx *Context, args []string) (Result, error) {
	bound, err := c.Bind(args)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, bound)
}

// Converters usable directly as Param.Convert.
var (
	ConvInt = func(s string) (any, error) { return ConvertInt(s) }

	ConvUint = func(s string) (any, error) { return ConvertUint(s) }

	ConvFloat = func(s string) (any, error) { return ConvertFloat(s) }

	ConvUfloat = func(s string) (any, error) { return ConvertUfloat(s) }

	ConvBool = func(s string) (any, error) { return ConvertBool(s) }

	ConvRange = func(s string) (any, error) { return ConvertRange(s) }

	ConvString = func(s string) (any, error) { return s, nil }
)
