package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/buildkite/shellwords"

	burnguard "github.com/goliatone/go-burnguard"
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
}

// Reply delivers one line of output to the invoking actor.
type Reply func(string)

// Handler executes a command.
type Handler func(*Context)

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
type Context struct {
	Ctx     context.Context
	Actor   burnguard.Actor
	Raw     string
	Input   string
	Args    []string
	Command *Command
	reply   Reply
}

// Reply sends a line back to the actor. It is a no-op without a reply sink.
func (c *Context) Reply(line string) {
	if c == nil || c.reply == nil {
		return
	}
	c.reply(line)
}

// Replyf formats and sends a line back to the actor.
func (c *Context) Replyf(format string, args ...any) {
	c.Reply(fmt.Sprintf(format, args...))
}

// Arg returns the i-th argument or "".
func (c *Context) Arg(i int) string {
	if c == nil || i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Router maps command names and aliases to handlers.
type Router struct {
	mu       sync.RWMutex
	registry map[string]*Command
	ordered  []*Command
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{registry: make(map[string]*Command)}
}

// Define registers a command. It panics when metadata is incomplete or a name
// duplicates an existing command.
func (r *Router) Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	def.Name = normalizeName(def.Name)
	if def.Name == "" {
		panic("commands: command must have a name")
	}

	cmd := &Command{Definition: def, Handler: handler}

	r.mu.Lock()
	defer r.mu.Unlock()

	registerName := func(name string) {
		key := normalizeName(name)
		if _, exists := r.registry[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q", name))
		}
		r.registry[key] = cmd
	}

	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	r.ordered = append(r.ordered, cmd)
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].Name < r.ordered[j].Name
	})
	return cmd
}

// Lookup finds a command by name or alias, ignoring case and a leading slash.
func (r *Router) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.registry[normalizeName(name)]
	return cmd, ok
}

// All returns the registered commands sorted by primary name.
func (r *Router) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Dispatch splits line with POSIX shell rules, looks up the command and runs
// it. The bool reports whether a command matched; an error is returned only
// when line cannot be split.
func (r *Router) Dispatch(ctx context.Context, actor burnguard.Actor, line string, reply Reply) (bool, error) {
	parts, err := shellwords.SplitPosix(line)
	if err != nil {
		return false, fmt.Errorf("commands: parse %q: %w", line, err)
	}
	return r.Run(ctx, actor, parts, line, reply), nil
}

// Run executes an already split command line.
func (r *Router) Run(ctx context.Context, actor burnguard.Actor, parts []string, raw string, reply Reply) bool {
	if len(parts) == 0 {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cmd, ok := r.Lookup(parts[0])
	if !ok {
		return false
	}
	cmd.Handler(&Context{
		Ctx:     ctx,
		Actor:   actor,
		Raw:     raw,
		Input:   parts[0],
		Args:    append([]string(nil), parts[1:]...),
		Command: cmd,
		reply:   reply,
	})
	return true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}
