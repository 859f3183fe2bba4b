// Package command implements the command tree: a declarative description of
// each command as a terminal action plus typed branches, walked at runtime to
// turn a raw token list into a permission-checked handler call. The same tree
// answers help/usage queries through a structurally parallel introspection
// walk (see info.go).
package command

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ChannelType restricts where a leaf may run.
type ChannelType int

const (
	ChannelText ChannelType = iota
	ChannelDM
)

func (t ChannelType) String() string {
	if t == ChannelDM {
		return "direct message"
	}
	return "text"
}

// IDKind declares what a bare-ID branch resolves its token into.
type IDKind int

const (
	IDChannel IDKind = iota
	IDRole
	IDEmote
	IDMessage
	IDUser
	IDServer
)

// Handler runs a fully resolved leaf with the accumulated call context.
type Handler func(ctx *CallContext) error

// Node is one unit of the command tree. Metadata fields are inheritance
// overrides: nil means "use the parent's resolved value". Topology is built
// once at startup and read-only afterwards.
//
// A node is a leaf when it carries an action (Template or Run); it may at the
// same time carry branches, in which case the action fires only when the
// token list is exhausted at this node.
type Node struct {
	Description string
	Usage       string

	Permission *int
	NSFW       *bool
	Channel    *ChannelType

	// Leaf action: a response template (substituted and sent) or a handler.
	// Template wins when both are set.
	Template string
	Run      Handler

	// Typed single-slot branches, at most one per kind.
	ChannelArg *Node
	RoleArg    *Node
	EmoteArg   *Node
	MessageArg *Node
	UserArg    *Node
	IDArg      *Node
	IDArgKind  IDKind
	NumberArg  *Node
	Any        *AnySlot

	subs map[string]*Node

	name  string
	bound bool
}

// AnySlot is the terminal "any" branch: exactly one of Node (keep matching
// token by token) or Rest (swallow the whole remainder) is set.
type AnySlot struct {
	Node *Node
	Rest *RestLeaf
}

// RestLeaf is a terminal action that consumes all remaining tokens as one
// joined string. It carries its own metadata overrides but never branches.
type RestLeaf struct {
	Description string

	Permission *int
	NSFW       *bool
	Channel    *ChannelType

	Template string
	Run      Handler
}

// Level, Flag and In build metadata override pointers for node literals.
func Level(v int) *int              { return &v }
func Flag(v bool) *bool             { return &v }
func In(v ChannelType) *ChannelType { return &v }

// Bind assigns the node's canonical name. A node is bound exactly once, when
// it is attached to the tree; a second bind is a definition bug and is
// rejected so the earlier binding stays authoritative.
func (n *Node) Bind(name string) error {
	if n.bound {
		return fmt.Errorf("command node already bound as %q", n.name)
	}
	n.name = name
	n.bound = true
	return nil
}

// Name returns the canonical name the node was bound under. Reading the name
// of an unbound node is a definition bug.
func (n *Node) Name() string {
	if !n.bound {
		panic("command: Name called on unbound node")
	}
	return n.name
}

// Bound reports whether the node has been attached under a canonical name.
func (n *Node) Bound() bool { return n.bound }

// Sub attaches child under name plus any aliases. Every key references the
// same child, so metadata edits are visible through all of them. Colliding
// names are a non-fatal definition warning; the earlier binding wins.
func (n *Node) Sub(name string, child *Node, aliases ...string) *Node {
	if n.subs == nil {
		n.subs = make(map[string]*Node)
	}
	if err := child.Bind(name); err != nil {
		log.Warn().Str("name", name).Msg(err.Error())
	}
	for _, key := range append([]string{name}, aliases...) {
		if prev, exists := n.subs[key]; exists {
			log.Warn().Str("name", key).Str("kept", prev.Name()).
				Msg("Subcommand name collision; keeping earlier binding")
			continue
		}
		n.subs[key] = child
	}
	return n
}

// Lookup returns the subcommand registered under name or alias.
func (n *Node) Lookup(name string) (*Node, bool) {
	child, ok := n.subs[name]
	return child, ok
}

// Subcommands returns the direct subcommand map with aliases folded out: only
// entries whose key is the child's canonical name remain.
func (n *Node) Subcommands() map[string]*Node {
	out := make(map[string]*Node, len(n.subs))
	for key, child := range n.subs {
		if child.Bound() && child.name == key {
			out[key] = child
		}
	}
	return out
}

// hasAction reports whether the node can terminate a walk by itself.
func (n *Node) hasAction() bool {
	return n.Template != "" || n.Run != nil
}

// applyMeta copies the node's overrides onto the accumulator. Each field is
// applied independently before any token is consumed, so deeper overrides win
// by being applied later in the same walk.
func (n *Node) applyMeta(acc *Accumulator) {
	applyMeta(acc, n.Permission, n.NSFW, n.Channel)
}

func (r *RestLeaf) applyMeta(acc *Accumulator) {
	applyMeta(acc, r.Permission, r.NSFW, r.Channel)
}

func applyMeta(acc *Accumulator, perm *int, nsfw *bool, channel *ChannelType) {
	if perm != nil {
		acc.Permission = *perm
	}
	if nsfw != nil {
		acc.NSFW = *nsfw
	}
	if channel != nil {
		acc.Channel = *channel
	}
}
