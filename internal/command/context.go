package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/lexisother/TurnipBeams/internal/storage"
)

// Resolver fetches platform entities by extracted ID. Every method returns
// either the entity or an error whose text is a user-facing not-found message
// passed through dispatch verbatim.
type Resolver interface {
	ChannelByID(id string) (*discordgo.Channel, error)
	MessageByID(channelID, messageID string) (*discordgo.Message, error)
	UserByID(id string) (*discordgo.User, error)
	RoleByID(guildID, id string) (*discordgo.Role, error)
	GuildByID(id string) (*discordgo.Guild, error)
}

// ArgKind tags the variant held by an Arg.
type ArgKind int

const (
	ArgString ArgKind = iota
	ArgNumber
	ArgChannel
	ArgRole
	ArgMessage
	ArgUser
	ArgGuild
	ArgRest
)

// Arg is one typed value resolved during descent. Kind selects which field
// is populated. For ArgRest, Str holds the space-joined remainder and Rest
// the original token list.
type Arg struct {
	Kind    ArgKind
	Str     string
	Num     float64
	Channel *discordgo.Channel
	Role    *discordgo.Role
	Message *discordgo.Message
	User    *discordgo.User
	Guild   *discordgo.Guild
	Rest    []string
}

// CallContext carries the invocation environment plus the typed values
// accumulated during descent, in descent order. Created fresh per message.
type CallContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Storage *storage.Storage

	Author  *discordgo.User
	Member  *discordgo.Member
	GuildID string
	Channel *discordgo.Channel

	Prefix string
	Level  int

	// LevelName renders a permission level for gate messages.
	LevelName func(level int) string

	Resolver Resolver

	// Send delivers a response to the invoking channel.
	Send func(content string) error

	Args []Arg
}

func (c *CallContext) push(arg Arg) {
	c.Args = append(c.Args, arg)
}

// Number returns the n-th resolved numeric argument (0-based), in descent
// order.
func (c *CallContext) Number(n int) (float64, bool) {
	return argAt(c, n, ArgNumber).Num, hasArgAt(c, n, ArgNumber)
}

// UserArg returns the n-th resolved user argument.
func (c *CallContext) UserArg(n int) (*discordgo.User, bool) {
	return argAt(c, n, ArgUser).User, hasArgAt(c, n, ArgUser)
}

// ChannelArg returns the n-th resolved channel argument.
func (c *CallContext) ChannelArg(n int) (*discordgo.Channel, bool) {
	return argAt(c, n, ArgChannel).Channel, hasArgAt(c, n, ArgChannel)
}

// RoleArg returns the n-th resolved role argument.
func (c *CallContext) RoleArg(n int) (*discordgo.Role, bool) {
	return argAt(c, n, ArgRole).Role, hasArgAt(c, n, ArgRole)
}

// RestArg returns the rest argument, if the walk ended in a rest leaf.
func (c *CallContext) RestArg() (Arg, bool) {
	for _, a := range c.Args {
		if a.Kind == ArgRest {
			return a, true
		}
	}
	return Arg{}, false
}

func argAt(c *CallContext, n int, kind ArgKind) Arg {
	for _, a := range c.Args {
		if a.Kind == kind {
			if n == 0 {
				return a
			}
			n--
		}
	}
	return Arg{}
}

func hasArgAt(c *CallContext, n int, kind ArgKind) bool {
	for _, a := range c.Args {
		if a.Kind == kind {
			if n == 0 {
				return true
			}
			n--
		}
	}
	return false
}
