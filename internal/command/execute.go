package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var errEmoteNotImplemented = errors.New("Emote arguments are not implemented yet.")

// Execute walks the node's tree against tokens, resolving each one to a typed
// value and finally firing the matched leaf. It returns nil when the command
// ran (or was intentionally silent) and an error whose text is the user-facing
// message otherwise. Nothing escapes past this boundary: lookup failures,
// gate rejections and handler failures all come back as message errors.
func (n *Node) Execute(tokens []string, ctx *CallContext, acc *Accumulator) error {
	// Metadata overrides apply before any token is consumed, so a zero-arg
	// invocation still reflects this node's rules.
	n.applyMeta(acc)
	acc.Args = tokens

	if len(tokens) == 0 {
		if !n.hasAction() {
			return noMatch(acc)
		}
		return runLeaf(ctx, acc, n.Template, n.Run)
	}

	head, rest := tokens[0], tokens[1:]

	// Branches are tried in priority order; the first match wins. A lookup
	// that fails aborts the whole walk with the resolver's message.
	if sub, ok := n.Lookup(head); ok {
		acc.Symbolic = append(acc.Symbolic, head)
		return sub.Execute(rest, ctx, acc)
	}

	if n.ChannelArg != nil {
		if m := channelMentionRe.FindStringSubmatch(head); m != nil {
			channel, err := ctx.Resolver.ChannelByID(m[1])
			if err != nil {
				return err
			}
			ctx.push(Arg{Kind: ArgChannel, Channel: channel})
			acc.Symbolic = append(acc.Symbolic, "<channel>")
			return n.ChannelArg.Execute(rest, ctx, acc)
		}
	}

	if n.MessageArg != nil {
		if m := messageLinkRe.FindStringSubmatch(head); m != nil {
			message, err := ctx.Resolver.MessageByID(m[1], m[2])
			if err != nil {
				return err
			}
			ctx.push(Arg{Kind: ArgMessage, Message: message})
			acc.Symbolic = append(acc.Symbolic, "<message>")
			return n.MessageArg.Execute(rest, ctx, acc)
		}
	}

	if n.UserArg != nil {
		if m := userMentionRe.FindStringSubmatch(head); m != nil {
			user, err := ctx.Resolver.UserByID(m[1])
			if err != nil {
				return err
			}
			ctx.push(Arg{Kind: ArgUser, User: user})
			acc.Symbolic = append(acc.Symbolic, "<user>")
			return n.UserArg.Execute(rest, ctx, acc)
		}
	}

	if n.RoleArg != nil {
		if m := roleMentionRe.FindStringSubmatch(head); m != nil {
			role, err := resolveRole(ctx, m[1])
			if err != nil {
				return err
			}
			ctx.push(Arg{Kind: ArgRole, Role: role})
			acc.Symbolic = append(acc.Symbolic, "<role>")
			return n.RoleArg.Execute(rest, ctx, acc)
		}
	}

	if n.EmoteArg != nil && emoteRe.MatchString(head) {
		return errEmoteNotImplemented
	}

	if n.IDArg != nil && snowflakeRe.MatchString(head) {
		arg, err := resolveID(ctx, n.IDArgKind, head)
		if err != nil {
			return err
		}
		ctx.push(arg)
		acc.Symbolic = append(acc.Symbolic, "<id>")
		return n.IDArg.Execute(rest, ctx, acc)
	}

	if n.NumberArg != nil {
		if value, ok := parseNumber(head); ok {
			ctx.push(Arg{Kind: ArgNumber, Num: value, Str: head})
			acc.Symbolic = append(acc.Symbolic, "<number>")
			return n.NumberArg.Execute(rest, ctx, acc)
		}
	}

	if n.Any != nil && n.Any.Node != nil {
		ctx.push(Arg{Kind: ArgString, Str: head})
		acc.Symbolic = append(acc.Symbolic, strconv.Quote(head))
		return n.Any.Node.Execute(rest, ctx, acc)
	}

	if n.Any != nil && n.Any.Rest != nil {
		// The popped token goes back in front: the rest leaf sees the whole
		// remainder, both joined and as the original token list.
		all := tokens
		leaf := n.Any.Rest
		leaf.applyMeta(acc)
		acc.Symbolic = append(acc.Symbolic, "<...>")
		ctx.push(Arg{Kind: ArgRest, Str: strings.Join(all, " "), Rest: all})
		return runLeaf(ctx, acc, leaf.Template, leaf.Run)
	}

	acc.Symbolic = append(acc.Symbolic, strconv.Quote(head))
	return noMatch(acc)
}

func noMatch(acc *Accumulator) error {
	return fmt.Errorf("No valid command sequence: `%s`", acc.CommandLine())
}

// runLeaf gates and fires a terminal action. Handler failures (including
// panics) are logged with the command header, raw args and detail, then
// converted into a user-facing message.
func runLeaf(ctx *CallContext, acc *Accumulator, template string, handler Handler) error {
	if err := CanExecute(ctx, acc); err != nil {
		return err
	}

	if template != "" {
		author := ""
		if ctx.Author != nil {
			author = ctx.Author.Mention()
		}
		response := Substitute(template, TemplateVars{
			Author:  author,
			Prefix:  ctx.Prefix,
			Command: ctx.Prefix + acc.CommandLine(),
		}, template)
		if err := ctx.Send(response); err != nil {
			return handlerFailure(acc, err)
		}
		return nil
	}

	if err := safeRun(handler, ctx); err != nil {
		return handlerFailure(acc, err)
	}
	return nil
}

func handlerFailure(acc *Accumulator, err error) error {
	log.Error().
		Str("command", acc.Header).
		Strs("args", acc.OriginalArgs).
		Err(err).
		Msg("Command handler failed")
	return fmt.Errorf("Something went wrong while running `%s`: %v", acc.Header, err)
}

func safeRun(handler Handler, ctx *CallContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(ctx)
}

func resolveRole(ctx *CallContext, id string) (*discordgo.Role, error) {
	if ctx.GuildID == "" {
		return nil, errors.New("Role arguments can only be used in a server.")
	}
	return ctx.Resolver.RoleByID(ctx.GuildID, id)
}

// resolveID dispatches a bare snowflake to the fetch matching the branch's
// declared kind.
func resolveID(ctx *CallContext, kind IDKind, id string) (Arg, error) {
	switch kind {
	case IDChannel:
		channel, err := ctx.Resolver.ChannelByID(id)
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgChannel, Channel: channel}, nil
	case IDMessage:
		message, err := ctx.Resolver.MessageByID(ctx.channelID(), id)
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgMessage, Message: message}, nil
	case IDUser:
		user, err := ctx.Resolver.UserByID(id)
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgUser, User: user}, nil
	case IDRole:
		role, err := resolveRole(ctx, id)
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgRole, Role: role}, nil
	case IDServer:
		guild, err := ctx.Resolver.GuildByID(id)
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgGuild, Guild: guild}, nil
	default: // IDEmote
		return Arg{}, errEmoteNotImplemented
	}
}

func (c *CallContext) channelID() string {
	if c.Channel != nil {
		return c.Channel.ID
	}
	if c.Event != nil {
		return c.Event.ChannelID
	}
	return ""
}
