package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lexisother/TurnipBeams/internal/command"
	"github.com/lexisother/TurnipBeams/internal/version"
)

func init() {
	command.Register("help", &command.Node{
		Description: "List commands, or describe one command path",
		Usage:       "help [command] [<channel>|<number>|<id>|<...>...]",
		Run:         helpOverview,
		Any: &command.AnySlot{Rest: &command.RestLeaf{
			Description: "A command name followed by argument markers",
			Run:         helpDetail,
		}},
	}, "h")
}

func helpOverview(ctx *command.CallContext) error {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s commands** (prefix `%s`)\n", version.AppName, ctx.Prefix)
	for _, named := range command.All() {
		line := fmt.Sprintf("`%s%s`", ctx.Prefix, named.Node.Name())
		if desc := named.Node.Description; desc != "" {
			line += " — " + desc
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\nUse `%shelp <command>` for details.", ctx.Prefix)
	return ctx.Send(b.String())
}

// helpDetail resolves a command path of names and placeholder markers
// (e.g. `help channel <channel>`) and renders the introspection result.
func helpDetail(ctx *command.CallContext) error {
	rest, _ := ctx.RestArg()
	tokens := rest.Rest

	header := strings.ToLower(tokens[0])
	named, ok := command.Lookup(header)
	if !ok {
		return ctx.Send(fmt.Sprintf("I don't know a command called `%s`.", tokens[0]))
	}

	info, err := named.Node.ResolveInfo(tokens[1:], named.Node.Name())
	if err != nil {
		// User-facing resolution error, not a handler failure.
		return ctx.Send(err.Error())
	}

	return ctx.Send(renderInfo(ctx, named, info))
}

func renderInfo(ctx *command.CallContext, named *command.Named, info *command.Info) string {
	var b strings.Builder

	path := named.Node.Name()
	if len(info.Trail) > 0 {
		path += " " + strings.Join(info.Trail, " ")
	}
	fmt.Fprintf(&b, "**`%s%s`**\n", ctx.Prefix, path)

	if info.Description != "" {
		b.WriteString(info.Description + "\n")
	}
	if info.Usage != "" {
		fmt.Fprintf(&b, "Usage: `%s%s`\n", ctx.Prefix, info.Usage)
	}
	if len(named.Aliases) > 0 && len(info.Trail) == 0 {
		fmt.Fprintf(&b, "Aliases: `%s`\n", strings.Join(named.Aliases, "`, `"))
	}

	fmt.Fprintf(&b, "Requires: **%s**, %s channel", ctx.LevelName(info.Permission), info.Channel)
	if info.NSFW {
		b.WriteString(", NSFW only")
	}
	b.WriteString("\n")

	if info.Rest != nil {
		b.WriteString("Takes the rest of the line as one argument.\n")
		return strings.TrimRight(b.String(), "\n")
	}

	if len(info.Subcommands) > 0 {
		names := make([]string, 0, len(info.Subcommands))
		for name := range info.Subcommands {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "Subcommands: `%s`\n", strings.Join(names, "`, `"))
	}
	if len(info.Branches) > 0 {
		fmt.Fprintf(&b, "Arguments: `%s`\n", strings.Join(info.Branches, "`, `"))
	}

	return strings.TrimRight(b.String(), "\n")
}
