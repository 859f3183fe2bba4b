package commands

import (
	"fmt"
	"strings"

	"github.com/lexisother/TurnipBeams/internal/command"
	"github.com/lexisother/TurnipBeams/internal/permission"
)

func init() {
	root := &command.Node{
		Description: "Show or change this server's command prefix",
		Usage:       "prefix [set <...>]",
		Run: func(ctx *command.CallContext) error {
			return ctx.Send(fmt.Sprintf("My prefix here is `%s`.", ctx.Prefix))
		},
	}
	root.Sub("set", &command.Node{
		Description: "Set a new prefix",
		Permission:  command.Level(permission.LevelAdministrator),
		Template:    "Usage: `{prefix}prefix set <...>`",
		Any: &command.AnySlot{Rest: &command.RestLeaf{
			Description: "The new prefix",
			Run: func(ctx *command.CallContext) error {
				rest, _ := ctx.RestArg()
				prefix := strings.TrimSpace(rest.Str)
				if prefix == "" || len(prefix) > 8 {
					return ctx.Send("Give me a prefix between 1 and 8 characters.")
				}
				if err := ctx.Storage.SetPrefix(ctx.GuildID, prefix); err != nil {
					return err
				}
				return ctx.Send(fmt.Sprintf("Prefix changed to `%s`.", prefix))
			},
		}},
	})

	command.Register("prefix", root)
}
