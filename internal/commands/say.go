package commands

import (
	"github.com/lexisother/TurnipBeams/internal/command"
	"github.com/lexisother/TurnipBeams/internal/permission"
)

func init() {
	command.Register("say", &command.Node{
		Description: "Make the bot repeat something",
		Usage:       "say <...>",
		Template:    "Tell me what to say: `{prefix}say <...>`",
		Any: &command.AnySlot{Rest: &command.RestLeaf{
			Description: "The text to repeat",
			Permission:  command.Level(permission.LevelModerator),
			Run: func(ctx *command.CallContext) error {
				rest, _ := ctx.RestArg()
				return ctx.Send(rest.Str)
			},
		}},
	}, "echo")
}
