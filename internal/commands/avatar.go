package commands

import (
	"fmt"

	"github.com/lexisother/TurnipBeams/internal/command"
)

func init() {
	command.Register("avatar", &command.Node{
		Description: "Show your avatar, or someone else's",
		Usage:       "avatar [<user>]",
		Run: func(ctx *command.CallContext) error {
			return ctx.Send(ctx.Author.AvatarURL("512"))
		},
		UserArg: &command.Node{
			Run: func(ctx *command.CallContext) error {
				user, ok := ctx.UserArg(0)
				if !ok {
					return fmt.Errorf("no user argument resolved")
				}
				return ctx.Send(user.AvatarURL("512"))
			},
		},
	}, "pfp")
}
