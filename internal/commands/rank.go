package commands

import (
	"fmt"

	"github.com/lexisother/TurnipBeams/internal/command"
)

func init() {
	command.Register("rank", &command.Node{
		Description: "Show your permission level",
		Usage:       "rank",
		Run: func(ctx *command.CallContext) error {
			return ctx.Send(fmt.Sprintf("You hold the **%s** permission level.", ctx.LevelName(ctx.Level)))
		},
	}, "level")
}
