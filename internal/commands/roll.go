package commands

import (
	"fmt"
	"math/rand"

	"github.com/lexisother/TurnipBeams/internal/command"
)

func init() {
	command.Register("roll", &command.Node{
		Description: "Roll a die with the given number of sides",
		Usage:       "roll <number>",
		Template:    "Usage: `{prefix}roll <number>`",
		NumberArg: &command.Node{
			Run: func(ctx *command.CallContext) error {
				sides, _ := ctx.Number(0)
				if sides < 1 {
					return ctx.Send("Give me a number of sides greater than zero.")
				}
				result := rand.Intn(int(sides)) + 1
				return ctx.Send(fmt.Sprintf("🎲 You rolled a %d (1-%d).", result, int(sides)))
			},
		},
	}, "dice")
}
