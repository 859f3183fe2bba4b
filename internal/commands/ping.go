package commands

import "github.com/lexisother/TurnipBeams/internal/command"

func init() {
	command.Register("ping", &command.Node{
		Description: "Check that the bot is alive",
		Usage:       "ping",
		Template:    "pong",
	}, "pong")
}
