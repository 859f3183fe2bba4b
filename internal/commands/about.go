package commands

import (
	"fmt"

	"github.com/lexisother/TurnipBeams/internal/command"
	"github.com/lexisother/TurnipBeams/internal/version"
)

func init() {
	command.Register("about", &command.Node{
		Description: "Show what this bot is and how to talk to it",
		Usage:       "about",
		Template: fmt.Sprintf(
			"Hey {author}, I'm %s (%s). My prefix here is `{prefix}` — try `{prefix}help` to see what I can do.",
			version.AppName, version.Version,
		),
	})
}
