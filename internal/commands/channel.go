package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/lexisother/TurnipBeams/internal/command"
)

func init() {
	target := &command.Node{
		Run: channelSummary,
	}
	target.Sub("topic", &command.Node{
		Description: "Show the channel topic",
		Run: func(ctx *command.CallContext) error {
			channel, _ := ctx.ChannelArg(0)
			if channel.Topic == "" {
				return ctx.Send("That channel has no topic.")
			}
			return ctx.Send(channel.Topic)
		},
	})

	command.Register("channel", &command.Node{
		Description: "Inspect a channel",
		Usage:       "channel <channel> [topic]",
		Template:    "Point me at a channel: `{prefix}channel <channel>`",
		ChannelArg:  target,
	})
}

func channelSummary(ctx *command.CallContext) error {
	channel, ok := ctx.ChannelArg(0)
	if !ok {
		return fmt.Errorf("no channel argument resolved")
	}
	kind := "text"
	if channel.Type == discordgo.ChannelTypeGuildVoice {
		kind = "voice"
	}
	nsfw := ""
	if channel.NSFW {
		nsfw = ", NSFW"
	}
	return ctx.Send(fmt.Sprintf("**#%s** (%s%s) — ID `%s`", channel.Name, kind, nsfw, channel.ID))
}
