package command

import (
	"errors"
	"fmt"
)

// CanExecute checks the accumulated metadata against the invocation
// environment. It runs only when a terminal leaf is about to fire and returns
// the first applicable rejection, in this order: channel type, NSFW,
// permission level.
func CanExecute(ctx *CallContext, acc *Accumulator) error {
	inGuild := ctx.GuildID != "" && ctx.Member != nil

	switch acc.Channel {
	case ChannelText:
		if !inGuild {
			return errors.New("This command can only be used in a server text channel.")
		}
	case ChannelDM:
		if ctx.GuildID != "" {
			return errors.New("This command can only be used in direct messages.")
		}
	}

	// NSFW leaves run in DMs and in channels flagged NSFW, nowhere else.
	if acc.NSFW {
		isDM := ctx.GuildID == ""
		if !isDM && (ctx.Channel == nil || !ctx.Channel.NSFW) {
			return errors.New("This command can only be used in NSFW channels or direct messages.")
		}
	}

	if ctx.Level < acc.Permission {
		return fmt.Errorf("You need the %s permission level to use this command (you are %s).",
			ctx.levelName(acc.Permission), ctx.levelName(ctx.Level))
	}

	return nil
}

func (c *CallContext) levelName(level int) string {
	if c.LevelName != nil {
		return c.LevelName(level)
	}
	return fmt.Sprintf("Level %d", level)
}
