package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// sessionResolver implements command.Resolver over a live session, state
// cache first and REST as fallback. Error text is user-facing: it is sent
// verbatim when a command argument cannot be resolved.
type sessionResolver struct {
	s *discordgo.Session
}

func (r *sessionResolver) ChannelByID(id string) (*discordgo.Channel, error) {
	channel, err := r.s.State.Channel(id)
	if err == nil {
		return channel, nil
	}
	channel, err = r.s.Channel(id)
	if err != nil {
		return nil, fmt.Errorf("Could not find a channel with ID `%s`.", id)
	}
	return channel, nil
}

func (r *sessionResolver) MessageByID(channelID, messageID string) (*discordgo.Message, error) {
	message, err := r.s.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, fmt.Errorf("Could not find message `%s` in channel `%s`.", messageID, channelID)
	}
	return message, nil
}

func (r *sessionResolver) UserByID(id string) (*discordgo.User, error) {
	user, err := r.s.User(id)
	if err != nil {
		return nil, fmt.Errorf("Could not find a user with ID `%s`.", id)
	}
	return user, nil
}

func (r *sessionResolver) RoleByID(guildID, id string) (*discordgo.Role, error) {
	role, err := r.s.State.Role(guildID, id)
	if err == nil && role != nil {
		return role, nil
	}
	roles, err := r.s.GuildRoles(guildID)
	if err == nil {
		for _, role := range roles {
			if role.ID == id {
				return role, nil
			}
		}
	}
	return nil, fmt.Errorf("Could not find a role with ID `%s` on this server.", id)
}

func (r *sessionResolver) GuildByID(id string) (*discordgo.Guild, error) {
	guild, err := r.s.State.Guild(id)
	if err != nil {
		return nil, fmt.Errorf("Could not find a server with ID `%s`.", id)
	}
	return guild, nil
}
