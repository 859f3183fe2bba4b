// Package permission maps a Discord caller onto the bot's ordered permission
// levels. The level a command requires is carried by the command tree; this
// package only answers "what level does this caller hold" and "what is that
// level called".
package permission

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/lexisother/TurnipBeams/internal/config"
	"github.com/lexisother/TurnipBeams/internal/storage"
)

const (
	LevelUser = iota
	LevelModerator
	LevelAdministrator
	LevelServerOwner
	LevelDeveloper
)

var names = map[int]string{
	LevelUser:          "User",
	LevelModerator:     "Moderator",
	LevelAdministrator: "Administrator",
	LevelServerOwner:   "Server Owner",
	LevelDeveloper:     "Bot Developer",
}

// Name returns the display name of a permission level.
func Name(level int) string {
	if name, ok := names[level]; ok {
		return name
	}
	return fmt.Sprintf("Level %d", level)
}

// Validate warns about a misconfigured level table. Called once at startup.
func Validate() {
	if len(names) == 0 {
		log.Warn().Msg("Permission level table is empty; every caller resolves to level 0")
	}
}

// Resolve determines the caller's permission level. Outside a guild the
// caller is a plain user (the developer keeps their level everywhere).
func Resolve(cfg *config.Config, store *storage.Storage, s *discordgo.Session, author *discordgo.User, member *discordgo.Member, guildID string) int {
	if author != nil && cfg.DeveloperID != "" && author.ID == cfg.DeveloperID {
		return LevelDeveloper
	}
	if guildID == "" || member == nil {
		return LevelUser
	}

	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			guild = nil
		}
	}
	if guild != nil && author != nil && guild.OwnerID == author.ID {
		return LevelServerOwner
	}

	level := LevelUser

	grants, err := store.RoleLevels(guildID, LevelDeveloper)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("Failed to load role grants")
		grants = nil
	}

	for _, roleID := range member.Roles {
		if granted, ok := grants[roleID]; ok && granted > level {
			level = granted
		}
		role, _ := s.State.Role(guildID, roleID)
		if role != nil && role.Permissions&discordgo.PermissionAdministrator != 0 && level < LevelAdministrator {
			level = LevelAdministrator
		}
	}

	return level
}
