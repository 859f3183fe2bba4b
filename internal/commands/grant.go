package commands

import (
	"fmt"

	"github.com/lexisother/TurnipBeams/internal/command"
	"github.com/lexisother/TurnipBeams/internal/permission"
)

func init() {
	// The level node is shared between the role-mention branch and the
	// bare-ID branch, so both spellings land on the same leaf.
	level := &command.Node{
		Run: func(ctx *command.CallContext) error {
			role, ok := ctx.RoleArg(0)
			if !ok {
				return fmt.Errorf("no role argument resolved")
			}
			granted, _ := ctx.Number(0)
			levelInt := int(granted)
			if float64(levelInt) != granted || levelInt < permission.LevelUser || levelInt > permission.LevelAdministrator {
				return ctx.Send(fmt.Sprintf("Levels go from %d (%s) to %d (%s).",
					permission.LevelUser, permission.Name(permission.LevelUser),
					permission.LevelAdministrator, permission.Name(permission.LevelAdministrator)))
			}
			if err := ctx.Storage.SetRoleLevel(ctx.GuildID, role.ID, levelInt); err != nil {
				return err
			}
			return ctx.Send(fmt.Sprintf("Members with **%s** now hold the **%s** permission level.",
				role.Name, permission.Name(levelInt)))
		},
	}

	role := &command.Node{
		Template:  "Now give me a level: `{prefix}grant <role> <number>`",
		NumberArg: level,
	}

	command.Register("grant", &command.Node{
		Description: "Map a role onto a permission level",
		Usage:       "grant <role> <number>",
		Permission:  command.Level(permission.LevelServerOwner),
		Template:    "Usage: `{prefix}grant <role> <number>`",
		RoleArg:     role,
		IDArg:       role,
		IDArgKind:   command.IDRole,
	})
}
