package bot

import (
	"github.com/bwmarrin/discordgo"

	"truckbook/internal/service"
)

// Commands returns the slash commands in the bot's language. The reset
// command is hidden from members without the Administrator permission.
func Commands(msgs service.Messages) []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	dmAllowed := false
	return []*discordgo.ApplicationCommand{
		{
			Name:        msgs.RosterCommand,
			Description: msgs.RosterCommandDescription,
		},
		{
			Name:                     msgs.ResetCommand,
			Description:              msgs.ResetCommandDescription,
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &dmAllowed,
		},
	}
}
