package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"truckbook/internal/entities"
	"truckbook/internal/service"
)

const (
	embedColor      = 0x00ADEF
	interactionWait = 2500 * time.Millisecond
)

// Responder is the part of *discordgo.Session the bot talks to.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

type Bot struct {
	session    Responder
	dispatcher *service.Dispatcher
	msgs       service.Messages
}

func New(session Responder, dispatcher *service.Dispatcher, msgs service.Messages) *Bot {
	return &Bot{session: session, dispatcher: dispatcher, msgs: msgs}
}

// RegisterCommands replaces the application's commands globally, or for one
// guild when guildID is set.
func (b *Bot) RegisterCommands(appID, guildID string) error {
	created, err := b.session.ApplicationCommandBulkOverwrite(appID, guildID, Commands(b.msgs))
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	log.WithFields(log.Fields{"count": len(created), "guild_id": guildID}).Info("Slash commands registered")
	return nil
}

// Ready logs the gateway login.
func (b *Bot) Ready(_ *discordgo.Session, r *discordgo.Ready) {
	log.WithField("user", r.User.String()).Info("Bot logged in")
}

// HandleInteraction is registered with the gateway session.
func (b *Bot) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handle(i.Interaction)
}

func (b *Bot) handle(i *discordgo.Interaction) {
	requester, ok := requesterOf(i)
	if !ok {
		log.WithField("interaction_id", i.ID).Warn("Interaction without a user")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionWait)
	defer cancel()

	var resp entities.InteractionResponse
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case b.msgs.RosterCommand:
			resp = b.dispatcher.ShowRoster(ctx, requester)
		case b.msgs.ResetCommand:
			resp = b.dispatcher.ResetCommand(ctx, requester)
		default:
			return
		}
	case discordgo.InteractionMessageComponent:
		resp = b.dispatcher.ActivateControl(ctx, requester, i.MessageComponentData().CustomID)
	default:
		return
	}

	if err := b.session.InteractionRespond(i, toDiscord(resp)); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"interaction_id": i.ID,
			"user_id":        requester.UserID,
		}).Error("Failed to respond to interaction")
	}
	b.dispatcher.Announce(resp.Announcement)
}

func requesterOf(i *discordgo.Interaction) (entities.Requester, bool) {
	if i.Member != nil && i.Member.User != nil {
		return entities.Requester{
			UserID: i.Member.User.ID,
			Admin:  i.Member.Permissions&discordgo.PermissionAdministrator != 0,
		}, true
	}
	if i.User != nil {
		return entities.Requester{UserID: i.User.ID}, true
	}
	return entities.Requester{}, false
}

func toDiscord(resp entities.InteractionResponse) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: resp.Content}
	if resp.Roster != nil {
		data.Embeds = []*discordgo.MessageEmbed{rosterEmbed(resp.Roster)}
		data.Components = rosterComponents(resp.Roster)
	}

	if resp.Kind == entities.UpdateView {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: data,
		}
	}
	data.Flags = discordgo.MessageFlagsEphemeral
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func rosterEmbed(view *entities.RosterView) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       view.Title,
		Description: view.Description,
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: view.StatusHeading, Value: strings.Join(view.Lines, "\n")},
		},
	}
}

func rosterComponents(view *entities.RosterView) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(view.Rows))
	for _, row := range view.Rows {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, c := range row {
			style := discordgo.SuccessButton
			if !c.Free {
				style = discordgo.DangerButton
			}
			buttons = append(buttons, discordgo.Button{
				Label:    c.Label,
				Style:    style,
				CustomID: c.ID,
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}
