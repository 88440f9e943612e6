package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckbook/internal/db"
	"truckbook/internal/repository"
	"truckbook/internal/service"
)

type fakeSession struct {
	responses  []*discordgo.InteractionResponse
	registered []*discordgo.ApplicationCommand
	guildID    string
	respondErr error
	responded  chan struct{}
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	if f.responded != nil {
		f.responded <- struct{}{}
	}
	return f.respondErr
}

func (f *fakeSession) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.registered = commands
	f.guildID = guildID
	return commands, nil
}

type fakeSender struct {
	channelID string
	sent      []string
	err       error
	release   chan struct{}
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.release != nil {
		<-f.release
	}
	f.channelID = channelID
	f.sent = append(f.sent, content)
	return &discordgo.Message{Content: content}, f.err
}

type testBot struct {
	bot     *Bot
	session *fakeSession
	sender  *fakeSender
	store   *repository.MemoryFleetStore
	fleet   db.Fleet
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	msgs, err := service.MessagesFor("en")
	require.NoError(t, err)

	fleet := db.NewFleet(db.DefaultRoster)
	store := repository.NewMemoryFleetStore(fleet)
	sender := &fakeSender{}
	dispatcher := service.NewDispatcher(service.NewReservationService(store), NewChannelNotifier(sender, "chan-1"), msgs)
	session := &fakeSession{}
	return &testBot{bot: New(session, dispatcher, msgs), session: session, sender: sender, store: store, fleet: fleet}
}

func member(id string, perms int64) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id}, Permissions: perms}
}

func command(name string, m *discordgo.Member) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "i-" + name,
		Type:   discordgo.InteractionApplicationCommand,
		Data:   discordgo.ApplicationCommandInteractionData{Name: name},
		Member: m,
	}}
}

func press(customID string, m *discordgo.Member) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "i-press",
		Type:   discordgo.InteractionMessageComponent,
		Data:   discordgo.MessageComponentInteractionData{CustomID: customID},
		Member: m,
	}}
}

func TestCommands(t *testing.T) {
	msgs, err := service.MessagesFor("uk")
	require.NoError(t, err)

	cmds := Commands(msgs)
	require.Len(t, cmds, 2)
	assert.Equal(t, "бронь", cmds[0].Name)
	assert.Nil(t, cmds[0].DefaultMemberPermissions)
	assert.Equal(t, "reset", cmds[1].Name)
	require.NotNil(t, cmds[1].DefaultMemberPermissions)
	assert.Equal(t, int64(discordgo.PermissionAdministrator), *cmds[1].DefaultMemberPermissions)
}

func TestRegisterCommands(t *testing.T) {
	tb := newTestBot(t)

	require.NoError(t, tb.bot.RegisterCommands("app-1", "guild-1"))
	assert.Equal(t, "guild-1", tb.session.guildID)
	assert.Len(t, tb.session.registered, 2)
}

func TestHandleInteraction_RosterCommand(t *testing.T) {
	tb := newTestBot(t)

	tb.bot.HandleInteraction(nil, command("book", member("u1", 0)))

	require.Len(t, tb.session.responses, 1)
	resp := tb.session.responses[0]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	require.Len(t, resp.Data.Embeds, 1)
	assert.Equal(t, embedColor, resp.Data.Embeds[0].Color)
	assert.Equal(t, "Fleet status:", resp.Data.Embeds[0].Fields[0].Name)

	require.Len(t, resp.Data.Components, 2)
	first := resp.Data.Components[0].(discordgo.ActionsRow)
	second := resp.Data.Components[1].(discordgo.ActionsRow)
	assert.Len(t, first.Components, 5)
	assert.Len(t, second.Components, 3)

	button := first.Components[0].(discordgo.Button)
	assert.Equal(t, "Scania", button.Label)
	assert.Equal(t, discordgo.SuccessButton, button.Style)
	assert.Equal(t, service.ControlID(tb.fleet[0].ID), button.CustomID)
}

func TestHandleInteraction_BookAndRelease(t *testing.T) {
	tb := newTestBot(t)
	controlID := service.ControlID(tb.fleet[0].ID)

	tb.bot.HandleInteraction(nil, press(controlID, member("u1", 0)))

	require.Len(t, tb.session.responses, 1)
	resp := tb.session.responses[0]
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, resp.Type)
	assert.Zero(t, resp.Data.Flags)
	button := resp.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, discordgo.DangerButton, button.Style)

	assert.Equal(t, "chan-1", tb.sender.channelID)
	require.Len(t, tb.sender.sent, 1)
	assert.Equal(t, "✅ <@u1> booked **Scania R730 #1**", tb.sender.sent[0])

	tb.bot.HandleInteraction(nil, press(controlID, member("u1", 0)))
	require.Len(t, tb.sender.sent, 2)
	assert.Equal(t, "❎ <@u1> released **Scania R730 #1**", tb.sender.sent[1])

	fleet, err := tb.store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, fleet[0].Free)
}

func TestHandleInteraction_RespondsBeforeSlowAnnouncement(t *testing.T) {
	tb := newTestBot(t)
	tb.session.responded = make(chan struct{}, 1)
	tb.sender.release = make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		tb.bot.HandleInteraction(nil, press(service.ControlID(tb.fleet[0].ID), member("u1", 0)))
	}()

	select {
	case <-tb.session.responded:
	case <-time.After(time.Second):
		t.Fatal("interaction was not answered while the announcement was pending")
	}
	assert.Empty(t, tb.sender.sent)

	close(tb.sender.release)
	<-done
	require.Len(t, tb.session.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, tb.session.responses[0].Type)
	assert.Equal(t, []string{"✅ <@u1> booked **Scania R730 #1**"}, tb.sender.sent)
}

func TestHandleInteraction_TakenByOther(t *testing.T) {
	tb := newTestBot(t)
	controlID := service.ControlID(tb.fleet[1].ID)

	tb.bot.HandleInteraction(nil, press(controlID, member("u1", 0)))
	tb.bot.HandleInteraction(nil, press(controlID, member("u2", 0)))

	require.Len(t, tb.session.responses, 2)
	resp := tb.session.responses[1]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	assert.Equal(t, "🚫 **Scania R730 #2** is already booked by someone else!", resp.Data.Content)
	assert.Len(t, tb.sender.sent, 1)
}

func TestHandleInteraction_AnnouncementFailureStillUpdates(t *testing.T) {
	tb := newTestBot(t)
	tb.sender.err = errors.New("missing access")

	tb.bot.HandleInteraction(nil, press(service.ControlID(tb.fleet[0].ID), member("u1", 0)))

	require.Len(t, tb.session.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, tb.session.responses[0].Type)
	fleet, err := tb.store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, fleet[0].Free)
}

func TestHandleInteraction_Reset(t *testing.T) {
	tb := newTestBot(t)
	tb.bot.HandleInteraction(nil, press(service.ControlID(tb.fleet[0].ID), member("u1", 0)))

	tb.bot.HandleInteraction(nil, command("reset", member("u2", 0)))
	fleet, err := tb.store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, fleet[0].Free, "non-admin reset must not change the fleet")

	tb.bot.HandleInteraction(nil, command("reset", member("admin", discordgo.PermissionAdministrator)))
	fleet, err = tb.store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, fleet[0].Free)

	require.Len(t, tb.session.responses, 3)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, tb.session.responses[2].Data.Flags)
	assert.Len(t, tb.sender.sent, 1, "manual reset is not announced")
}

func TestHandleInteraction_DirectMessageUser(t *testing.T) {
	tb := newTestBot(t)
	i := command("book", nil)
	i.User = &discordgo.User{ID: "dm-user"}

	tb.bot.HandleInteraction(nil, i)

	assert.Len(t, tb.session.responses, 1)
}

func TestHandleInteraction_Ignored(t *testing.T) {
	tb := newTestBot(t)

	tb.bot.HandleInteraction(nil, command("unknown", member("u1", 0)))
	tb.bot.HandleInteraction(nil, command("book", nil))

	assert.Empty(t, tb.session.responses)
}

func TestChannelNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := NewChannelNotifier(sender, "chan-9")

	require.NoError(t, n.Announce(context.Background(), "hello"))
	assert.Equal(t, "chan-9", sender.channelID)

	sender.err = errors.New("boom")
	assert.ErrorContains(t, n.Announce(context.Background(), "again"), "chan-9")
}
