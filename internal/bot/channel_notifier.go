package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelNotifier posts announcements to one Discord text channel.
type ChannelNotifier struct {
	sender    messageSender
	channelID string
}

func NewChannelNotifier(sender messageSender, channelID string) *ChannelNotifier {
	return &ChannelNotifier{sender: sender, channelID: channelID}
}

func (n *ChannelNotifier) Announce(ctx context.Context, message string) error {
	if _, err := n.sender.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("post to channel %s: %w", n.channelID, err)
	}
	return nil
}
