package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/yunbow/line-faq-bot/src/types"
)

// Feed posts follow-state changes to an operator channel.
type Feed struct {
	session   *discordgo.Session
	channelID string
}

// NewFeed creates a REST-only session; no gateway connection is opened.
func NewFeed(token, channelID string) (*Feed, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &Feed{session: session, channelID: channelID}, nil
}

func (f *Feed) SubscriberChanged(ctx context.Context, change types.SubscriberChange) error {
	_, err := f.session.ChannelMessageSend(f.channelID, FormatChange(change), discordgo.WithContext(ctx))
	return err
}

// FormatChange renders a change as a one-line operator notice.
func FormatChange(change types.SubscriberChange) string {
	switch {
	case change.Event == "follow" && change.Created:
		return fmt.Sprintf("➕ New follower `%s` (%s)", change.UserID, change.SourceType)
	case change.Event == "follow":
		return fmt.Sprintf("🔁 `%s` followed again", change.UserID)
	case change.Event == "unfollow":
		return fmt.Sprintf("➖ `%s` unfollowed", change.UserID)
	default:
		return fmt.Sprintf("`%s`: %s (state %d)", change.UserID, change.Event, change.State)
	}
}
