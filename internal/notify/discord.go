package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// DiscordNotifier sends alerts to a Discord channel through the bot API.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	logger    *zap.Logger
}

// NewDiscordNotifier creates a Discord notifier and opens the bot session.
func NewDiscordNotifier(botToken, channelID string, logger *zap.Logger) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	// Outbound-only: no message intents, no handlers.
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("discord open: %w", err)
	}
	logger.Info("discord notifier connected",
		zap.String("user", session.State.User.Username))
	return &DiscordNotifier{session: session, channelID: channelID, logger: logger}, nil
}

func (n *DiscordNotifier) Platform() string { return "discord" }

// Notify sends the alert message to the configured channel.
func (n *DiscordNotifier) Notify(ctx context.Context, a *Alert) error {
	_, err := n.session.ChannelMessageSend(n.channelID, formatAlert(a))
	if err != nil {
		return fmt.Errorf("discord send to %s: %w", n.channelID, err)
	}
	n.logger.Debug("discord alert sent",
		zap.String("channel", n.channelID),
		zap.String("agent", a.AgentID))
	return nil
}

func (n *DiscordNotifier) Close() error {
	return n.session.Close()
}
