package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// SlackNotifier posts alerts to a Slack channel via the Web API.
type SlackNotifier struct {
	client  *slack.Client
	channel string
	logger  *zap.Logger
}

// NewSlackNotifier creates a Slack notifier. botToken is the Bot User OAuth
// Token (xoxb-...); channel is the target channel ID or name.
func NewSlackNotifier(botToken, channel string, logger *zap.Logger) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(botToken),
		channel: channel,
		logger:  logger,
	}
}

func (n *SlackNotifier) Platform() string { return "slack" }

// Notify posts the alert message to the configured channel.
func (n *SlackNotifier) Notify(ctx context.Context, a *Alert) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(formatAlert(a), false),
	)
	if err != nil {
		return fmt.Errorf("slack post to %s: %w", n.channel, err)
	}
	n.logger.Debug("slack alert sent",
		zap.String("channel", n.channel),
		zap.String("agent", a.AgentID))
	return nil
}

func (n *SlackNotifier) Close() error { return nil }
