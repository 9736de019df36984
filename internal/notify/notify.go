// Package notify fans alerting decisions out to chat platforms. It carries
// no decision logic: by the time an Alert reaches a Notifier, the engine has
// already decided that an escalation-class action is warranted.
package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aldara/sentra/internal/engine"
)

// Alert is the outbound payload for one gate-approved decision.
type Alert struct {
	AgentID  string
	Decision engine.Decision
}

// Notifier delivers alerts to one platform.
type Notifier interface {
	Platform() string
	Notify(ctx context.Context, a *Alert) error
	Close() error
}

// Dispatcher fans an alert out to all registered notifiers, best-effort.
type Dispatcher struct {
	notifiers []Notifier
	logger    *zap.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Register adds a notifier.
func (d *Dispatcher) Register(n Notifier) {
	d.notifiers = append(d.notifiers, n)
	d.logger.Info("notifier registered", zap.String("platform", n.Platform()))
}

// Dispatch sends the alert to every platform. Delivery failures are logged
// and swallowed; they never affect decision delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, a *Alert) {
	for _, n := range d.notifiers {
		if err := n.Notify(ctx, a); err != nil {
			d.logger.Error("alert delivery failed",
				zap.String("platform", n.Platform()),
				zap.String("agent", a.AgentID),
				zap.Error(err))
		}
	}
}

// Close shuts down all notifiers.
func (d *Dispatcher) Close() {
	for _, n := range d.notifiers {
		if err := n.Close(); err != nil {
			d.logger.Warn("notifier close failed",
				zap.String("platform", n.Platform()), zap.Error(err))
		}
	}
}

// formatAlert renders the chat text for an alert.
func formatAlert(a *Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(string(a.Decision.State)), a.Decision.Message)
	fmt.Fprintf(&b, "agent: %s | action: %s | risk: %.2f | priority: %d",
		a.AgentID, a.Decision.Action, a.Decision.RiskScore, a.Decision.Priority)
	for _, opt := range a.Decision.EscalationOptions {
		fmt.Fprintf(&b, "\n• %s", opt)
	}
	return b.String()
}
