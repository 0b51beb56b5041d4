// Package notify sends a completion notification for a scheduling run
// to a Slack incoming webhook, grounded on the pack's Slack notifier
// pattern but adapted to the simpler webhook flow config.NotifyConfig
// describes (no bot token, no channel management).
package notify

import (
	"fmt"

	goslack "github.com/slack-go/slack"

	"github.com/shiftboard/engine/internal/config"
	"github.com/shiftboard/engine/pkg/scheduler/orchestrator"
)

// Notifier posts run-completion summaries to a Slack webhook. A zero
// value with an empty webhook URL is a no-op notifier.
type Notifier struct {
	webhookURL         string
	violationThreshold int
}

// New builds a Notifier from the app's NotifyConfig.
func New(cfg config.NotifyConfig) *Notifier {
	if !cfg.Enabled {
		return &Notifier{}
	}
	return &Notifier{webhookURL: cfg.WebhookURL, violationThreshold: cfg.ViolationThreshold}
}

// IsEnabled reports whether the notifier has a webhook to post to.
func (n *Notifier) IsEnabled() bool {
	return n.webhookURL != ""
}

// NotifyRunComplete posts a one-line summary of a finished run. Only
// fires when the result's residual violation count reaches the
// configured threshold — a fully compliant run stays quiet.
func (n *Notifier) NotifyRunComplete(monthLabel string, result *orchestrator.RunResult) error {
	if !n.IsEnabled() {
		return nil
	}
	violationCount := len(result.Violations)
	if violationCount < n.violationThreshold {
		return nil
	}

	text := fmt.Sprintf(":warning: schedule run for %s finished with %d residual violation(s) after %d generations (score %d)",
		monthLabel, violationCount, result.Generations, result.Fitness.Score)

	msg := &goslack.WebhookMessage{Text: text}
	if err := goslack.PostWebhook(n.webhookURL, msg); err != nil {
		return fmt.Errorf("posting slack webhook: %w", err)
	}
	return nil
}
