// FILE: notify.go
// Package main – Outbound notifications (Discord / Slack webhooks).
//
// Three channels: error, order, report. Each maps to its own webhook URL
// (DISCORD_<CHANNEL>_WEBHOOK_URL) with SLACK_WEBHOOK as a shared fallback.
// A Slack URL gets {"text": ...}; anything else is treated as Discord and
// gets {"content": ...}. Every message is also logged locally. Posting is
// best-effort: failures are logged and never reach the caller.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Channel string

const (
	ChannelError  Channel = "error"
	ChannelOrder  Channel = "order"
	ChannelReport Channel = "report"
)

// Notifier delivers a human-readable message to a channel.
type Notifier interface {
	Notify(ctx context.Context, ch Channel, msg string)
}

// Discord rejects content over 2000 characters.
const discordMaxContent = 2000

type webhookNotifier struct {
	urls    map[Channel]string
	hc      *http.Client
	timeout time.Duration
}

func newWebhookNotifier(urls map[Channel]string) *webhookNotifier {
	return &webhookNotifier{
		urls:    urls,
		hc:      &http.Client{},
		timeout: 3 * time.Second,
	}
}

func isSlackHook(hook string) bool {
	u, err := url.Parse(hook)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Host), "slack")
}

func (n *webhookNotifier) Notify(ctx context.Context, ch Channel, msg string) {
	entry := log.WithField("channel", string(ch))
	if ch == ChannelError {
		entry.Warn(msg)
	} else {
		entry.Info(msg)
	}
	hook := n.urls[ch]
	if hook == "" {
		return
	}
	if err := n.post(ctx, hook, msg); err != nil {
		entry.WithError(err).Warn("[NOTIFY] webhook post failed")
	}
}

func (n *webhookNotifier) post(ctx context.Context, hook, msg string) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	var body map[string]string
	if isSlackHook(hook) {
		body = map[string]string{"text": msg}
	} else {
		if len(msg) > discordMaxContent {
			msg = msg[:discordMaxContent-3] + "..."
		}
		body = map[string]string{"content": msg}
	}
	bs, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hook, bytes.NewReader(bs))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := n.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("webhook status %d", res.StatusCode)
	}
	return nil
}
