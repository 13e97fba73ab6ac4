package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const webhookPath = "/webhook/telegram"

type ngrokTunnels struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// tunnelDiscovery reads the public URL of a local ngrok agent so the Telegram
// webhook can be registered without a fixed domain.
type tunnelDiscovery struct {
	apiBase  string
	client   *http.Client
	attempts int
	wait     time.Duration
}

func newTunnelDiscovery(apiBase string) tunnelDiscovery {
	return tunnelDiscovery{
		apiBase:  strings.TrimRight(apiBase, "/"),
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: 10,
		wait:     3 * time.Second,
	}
}

// webhookURL returns the tunnel's public URL joined with the Telegram webhook path.
// The agent may still be starting, so empty or unreachable answers are retried.
func (d tunnelDiscovery) webhookURL(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		publicURL, err := d.publicURL(ctx)
		if err == nil {
			return strings.TrimRight(publicURL, "/") + webhookPath, nil
		}
		lastErr = err

		if attempt == d.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(d.wait):
		}
	}
	return "", fmt.Errorf("ngrok: no tunnel after %d attempts: %w", d.attempts, lastErr)
}

func (d tunnelDiscovery) publicURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.apiBase+"/api/tunnels", nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body ngrokTunnels
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode tunnels: %w", err)
	}
	for _, t := range body.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(body.Tunnels) > 0 {
		return body.Tunnels[0].PublicURL, nil
	}
	return "", fmt.Errorf("no active tunnels")
}
