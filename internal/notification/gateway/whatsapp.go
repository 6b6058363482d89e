// Package gateway delivers WhatsApp messages through an UltraMsg-compatible
// HTTP API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("whatsapp gateway is not configured")

type Config struct {
	APIURL     string
	InstanceID string
	Token      string
	Timeout    time.Duration
}

type WhatsAppGateway struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewWhatsAppGateway(cfg Config) *WhatsAppGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	g := &WhatsAppGateway{
		token:  cfg.Token,
		client: &http.Client{Timeout: timeout},
	}
	if cfg.InstanceID != "" {
		g.endpoint = strings.TrimRight(cfg.APIURL, "/") + "/" + cfg.InstanceID + "/messages/chat"
	}
	return g
}

type sendRequest struct {
	Token string `json:"token"`
	To    string `json:"to"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Sent  any `json:"sent"`
	Error any `json:"error"`
}

func (g *WhatsAppGateway) Send(ctx context.Context, phone, message string) error {
	if g.endpoint == "" || g.token == "" {
		return ErrNotConfigured
	}
	to := NormalizePhone(phone)
	if to == "" {
		return fmt.Errorf("invalid phone number %q", phone)
	}

	payload, err := json.Marshal(sendRequest{Token: g.token, To: to, Body: message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out sendResponse
	if err := json.Unmarshal(body, &out); err == nil && out.Error != nil {
		return fmt.Errorf("whatsapp api error: %v", out.Error)
	}
	return nil
}

// NormalizePhone keeps digits and a leading plus sign.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "+" {
		return ""
	}
	return out
}
