package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends pre-rendered HTML through an EmailJS template. The template is
// expected to render {{message}} unescaped.
type EmailJS struct {
	client     *http.Client
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
}

type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Timeout    time.Duration
}

func NewEmailJS(cfg Config) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &EmailJS{
		client:     &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJS) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:  m.serviceID,
		TemplateID: m.templateID,
		UserID:     m.publicKey,
		TemplateParams: map[string]string{
			"to_email": to,
			"subject":  subject,
			"message":  html,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("emailjs: %d %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
