package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"watog/internal/config"
	"watog/internal/logger"
)

// SMSSender delivers a short text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// SMSService posts messages to an HTTP SMS gateway.
type SMSService struct {
	cfg    config.SMSConfig
	client *http.Client
}

func NewSMSService(cfg config.SMSConfig) *SMSService {
	if cfg.APIURL == "" {
		logger.Log.Warn("sms service disabled: SMS_API_URL not set")
	}
	return &SMSService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func (s *SMSService) Send(ctx context.Context, to, body string) error {
	if s.cfg.APIURL == "" {
		logger.Log.Warnw("sms config missing, skip message", "to", to)
		return nil
	}

	payload, err := json.Marshal(smsRequest{From: s.cfg.From, To: to, Body: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	logger.Log.Infow("sms sent", "to", to)
	return nil
}
