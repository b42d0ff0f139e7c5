package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/trovekart/storefront-backend/pkg/config"
	"github.com/trovekart/storefront-backend/pkg/logger"
)

// Sender delivers an SMS and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, phone, body string) (string, error)
}

// Client wraps the Twilio messaging API.
type Client struct {
	api  *twilio.RestClient
	from string
	logg *logger.Logger
}

// New validates the credentials and returns a configured client.
func New(cfg config.SMSConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, errors.New("twilio account sid and auth token are required")
	}
	if strings.TrimSpace(cfg.FromNumber) == "" {
		return nil, errors.New("twilio from number is required")
	}
	api := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Client{api: api, from: cfg.FromNumber, logg: logg}, nil
}

// Send delivers the message, retrying once on failure before giving up.
func (c *Client) Send(ctx context.Context, phone, body string) (string, error) {
	if c == nil || c.api == nil {
		return "", errors.New("sms client not initialized")
	}
	if strings.TrimSpace(phone) == "" {
		return "", errors.New("destination phone is required")
	}
	if strings.TrimSpace(body) == "" {
		return "", errors.New("message body is required")
	}

	sid, err := c.send(phone, body)
	if err == nil {
		return sid, nil
	}
	if c.logg != nil {
		c.logg.Warn(c.logg.WithField(ctx, "phone", phone), "sms send failed, retrying once")
	}
	sid, retryErr := c.send(phone, body)
	if retryErr != nil {
		return "", fmt.Errorf("sending sms: %w", retryErr)
	}
	return sid, nil
}

func (c *Client) send(phone, body string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(c.from)
	params.SetBody(body)

	resp, err := c.api.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Sid == nil {
		return "", errors.New("twilio response missing message sid")
	}
	return *resp.Sid, nil
}
