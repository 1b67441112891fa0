package tray

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

// Profile is the business context the Tray store holds for a customer.
type Profile struct {
	UnitIDs     []string `json:"cnpj_ids"`
	Group       tier.ID  `json:"group"`
	Description string   `json:"description"`
}

// Client fetches customer profiles from Tray.
type Client interface {
	FetchProfile(ctx context.Context, email string) (*Profile, error)
}

type customerResponse struct {
	Customers []Profile `json:"customers"`
}

type httpClient struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a Tray API client authenticated with a bearer token.
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(token).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json")

	return &httpClient{http: client, logger: logger}
}

// FetchProfile looks the customer up by email. The first match wins.
func (c *httpClient) FetchProfile(ctx context.Context, email string) (*Profile, error) {
	var body customerResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetResult(&body).
		Get("/customers")
	if err != nil {
		c.logger.Error("tray request failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("%w: tray customers: %v", apperr.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: tray customer %s", apperr.ErrNotFound, email)
	case resp.IsError():
		c.logger.Error("tray returned an error",
			zap.String("email", email),
			zap.Int("status_code", resp.StatusCode()))
		return nil, fmt.Errorf("%w: tray customers returned %d", apperr.ErrUpstream, resp.StatusCode())
	case len(body.Customers) == 0:
		return nil, fmt.Errorf("%w: tray customer %s", apperr.ErrNotFound, email)
	}

	p := body.Customers[0]
	return &p, nil
}

type sandboxClient struct {
	delay time.Duration
}

// NewSandboxClient answers from a fixed rule: an email containing "vip" gets every
// demo unit under the VIP group, anyone else gets the head office under the basic group.
func NewSandboxClient(delay time.Duration) Client {
	return &sandboxClient{delay: delay}
}

func (s *sandboxClient) FetchProfile(ctx context.Context, email string) (*Profile, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if strings.Contains(strings.ToLower(email), "vip") {
		return &Profile{UnitIDs: []string{"c1", "c2", "c3"}, Group: tier.VIP, Description: "VIP detectado na Tray"}, nil
	}
	return &Profile{UnitIDs: []string{"c1"}, Group: tier.Basic, Description: "Perfil Lojista Padrão"}, nil
}
