package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-gateway/internal/domain"
)

const accessTokenHeader = "X-Storefront-Access-Token"

// Config carries the upstream commerce API endpoint parameters. The endpoint
// is derived from the store domain and API version; the access token is sent
// as a static request header.
type Config struct {
	StoreDomain string
	APIVersion  string
	AccessToken string
	Timeout     time.Duration
}

// Configured reports whether the required credentials are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.StoreDomain) != "" && strings.TrimSpace(c.AccessToken) != ""
}

// Client issues typed queries and mutations against the commerce GraphQL API
// and reshapes the wire format into local view models. A Client built from an
// unconfigured Config fails every call with domain.ErrNotConfigured without
// touching the network.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	log      logrus.FieldLogger
}

func NewClient(cfg Config, log logrus.FieldLogger) *Client {
	endpoint := ""
	if cfg.Configured() {
		endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.StoreDomain, cfg.APIVersion)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		token:    cfg.AccessToken,
		httpc:    &http.Client{Timeout: timeout},
		log:      log,
	}
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

// query posts a GraphQL document and decodes the data payload into out.
func (c *Client) query(ctx context.Context, document string, vars map[string]interface{}, out interface{}) error {
	if c.endpoint == "" {
		return domain.ErrNotConfigured
	}

	body, err := json.Marshal(gqlRequest{Query: document, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("commerce API request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("commerce API status %d", resp.StatusCode)
	}

	var envelope gqlEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("commerce API errors: %s", strings.Join(messages, "; "))
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
