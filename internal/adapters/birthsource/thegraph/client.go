package thegraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kitty-lineage/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("thegraph client not configured")
	ErrUnauthorized  = errors.New("thegraph unauthorized")
	ErrUpstream      = errors.New("thegraph upstream error")
)

// Config del cliente GraphQL.
// URL y APIKey normalmente vienen de env vars en quien lo instancia.
type Config struct {
	URL    string
	APIKey string

	// Opcional: header donde se manda la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	url          string
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) *Client {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		url:          strings.TrimSpace(cfg.URL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         httpclient.New(timeout),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.url != ""
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Query ejecuta una query GraphQL y decodifica response.data en out.
// Errores GraphQL (response.errors) y status no-2xx se mapean a sentinels.
func (c *Client) Query(ctx context.Context, query string, vars map[string]any, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers[c.apiKeyHeader] = c.apiKey
	}

	var resp graphqlResponse
	err := c.http.PostJSON(ctx, c.url, headers, graphqlRequest{Query: query, Variables: vars}, &resp)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return ErrUnauthorized
			default:
				return fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
			}
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrUpstream, strings.Join(msgs, "; "))
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("%w: invalid data json: %v", ErrUpstream, err)
	}
	return nil
}
