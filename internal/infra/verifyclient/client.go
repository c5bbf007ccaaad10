package verifyclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"realz/internal/domain"
	"realz/internal/usecase"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Client calls the remote verification endpoint with
// GET {endpoint}?proof_id={id}.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout bounds each call. Zero disables the bound and leaves only
// the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := http.Client{}
		if c.httpClient != nil {
			hc = *c.httpClient
		}
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: verification endpoint is required", domain.ErrInvalidConfig)
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("%w: verification endpoint: %v", domain.ErrInvalidConfig, err)
	}
	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	if client.logger == nil {
		client.logger = zap.NewNop()
	}
	return client, nil
}

// Verify never returns an error. A network failure yields Status 0 and a
// body that is not JSON yields a nil Body.
func (c *Client) Verify(ctx context.Context, id domain.ProofID) domain.FetchOutcome {
	if c == nil {
		return domain.FetchOutcome{}
	}
	logger := c.logger.With(zap.String("proof_id", id.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(id), nil)
	if err != nil {
		logger.Debug("build verify request", zap.Error(err))
		return domain.FetchOutcome{}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("verify request failed", zap.Error(err))
		return domain.FetchOutcome{}
	}
	defer resp.Body.Close()

	outcome := domain.FetchOutcome{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Debug("read verify response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return outcome
	}
	body, err := domain.ParseVerificationResult(raw)
	if err != nil {
		logger.Debug("decode verify response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return outcome
	}
	outcome.Body = body
	if !outcome.OK {
		logger.Debug("verify endpoint returned non-2xx", zap.Int("status", resp.StatusCode))
	}
	return outcome
}

func (c *Client) requestURL(id domain.ProofID) string {
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + "proof_id=" + url.QueryEscape(id.String())
}

// Host is the endpoint host, for health output.
func (c *Client) Host() string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}

var _ usecase.Verifier = (*Client)(nil)
