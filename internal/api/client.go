// Package api is the single chokepoint between this client and the
// squad-finder backend. Every call goes through Client.Do, which attaches the
// bearer token, serializes bodies, parses responses by content type and
// normalizes failures into exactly two error kinds.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/zanta/lfp-client/internal/api/metrics"
	"github.com/zanta/lfp-client/internal/session"
)

// Client issues authenticated requests against the backend REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Store
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// Config holds client construction options.
type Config struct {
	// BaseURL is resolved once at startup; endpoints are appended to it.
	BaseURL string
	// Session supplies the bearer token. The client only ever reads it.
	Session session.Store
	// HTTPClient overrides the default 30s-timeout client. Optional.
	HTTPClient *http.Client
	// RateLimit caps outgoing requests per second. Zero disables the cap.
	RateLimit float64
	Logger    zerolog.Logger
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("Session is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		session:    cfg.Session,
		limiter:    limiter,
		log:        cfg.Logger,
	}, nil
}

// Options is the per-request bag accepted by Do.
type Options struct {
	// Method defaults to GET.
	Method string
	// Body, when non-nil, is JSON-marshalled; Content-Type is set only then.
	Body any
	// Header carries extra headers merged into the request.
	Header http.Header
}

// Response is a successfully received backend answer.
type Response struct {
	Status int
	Header http.Header
	// Raw is the unparsed body.
	Raw []byte
	// Data is the body parsed by declared content type: decoded JSON for
	// application/json responses, a plain string for everything else.
	Data any
}

// Decode unmarshals the raw JSON body into out.
func (r *Response) Decode(out any) error {
	if len(bytes.TrimSpace(r.Raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Raw, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// Do executes one backend call. A 2xx answer returns the parsed response; a
// non-2xx answer returns *Error; a failure to obtain any answer returns
// *NetworkError. Nothing is retried and nothing is swallowed, and the session
// store is never mutated here.
func (c *Client) Do(ctx context.Context, endpoint string, opts Options) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + endpoint

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{URL: url, Err: err}
		}
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, vals := range opts.Header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().
		Str("method", method).
		Str("url", url).
		Msg("api request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RequestErrorsTotal.WithLabelValues("network").Inc()
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestErrorsTotal.WithLabelValues("network").Inc()
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(method, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	data := parseBody(resp.Header.Get("Content-Type"), raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, data)
		metrics.RequestErrorsTotal.WithLabelValues("api").Inc()
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("url", url).
			Str("message", apiErr.Message).
			Msg("api error response")
		return nil, apiErr
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Raw:    raw,
		Data:   data,
	}, nil
}

// parseBody interprets the body by declared content type, uniformly for
// success and failure responses. Malformed JSON degrades to plain text rather
// than failing the call.
func parseBody(contentType string, raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if strings.Contains(contentType, "application/json") {
		var data any
		if err := json.Unmarshal(raw, &data); err == nil {
			return data
		}
	}
	return string(raw)
}
