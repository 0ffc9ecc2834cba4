package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ghaggin/storefront/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxBody caps how much of a backend response is read.
const maxBody = 4 << 20

// Client talks to the storefront REST backend. Credentials are attached by
// its transport from the call's context, see WithCredentials.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     *zap.Logger
	metrics *clientMetrics
}

type Params struct {
	fx.In

	Config   *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
}

func New(p Params) (*Client, error) {
	base := strings.TrimRight(p.Config.API.BaseURL, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, err
	}

	return &Client{
		baseURL: base,
		timeout: p.Config.API.Timeout,
		http: &http.Client{
			Transport: &credentialTransport{next: http.DefaultTransport},
		},
		log:     p.Log.Named("api"),
		metrics: newClientMetrics(p.Registry),
	}, nil
}

// BaseURL is the backend root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// rawBody is a request body sent as is, for payloads that are not JSON.
type rawBody struct {
	contentType string
	data        []byte
}

// envelope is the error part shared by backend responses.
type envelope struct {
	Message string `json:"message"`
}

// do performs a call and decodes a 2xx body into out. The returned response
// has its body consumed and closed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch in := in.(type) {
	case nil:
	case *rawBody:
		body = bytes.NewReader(in.data)
		contentType = in.contentType
	default:
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return resp, &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp, fmt.Errorf("%s %s: %w: %v", method, path, errMalformed, err)
		}
	}
	return resp, nil
}

// call is do bounded by api.timeout, with metrics and debug logging under op.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, in, out any) (*http.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.callUnbounded(ctx, op, method, path, query, in, out)
}

// callUnbounded is call without api.timeout; ctx alone limits it.
func (c *Client) callUnbounded(ctx context.Context, op, method, path string, query url.Values, in, out any) (*http.Response, error) {
	done := c.metrics.observe(op)
	resp, err := c.do(ctx, method, path, query, in, out)
	if err != nil {
		c.log.Debug("backend call failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
	}
	return resp, done(err)
}

func emailQuery(email string) url.Values {
	return url.Values{"email": []string{email}}
}
