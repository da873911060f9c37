// Package httpclient wraps resty for the catalog, icon and archive downloads.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Client performs GET requests with a shared user agent and retry policy.
// Fetch is bounded by the configured timeout. Download streams bodies of
// any duration and is bounded only by its context.
type Client struct {
	http   *resty.Client
	stream *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for Fetch. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.http.SetHeader("User-Agent", ua)
			c.stream.SetHeader("User-Agent", ua)
		}
	}
}

// WithRetries sets how often a failed request is retried.
// Only transport errors and 5xx responses are retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.http.SetRetryCount(n)
		c.stream.SetRetryCount(n)
	}
}

// New returns a Client.
func New(opts ...Option) *Client {
	c := &Client{http: newResty(), stream: newResty()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func newResty() *resty.Client {
	return resty.New().
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
}

// Fetch returns the body behind url.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, statusErr(url, resp)
	}
	return resp.Body(), nil
}

// Download streams the body behind url into w and returns the number of
// bytes written. The client timeout does not apply; callers bound the
// transfer through ctx.
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	resp, err := c.stream.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return 0, err
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.IsError() {
		return 0, statusErr(url, resp)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return n, nil
}

func statusErr(url string, resp *resty.Response) error {
	return &StatusError{URL: url, Status: resp.Status(), Code: resp.StatusCode()}
}
