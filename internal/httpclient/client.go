package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMalformedTarget reports a target URL no request can be built for.
// It is permanent: retrying cannot fix it.
var ErrMalformedTarget = errors.New("malformed target URL")

// Client posts form-encoded payloads to webhook targets.
type Client struct {
	httpClient *http.Client
}

func New(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostForm sends a single-field application/x-www-form-urlencoded POST and
// returns the response status code. The response body is discarded; callers
// classify on the status alone.
func (c *Client) PostForm(ctx context.Context, target, field, value string) (int, error) {
	form := url.Values{field: {value}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedTarget, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
