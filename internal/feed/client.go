package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// FunctionError is returned when the feed function answers with an error
// status.
type FunctionError struct {
	Status  int
	Message string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("feed function error %d: %s", e.Status, e.Message)
}

// Client calls the feed function over HTTP.
type Client struct {
	url  string
	http *retryablehttp.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 1
	rc.HTTPClient.Timeout = timeout
	if timeout <= 0 {
		rc.HTTPClient.Timeout = 10 * time.Second
	}
	rc.Logger = nil
	// keep the last response so its error body can be read
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Client{url: url, http: rc}
}

func (c *Client) HTTPClient() *http.Client { return c.http.HTTPClient }

// Call posts to the function and returns its decoded body.
func (c *Client) Call(ctx context.Context) (Response, error) {
	var out Response
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close() //nolint:errcheck

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil && resp.StatusCode < 400 {
		return out, fmt.Errorf("decode feed response: %w", err)
	}
	if resp.StatusCode >= 400 {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return out, &FunctionError{Status: resp.StatusCode, Message: msg}
	}
	return out, nil
}

// Fetch returns the listings of the function. It is what the property
// catalog consumes.
func (c *Client) Fetch(ctx context.Context) ([]Listing, error) {
	r, err := c.Call(ctx)
	if err != nil {
		return nil, err
	}
	if r.Error != "" {
		return nil, errors.New(r.Error)
	}
	return r.Properties, nil
}
