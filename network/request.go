package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 4 << 10

// StatusError is returned by Request when the server answers with a
// non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: network response was not ok (%d)", e.Method, e.URL, e.Code)
}

// Request sends an HTTP request with body encoded as JSON (nil sends no
// body) and decodes a JSON response into out (nil discards it).
func (c *Client) Request(ctx context.Context, method, url string, body, out any) error {
	method = strings.ToUpper(method)
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, url, err)
		}
		reader = bytes.NewReader(blob)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warn("request returned error status",
			zap.String("method", method), zap.String("url", url), zap.Int("status", resp.StatusCode))
		return &StatusError{Method: method, URL: url, Code: resp.StatusCode, Body: errBody}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("%s %s: decode response: %w", method, url, err)
	}
	return nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, url string, out any) error {
	return c.Request(ctx, http.MethodGet, url, nil, out)
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, url string, body, out any) error {
	return c.Request(ctx, http.MethodPost, url, body, out)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, url string, body, out any) error {
	return c.Request(ctx, http.MethodPut, url, body, out)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, out any) error {
	return c.Request(ctx, http.MethodDelete, url, nil, out)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, body, out any) error {
	return c.Request(ctx, http.MethodPatch, url, body, out)
}
