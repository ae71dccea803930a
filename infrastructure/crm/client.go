// Package crm talks to the Salesforce REST API on behalf of the portal.
package crm

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
)

const maxResponseBytes = 10 << 20

// APIError is an error response from the REST API
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("salesforce api %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("salesforce api %d: %s", e.StatusCode, e.Message)
}

// Client performs single-shot REST calls over the shared session.
// It never retries.
type Client struct {
	session    *Session
	apiVersion string
}

// NewClient creates a REST client for the given API version, e.g. "59.0"
func NewClient(session *Session, apiVersion string) *Client {
	return &Client{
		session:    session,
		apiVersion: strings.TrimPrefix(apiVersion, "v"),
	}
}

// Query runs a SOQL statement and decodes the first batch of records into out,
// which must be a pointer to a slice.
func (c *Client) Query(ctx context.Context, q *Query, out interface{}) error {
	soql, err := q.Build()
	if err != nil {
		return err
	}

	var result struct {
		TotalSize int             `json:"totalSize"`
		Done      bool            `json:"done"`
		Records   json.RawMessage `json:"records"`
	}
	if err := c.get(ctx, "/query", url.Values{"q": {soql}}, nil, &result); err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return nil
	}
	return json.Unmarshal(result.Records, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, headers map[string]string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, headers, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body, out interface{}) error {
	conn, err := c.session.connection()
	if err != nil {
		return err
	}

	endpoint := conn.instanceURL + "/services/data/v" + c.apiVersion + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := conn.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseAPIError reads the [{"message": ..., "errorCode": ...}] error body
func parseAPIError(status int, data []byte) error {
	var items []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(data, &items); err == nil && len(items) > 0 {
		return &APIError{StatusCode: status, Code: items[0].ErrorCode, Message: items[0].Message}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(http.StatusText(status))}
}

// Time decodes the API's datetime format, e.g. 2024-01-15T10:30:00.000+0000
type Time struct {
	time.Time
}

var timeLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized datetime %q", s)
}
