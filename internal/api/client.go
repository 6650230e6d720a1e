package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the BookStudio REST backend. All requests send
// Accept: application/json; mutating requests also send a JSON body.
// Identifiers embedded in URL paths are percent-encoded.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a Client for the given base URL, e.g. "http://backend:9000/api".
// timeout bounds every request; pass 0 to rely on context deadlines only.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// Get issues GET {base}/{segments...} and decodes the JSON body into out.
// A non-OK response is decoded into a backend *Error.
func (c *Client) Get(ctx context.Context, out any, segments ...string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(segments...), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	// The backend answers empty lists with 204 and an ApiError envelope;
	// surface it as a backend *Error so callers can branch on IsNoContent.
	if resp.StatusCode == http.StatusNoContent {
		return decodeError(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Create issues POST {base}/{segments...} with the JSON-encoded body and
// returns the decoded envelope. The returned error is non-nil only for
// transport or parse failures; domain failures (including HTTP 400
// validation errors) are reported through the Result itself.
func (c *Client) Create(ctx context.Context, body any, segments ...string) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, body, segments...)
}

// Update issues PUT {base}/{segments...}; see Create for error semantics.
func (c *Client) Update(ctx context.Context, body any, segments ...string) (*Result, error) {
	return c.mutate(ctx, http.MethodPut, body, segments...)
}

// SelectOptions fetches all reference lists for an entity in one call:
// GET {base}/{entity}/select-options.
func (c *Client) SelectOptions(ctx context.Context, entity string) (SelectOptions, error) {
	var opts SelectOptions
	if err := c.Get(ctx, &opts, entity, "select-options"); err != nil {
		return nil, err
	}
	return opts, nil
}

func (c *Client) mutate(ctx context.Context, method string, body any, segments ...string) (*Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(segments...), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result := &Result{HTTPStatus: resp.StatusCode}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return result, nil
}

// endpoint joins path segments onto the base URL, percent-encoding each one.
func (c *Client) endpoint(segments ...string) string {
	return c.base.JoinPath(segments...).String()
}

// decodeError turns a non-OK response into a backend *Error. An undecodable
// body still yields an *Error carrying the HTTP status.
func decodeError(resp *http.Response) error {
	var body struct {
		Message    string `json:"message"`
		ErrorType  string `json:"errorType"`
		StatusCode int    `json:"statusCode"`
	}
	// Best effort: the error body may be empty (e.g. 204) or non-JSON.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return &Error{
		Status:    resp.StatusCode,
		ErrorType: body.ErrorType,
		Message:   body.Message,
	}
}
