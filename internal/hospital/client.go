// Package hospital is the HTTP client for the upstream hospital directory
// service. The directory owns the authoritative state of every hospital
// (existence, active flag); this package only transports calls to it.
package hospital

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned when the directory reports 404 for a hospital.
var ErrNotFound = errors.New("hospital not found")

// maxErrorBody caps how much of an error response body is kept for diagnostics.
const maxErrorBody = 2048

// CreateRequest is the payload for creating one hospital in the directory.
// Phone is a pointer so an absent phone serializes as JSON null.
type CreateRequest struct {
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	Phone           *string `json:"phone"`
	CreationBatchID string  `json:"creation_batch_id"`
}

// StatusError is a non-2xx response from the directory. Transient reports
// whether the failure is worth retrying (5xx); 4xx responses are terminal
// because the request itself was rejected.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether a retry could plausibly succeed.
func (e *StatusError) Transient() bool {
	return e.StatusCode >= 500
}

// IsTerminal reports whether err is a directory rejection that retrying
// cannot fix (a 4xx response).
func IsTerminal(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && !se.Transient()
}

// Client calls the hospital directory REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a directory client. Every call carries its own timeout; a
// timed-out call surfaces as a transport error.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches all hospitals. The directory's JSON is passed through
// verbatim so callers never lose fields this service does not model.
func (c *Client) List(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, "/hospitals/")
}

// Get fetches one hospital by ID. Returns ErrNotFound on 404.
func (c *Client) Get(ctx context.Context, hospitalID string) (json.RawMessage, error) {
	return c.getJSON(ctx, "/hospitals/"+hospitalID)
}

// Delete removes one hospital by ID. Returns ErrNotFound on 404.
func (c *Client) Delete(ctx context.Context, hospitalID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/hospitals/"+hospitalID, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		return &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Create submits one hospital creation and returns the directory-assigned ID.
// A non-2xx response is returned as a *StatusError so callers can classify
// it as terminal (4xx) or transient (5xx). The ID field is decoded loosely
// because the directory does not guarantee a string.
func (c *Client) Create(ctx context.Context, payload CreateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hospitals/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var created struct {
		ID any `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	if created.ID == nil {
		return "", errors.New("create response missing id")
	}
	return normalizeID(created.ID), nil
}

// ActivateBatch toggles every hospital created under batchID. A nil active
// sends no body (the directory defaults to activation); otherwise the flag
// is sent as {"active": bool}. Success is 200 or 204.
func (c *Client) ActivateBatch(ctx context.Context, batchID string, active *bool) error {
	var body io.Reader
	if active != nil {
		encoded, err := json.Marshal(map[string]bool{"active": *active})
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/hospitals/batch/"+batchID+"/activate", body)
	if err != nil {
		return err
	}
	if active != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// ActiveFlag extracts the "active" field from a raw hospital document.
// Missing or malformed documents report false.
func ActiveFlag(raw json.RawMessage) bool {
	var probe struct {
		Active bool `json:"active"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Active
}

func (c *Client) getJSON(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 300:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// readErrorBody drains a response body for inclusion in error messages,
// truncated so a misbehaving upstream cannot bloat logs.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// normalizeID renders a directory ID in string form regardless of the JSON
// type the directory used. Numeric IDs keep their integer representation.
func normalizeID(id any) string {
	if f, ok := id.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(id)
}
