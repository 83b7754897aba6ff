// Package remote talks to the fixed-shape JSON document service that holds
// the user's bundle. The contract is two calls: GET the latest revision,
// PUT a full replacement. There is no partial update and no conflict
// resolution; a resend is just a fresh PUT of current state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jgfrigo2/medtracker2/internal/model"
)

// Credentials identify one user's document: the service master key and the
// bin holding the bundle.
type Credentials struct {
	APIKey string `json:"apiKey"`
	BinID  string `json:"binId"`
}

// Valid reports whether both fields are present.
func (c Credentials) Valid() bool { return c.APIKey != "" && c.BinID != "" }

// Client issues the two document calls against a fixed base URL.
type Client struct {
	base string
	http *http.Client
}

// New constructs a Client. baseURL must not have a trailing slash.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the latest bundle revision.
//
//   - HTTP 404 means the document has never been written: the default
//     bundle is returned with a nil error.
//   - Any other non-2xx status fails with a *FetchError.
//   - Transport failures are returned as-is.
//
// Callers are expected to swallow fetch errors and substitute a default or
// cached bundle; loading never hard-fails the UI.
func (c *Client) Fetch(ctx context.Context, creds Credentials) (model.Bundle, error) {
	reqID := uuid.NewString()
	url := fmt.Sprintf("%s/%s/latest", c.base, creds.BinID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Bundle{}, err
	}
	req.Header.Set("X-Master-Key", creds.APIKey)
	req.Header.Set("X-Bin-Meta", "false")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Bundle{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// First run for this bin; not an error.
		log.Debug().Str("request_id", reqID).Msg("document not found, starting empty")
		return model.DefaultBundle(), nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return model.Bundle{}, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var b model.Bundle
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return model.Bundle{}, fmt.Errorf("decode document: %w", err)
	}
	b.Normalize()
	log.Debug().
		Str("request_id", reqID).
		Int("days", len(b.HealthData)).
		Int("medications", len(b.Medications)).
		Msg("document fetched")
	return b, nil
}

// Replace overwrites the whole document with bundle. Any non-2xx status or
// transport failure is a *SaveError. The operation is naturally idempotent,
// so the caller may safely resend the current state.
func (c *Client) Replace(ctx context.Context, creds Credentials, bundle model.Bundle) error {
	reqID := uuid.NewString()
	body, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s", c.base, creds.BinID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-Master-Key", creds.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return &SaveError{Underlying: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &SaveError{
			StatusCode: resp.StatusCode,
			Underlying: fmt.Errorf("replace document: %s", resp.Status),
		}
	}
	log.Debug().Str("request_id", reqID).Int("bytes", len(body)).Msg("document replaced")
	return nil
}
