// Package hubspot implements a minimal client for the HubSpot Forms
// submission API (v3 integration endpoint). It only supports the one write
// operation the relay needs: submitting a set of form fields.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
)

const globalHost = "https://api.hsforms.com"

// Field is a single (name, value) pair in a form submission. Values are
// always trimmed, non-empty strings by the time they reach the client.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Context carries optional page/visitor attribution metadata.
type Context struct {
	PageURI  string `json:"pageUri,omitempty"`
	PageName string `json:"pageName,omitempty"`
	HUTK     string `json:"hutk,omitempty"`
}

// SubmissionPayload is the exact wire shape of a forms API submission.
// Context is omitted entirely when no attribution metadata is present.
type SubmissionPayload struct {
	SubmittedAt int64    `json:"submittedAt"`
	Fields      []Field  `json:"fields"`
	Context     *Context `json:"context,omitempty"`
}

// ClientInterface defines the interface for HubSpot client operations
type ClientInterface interface {
	Submit(ctx context.Context, formGUID string, payload *SubmissionPayload) error
}

type Client struct {
	portalID   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a forms API client for the given portal and region.
// Regions na1 and na2 are served by the global host; any other region gets
// a region-specific subdomain.
func NewClient(portalID, region string, timeout time.Duration) *Client {
	return &Client{
		portalID:   portalID,
		baseURL:    BaseURLForRegion(region),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURLForRegion returns the forms API host for a HubSpot region.
func BaseURLForRegion(region string) string {
	if region == "na1" || region == "na2" || region == "" {
		return globalHost
	}
	return fmt.Sprintf("https://api-%s.hsforms.com", region)
}

// Submit posts a single form submission. It performs exactly one attempt:
// a non-2xx response or transport failure is returned as an error with the
// upstream detail logged for operators, never surfaced to callers.
func (c *Client) Submit(ctx context.Context, formGUID string, payload *SubmissionPayload) error {
	log := logger.GetLogger()

	submitURL := fmt.Sprintf("%s/submissions/v3/integration/submit/%s/%s", c.baseURL, c.portalID, formGUID)
	log.Debugw("Submitting to HubSpot forms API", "url", submitURL, "fields", len(payload.Fields))

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode submission payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, submitURL, bytes.NewReader(body))
	if err != nil {
		log.Errorw("Failed to create HubSpot request", "error", err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorw("Failed to execute HubSpot request", "error", err)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Errorw("HubSpot form submission failed",
			"status", resp.StatusCode,
			"statusText", resp.Status,
			"body", string(errBody),
		)
		return fmt.Errorf("hubspot API returned status: %d", resp.StatusCode)
	}

	log.Debugw("HubSpot form submission accepted", "status", resp.StatusCode)
	return nil
}
