package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to the kiosk backend service over HTTP+JSON.
type Client struct {
	baseURL *url.URL
	httpCl  *http.Client
}

// NewClient creates a new backend client for the given base origin
// (e.g. "http://localhost:8080").
func NewClient(rawURL string) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	return &Client{baseURL: parsed, httpCl: http.DefaultClient}, nil
}

// resolveURL builds a full URL from the base origin and the endpoint path.
func (c *Client) resolveURL(endpoint string) string {
	return c.baseURL.JoinPath(endpoint).String()
}

// doPostJSON performs a POST request with a JSON body and unmarshals the
// JSON response into the result type.
func doPostJSON[T any](ctx context.Context, c *Client, endpoint string, requestBody any) (*T, error) {
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}

// Validate submits a captured photo for identification. The returned
// result carries the cropped face region and, for a known face, the
// matching user profile.
func (c *Client) Validate(ctx context.Context, image string) (*ValidationResult, error) {
	return doPostJSON[ValidationResult](ctx, c, "validate", map[string]string{
		"image": image,
	})
}

// registerResponse wraps the newuser endpoint response.
type registerResponse struct {
	User UserProfile `json:"user"`
}

// Register creates a new user from the registration draft and the
// captured photo and returns the stored profile.
func (c *Client) Register(ctx context.Context, draft DraftProfile, photo string) (*UserProfile, error) {
	result, err := doPostJSON[registerResponse](ctx, c, "newuser", map[string]any{
		"user":  draft,
		"photo": photo,
	})
	if err != nil {
		return nil, err
	}
	return &result.User, nil
}

// SubmitOrder sends the assembled cart for the given user and returns
// the order confirmation.
func (c *Client) SubmitOrder(ctx context.Context, user UserProfile, cart map[string]CartItem) (*OrderConfirmation, error) {
	return doPostJSON[OrderConfirmation](ctx, c, "order", map[string]any{
		"user": user,
		"cart": cart,
	})
}
