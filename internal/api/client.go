// Package api is the typed client for the jam-sessions REST API. Every
// operation is a single best-effort request: no retries, no caching, no
// client-level timeout. Cancellation and deadlines come from the caller's
// context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	appLog "jamcal/internal/log"
	"jamcal/internal/model"
)

// APIVersion is the version prefix appended to the configured API root.
const APIVersion = "v1"

// APIError is the uniform failure for any non-2xx response, carrying the
// server-provided message from the body's "detail" field.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Client issues typed requests against a single API root.
type Client struct {
	base  string
	httpc *http.Client
}

// NewClient creates a client for the API served at root (e.g.
// "https://example.com/api"). A trailing slash on root is tolerated.
func NewClient(root string) *Client {
	return &Client{
		base:  strings.TrimRight(root, "/") + "/" + APIVersion,
		httpc: &http.Client{},
	}
}

// Venues fetches all venues.
func (c *Client) Venues(ctx context.Context) (model.VenuesFeatureCollection, error) {
	var out model.VenuesFeatureCollection
	err := c.do(ctx, http.MethodGet, "/venues", nil, &out)
	return out, err
}

// VenueByID fetches a single venue.
func (c *Client) VenueByID(ctx context.Context, id int32) (model.VenueFeature, error) {
	var out model.VenueFeature
	err := c.do(ctx, http.MethodGet, "/venues/"+itoa(id), nil, &out)
	return out, err
}

// PatchVenueByID applies a partial update to a venue. payload may be a
// model.VenueProperties or any JSON-serializable subset of its fields.
func (c *Client) PatchVenueByID(ctx context.Context, id int32, payload any) error {
	return c.do(ctx, http.MethodPatch, "/venues/"+itoa(id), payload, nil)
}

// DeleteVenueByID removes a venue.
func (c *Client) DeleteVenueByID(ctx context.Context, id int32) error {
	return c.do(ctx, http.MethodDelete, "/venues/"+itoa(id), nil, nil)
}

// Sessions fetches sessions (joined with their venues) matching opts.
func (c *Client) Sessions(ctx context.Context, opts SessionOptions) (model.SessionWithVenueFeatureCollection, error) {
	var out model.SessionWithVenueFeatureCollection
	err := c.do(ctx, http.MethodGet, "/jamsessions"+opts.Query(), nil, &out)
	return out, err
}

// SessionByID fetches a single session joined with its venue.
func (c *Client) SessionByID(ctx context.Context, id int32) (model.SessionWithVenueFeature, error) {
	var out model.SessionWithVenueFeature
	err := c.do(ctx, http.MethodGet, "/jamsessions/"+itoa(id), nil, &out)
	return out, err
}

// SessionsByVenueID fetches all sessions hosted at a venue.
func (c *Client) SessionsByVenueID(ctx context.Context, venueID int32) (model.SessionWithVenueFeatureCollection, error) {
	var out model.SessionWithVenueFeatureCollection
	err := c.do(ctx, http.MethodGet, "/venues/"+itoa(venueID)+"/jamsessions", nil, &out)
	return out, err
}

// PostSession creates a session. payload is a model.SessionProperties, or a
// model.SessionWithVenueProperties when the venue is created alongside.
func (c *Client) PostSession(ctx context.Context, payload any) error {
	return c.do(ctx, http.MethodPost, "/jamsessions", payload, nil)
}

// PatchSessionByID applies a partial update to a session.
func (c *Client) PatchSessionByID(ctx context.Context, id int32, payload any) error {
	return c.do(ctx, http.MethodPatch, "/jamsessions/"+itoa(id), payload, nil)
}

// DeleteSessionByID removes a session.
func (c *Client) DeleteSessionByID(ctx context.Context, id int32) error {
	return c.do(ctx, http.MethodDelete, "/jamsessions/"+itoa(id), nil, nil)
}

// CommentsBySessionID fetches all comments for a session.
func (c *Client) CommentsBySessionID(ctx context.Context, id int32) ([]model.SessionComment, error) {
	var out []model.SessionComment
	err := c.do(ctx, http.MethodGet, "/jamsessions/"+itoa(id)+"/comments", nil, &out)
	return out, err
}

// PostCommentForSession posts a comment on a session.
func (c *Client) PostCommentForSession(ctx context.Context, id int32, body model.CommentBody) error {
	return c.do(ctx, http.MethodPost, "/jamsessions/"+itoa(id)+"/comments", body, nil)
}

// PostSuggestionForSession posts an edit suggestion for a session.
func (c *Client) PostSuggestionForSession(ctx context.Context, id int32, body model.CommentBody) error {
	return c.do(ctx, http.MethodPost, "/jamsessions/"+itoa(id)+"/suggestions", body, nil)
}

// do performs a single request. payload (if non-nil) is JSON-encoded with a
// Content-Type header; out (if non-nil) receives the decoded success body.
// Non-2xx responses become an *APIError with the body's detail message; a
// body that cannot be decoded propagates its decode error as-is.
func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	appLog.Debug("api request", "method", method, "url", c.base+path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return err
		}
		return &APIError{Status: resp.StatusCode, Detail: er.Detail}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func itoa(id int32) string {
	return strconv.Itoa(int(id))
}
