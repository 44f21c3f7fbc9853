package misskey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Misskey HTTP API. Every endpoint is a POST with the
// credential carried in the JSON body (`i` field), per the Misskey API
// convention.
type Client struct {
	origin string
	token  string
	client *http.Client
}

// APIError captures non-2xx responses to allow inspection of the status code.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Body)
}

func NewClient(origin, token string) *Client {
	return &Client{
		origin: strings.TrimRight(origin, "/"),
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// request posts params to /api/<endpoint> and decodes the response into out
// (out may be nil for endpoints whose response the caller ignores).
func (c *Client) request(ctx context.Context, endpoint string, params map[string]any, out any) error {
	body := map[string]any{"i": c.token}
	for k, v := range params {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.origin+"/api/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}

// Me returns the authenticated bot account. Used once at startup as the
// login check.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.request(ctx, "i", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Relation reports the bot's relationship to userID.
func (c *Client) Relation(ctx context.Context, userID string) (*Relation, error) {
	// users/relation takes a list and answers elementwise.
	var relations []Relation
	if err := c.request(ctx, "users/relation", map[string]any{"userId": []string{userID}}, &relations); err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return &Relation{ID: userID}, nil
	}
	return &relations[0], nil
}

// Follow issues a follow request for userID.
func (c *Client) Follow(ctx context.Context, userID string) error {
	return c.request(ctx, "following/create", map[string]any{"userId": userID}, nil)
}

// CreateNote posts a note (a reply when params.ReplyID is set).
func (c *Client) CreateNote(ctx context.Context, params CreateNoteParams) error {
	p := map[string]any{"text": params.Text}
	if params.ReplyID != "" {
		p["replyId"] = params.ReplyID
	}
	if params.Visibility != "" {
		p["visibility"] = params.Visibility
	}
	return c.request(ctx, "notes/create", p, nil)
}

// CreateReaction adds a reaction to a note. Posting a reaction that already
// exists yields an APIError; callers treat that as expected.
func (c *Client) CreateReaction(ctx context.Context, noteID, reaction string) error {
	return c.request(ctx, "notes/reactions/create", map[string]any{"noteId": noteID, "reaction": reaction}, nil)
}
