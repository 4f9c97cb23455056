package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zanta/lfp-client/internal/core/domain"
)

// Posts returns the LFG-posts facade.
func (c *Client) Posts() *PostsAPI {
	return &PostsAPI{c: c}
}

// PostsAPI wraps the looking-for-group post endpoints.
type PostsAPI struct {
	c *Client
}

// postEnvelope covers the backend's single-post responses, which wrap the
// record ({"post": {...}, "message": "..."}).
type postEnvelope struct {
	Post    *domain.Post `json:"post"`
	Message string       `json:"message"`
}

// messageEnvelope covers the join/leave acknowledgements.
type messageEnvelope struct {
	Message string `json:"message"`
}

// List fetches all posts. PartyCode and HasJoined on each record reflect the
// calling user's membership, as computed by the backend.
func (p *PostsAPI) List(ctx context.Context) ([]domain.Post, error) {
	resp, err := p.c.Do(ctx, "/api/v1/posts/all", Options{})
	if err != nil {
		return nil, err
	}
	raw, err := normalizeList(resp.Raw, "posts")
	if err != nil {
		return nil, err
	}
	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a single post by ID.
func (p *PostsAPI) Get(ctx context.Context, id int64) (*domain.Post, error) {
	resp, err := p.c.Do(ctx, fmt.Sprintf("/api/v1/posts/%d", id), Options{})
	if err != nil {
		return nil, err
	}
	return decodePost(resp)
}

// Create publishes a new post from the draft.
func (p *PostsAPI) Create(ctx context.Context, draft domain.PostDraft) (*domain.Post, error) {
	resp, err := p.c.Do(ctx, "/api/v1/posts", Options{
		Method: http.MethodPost,
		Body:   draft,
	})
	if err != nil {
		return nil, err
	}
	return decodePost(resp)
}

// Remove deletes a post. The backend only allows the owner or an admin.
func (p *PostsAPI) Remove(ctx context.Context, id int64) error {
	_, err := p.c.Do(ctx, fmt.Sprintf("/api/v1/posts/%d", id), Options{
		Method: http.MethodDelete,
	})
	return err
}

// Join adds the caller to the post's party and returns the backend's
// acknowledgement message.
func (p *PostsAPI) Join(ctx context.Context, id int64) (string, error) {
	resp, err := p.c.Do(ctx, fmt.Sprintf("/api/v1/posts/%d/join", id), Options{
		Method: http.MethodPost,
	})
	if err != nil {
		return "", err
	}
	var ack messageEnvelope
	if err := resp.Decode(&ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

// CancelJoin removes the caller from the post's party.
func (p *PostsAPI) CancelJoin(ctx context.Context, id int64) (string, error) {
	resp, err := p.c.Do(ctx, fmt.Sprintf("/api/v1/posts/%d/cancel-join", id), Options{
		Method: http.MethodPost,
	})
	if err != nil {
		return "", err
	}
	var ack messageEnvelope
	if err := resp.Decode(&ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

// decodePost accepts both the wrapped and the bare single-post shape.
func decodePost(resp *Response) (*domain.Post, error) {
	var env postEnvelope
	if err := resp.Decode(&env); err == nil && env.Post != nil {
		return env.Post, nil
	}
	var post domain.Post
	if err := resp.Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}
