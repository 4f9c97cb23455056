package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zanta/lfp-client/internal/core/domain"
)

// Users returns the admin user-management facade. Admin-only by backend
// policy; the UI merely hides these actions from members.
func (c *Client) Users() *UsersAPI {
	return &UsersAPI{c: c}
}

// UsersAPI wraps the admin user endpoints.
type UsersAPI struct {
	c *Client
}

// List fetches all user accounts.
func (u *UsersAPI) List(ctx context.Context) ([]domain.User, error) {
	resp, err := u.c.Do(ctx, "/api/v1/admin/users", Options{})
	if err != nil {
		return nil, err
	}
	raw, err := normalizeList(resp.Raw, "users")
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Remove deletes the account with the given ID.
func (u *UsersAPI) Remove(ctx context.Context, id int64) error {
	_, err := u.c.Do(ctx, fmt.Sprintf("/api/v1/admin/users/%d", id), Options{
		Method: http.MethodDelete,
	})
	return err
}

// Promote grants the ADMIN role to the account with the given ID.
func (u *UsersAPI) Promote(ctx context.Context, id int64) error {
	_, err := u.c.Do(ctx, fmt.Sprintf("/api/v1/admin/users/%d/make-admin", id), Options{
		Method: http.MethodPost,
	})
	return err
}
