package management

import (
	"context"
	"net/http"
	"net/url"
)

// User is an end-user profile held by the tenant.
type User struct {
	ID            string                 `json:"user_id,omitempty"`
	Email         string                 `json:"email,omitempty"`
	EmailVerified bool                   `json:"email_verified,omitempty"`
	Name          string                 `json:"name,omitempty"`
	Nickname      string                 `json:"nickname,omitempty"`
	Picture       string                 `json:"picture,omitempty"`
	Connection    string                 `json:"connection,omitempty"`
	Password      string                 `json:"password,omitempty"`
	Blocked       bool                   `json:"blocked,omitempty"`
	UserMetadata  map[string]interface{} `json:"user_metadata,omitempty"`
	AppMetadata   map[string]interface{} `json:"app_metadata,omitempty"`
}

// UserList is a page of users with paging totals when requested via
// IncludeTotals.
type UserList struct {
	Start int     `json:"start"`
	Limit int     `json:"limit"`
	Total int     `json:"total"`
	Users []*User `json:"users"`
}

// UserManager wraps the users resource.
type UserManager struct {
	client *Client
}

// List users. Supported options: Page, PerPage, IncludeTotals, Query.
func (m *UserManager) List(ctx context.Context, opt ...RequestOption) (*UserList, error) {
	list := &UserList{}
	opt = append([]RequestOption{IncludeTotals(true)}, opt...)
	if err := m.client.do(ctx, http.MethodGet, "users", nil, list, opt...); err != nil {
		return nil, err
	}
	return list, nil
}

// Read a user by id.
func (m *UserManager) Read(ctx context.Context, id string) (*User, error) {
	user := &User{}
	if err := m.client.do(ctx, http.MethodGet, "users/"+url.PathEscape(id), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Create a user. Connection is required; the provider assigns the id,
// returned on user.
func (m *UserManager) Create(ctx context.Context, user *User) error {
	return m.client.do(ctx, http.MethodPost, "users", user, user)
}

// Update a user by id.
func (m *UserManager) Update(ctx context.Context, id string, user *User) error {
	return m.client.do(ctx, http.MethodPatch, "users/"+url.PathEscape(id), user, user)
}

// Delete a user by id.
func (m *UserManager) Delete(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodDelete, "users/"+url.PathEscape(id), nil, nil)
}
