package management

import (
	"context"
	"net/http"
	"net/url"
)

// Connection is a source of users for the tenant: a database, a social
// provider, an enterprise directory.
type Connection struct {
	ID             string                 `json:"id,omitempty"`
	Name           string                 `json:"name,omitempty"`
	Strategy       string                 `json:"strategy,omitempty"`
	EnabledClients []string               `json:"enabled_clients,omitempty"`
	Realms         []string               `json:"realms,omitempty"`
	Options        map[string]interface{} `json:"options,omitempty"`
}

// ConnectionList is a page of connections with paging totals when
// requested via IncludeTotals.
type ConnectionList struct {
	Start       int           `json:"start"`
	Limit       int           `json:"limit"`
	Total       int           `json:"total"`
	Connections []*Connection `json:"connections"`
}

// ConnectionManager wraps the connections resource.
type ConnectionManager struct {
	client *Client
}

// List connections. Supported options: Page, PerPage, IncludeTotals,
// Parameter("strategy", ...).
func (m *ConnectionManager) List(ctx context.Context, opt ...RequestOption) (*ConnectionList, error) {
	list := &ConnectionList{}
	opt = append([]RequestOption{IncludeTotals(true)}, opt...)
	if err := m.client.do(ctx, http.MethodGet, "connections", nil, list, opt...); err != nil {
		return nil, err
	}
	return list, nil
}

// Read a connection by id.
func (m *ConnectionManager) Read(ctx context.Context, id string) (*Connection, error) {
	conn := &Connection{}
	if err := m.client.do(ctx, http.MethodGet, "connections/"+url.PathEscape(id), nil, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Create a connection. The provider assigns the id, returned on conn.
func (m *ConnectionManager) Create(ctx context.Context, conn *Connection) error {
	return m.client.do(ctx, http.MethodPost, "connections", conn, conn)
}

// Update a connection by id. Name and Strategy are immutable on the remote
// API and must not be set on conn.
func (m *ConnectionManager) Update(ctx context.Context, id string, conn *Connection) error {
	return m.client.do(ctx, http.MethodPatch, "connections/"+url.PathEscape(id), conn, conn)
}

// Delete a connection by id.
func (m *ConnectionManager) Delete(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodDelete, "connections/"+url.PathEscape(id), nil, nil)
}
