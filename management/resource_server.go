package management

import (
	"context"
	"net/http"
	"net/url"
)

// ResourceServer is an API registered with the tenant, identified by the
// audience value access tokens are issued for.
type ResourceServer struct {
	ID               string                `json:"id,omitempty"`
	Name             string                `json:"name,omitempty"`
	Identifier       string                `json:"identifier,omitempty"`
	SigningAlgorithm string                `json:"signing_alg,omitempty"`
	TokenLifetime    int                   `json:"token_lifetime,omitempty"`
	Scopes           []ResourceServerScope `json:"scopes,omitempty"`
}

// ResourceServerScope is one permission exposed by a resource server.
type ResourceServerScope struct {
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
}

// ResourceServerManager wraps the resource-servers resource.
type ResourceServerManager struct {
	client *Client
}

// List resource servers. Supported options: Page, PerPage.
func (m *ResourceServerManager) List(ctx context.Context, opt ...RequestOption) ([]*ResourceServer, error) {
	var servers []*ResourceServer
	if err := m.client.do(ctx, http.MethodGet, "resource-servers", nil, &servers, opt...); err != nil {
		return nil, err
	}
	return servers, nil
}

// Read a resource server by id or audience identifier.
func (m *ResourceServerManager) Read(ctx context.Context, id string) (*ResourceServer, error) {
	server := &ResourceServer{}
	if err := m.client.do(ctx, http.MethodGet, "resource-servers/"+url.PathEscape(id), nil, server); err != nil {
		return nil, err
	}
	return server, nil
}

// Create a resource server. Identifier is required and immutable; the
// provider assigns the id, returned on server.
func (m *ResourceServerManager) Create(ctx context.Context, server *ResourceServer) error {
	return m.client.do(ctx, http.MethodPost, "resource-servers", server, server)
}

// Update a resource server by id.
func (m *ResourceServerManager) Update(ctx context.Context, id string, server *ResourceServer) error {
	return m.client.do(ctx, http.MethodPatch, "resource-servers/"+url.PathEscape(id), server, server)
}

// Delete a resource server by id.
func (m *ResourceServerManager) Delete(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodDelete, "resource-servers/"+url.PathEscape(id), nil, nil)
}
