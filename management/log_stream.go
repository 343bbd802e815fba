package management

import (
	"context"
	"net/http"
	"net/url"
)

// LogStream ships tenant log events to an external sink (HTTP endpoint,
// event bus, SIEM).
type LogStream struct {
	ID     string                 `json:"id,omitempty"`
	Name   string                 `json:"name,omitempty"`
	Type   string                 `json:"type,omitempty"`
	Status string                 `json:"status,omitempty"`
	Sink   map[string]interface{} `json:"sink,omitempty"`
}

// LogStreamManager wraps the log-streams resource.
type LogStreamManager struct {
	client *Client
}

// List all log streams for the tenant.
func (m *LogStreamManager) List(ctx context.Context) ([]*LogStream, error) {
	var streams []*LogStream
	if err := m.client.do(ctx, http.MethodGet, "log-streams", nil, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// Read a log stream by id.
func (m *LogStreamManager) Read(ctx context.Context, id string) (*LogStream, error) {
	stream := &LogStream{}
	if err := m.client.do(ctx, http.MethodGet, "log-streams/"+url.PathEscape(id), nil, stream); err != nil {
		return nil, err
	}
	return stream, nil
}

// Create a log stream. The provider assigns the id, returned on stream.
func (m *LogStreamManager) Create(ctx context.Context, stream *LogStream) error {
	return m.client.do(ctx, http.MethodPost, "log-streams", stream, stream)
}

// Update a log stream by id. Type is immutable on the remote API and must
// not be set on stream.
func (m *LogStreamManager) Update(ctx context.Context, id string, stream *LogStream) error {
	return m.client.do(ctx, http.MethodPatch, "log-streams/"+url.PathEscape(id), stream, stream)
}

// Delete a log stream by id.
func (m *LogStreamManager) Delete(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodDelete, "log-streams/"+url.PathEscape(id), nil, nil)
}
