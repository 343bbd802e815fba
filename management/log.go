package management

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Log is one tenant log event. The event taxonomy (type codes) is owned by
// the provider.
type Log struct {
	ID          string                 `json:"log_id,omitempty"`
	Type        string                 `json:"type,omitempty"`
	Date        time.Time              `json:"date,omitempty"`
	ClientID    string                 `json:"client_id,omitempty"`
	ClientName  string                 `json:"client_name,omitempty"`
	UserID      string                 `json:"user_id,omitempty"`
	IP          string                 `json:"ip,omitempty"`
	UserAgent   string                 `json:"user_agent,omitempty"`
	Description string                 `json:"description,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// LogManager wraps the read-only logs resource.
type LogManager struct {
	client *Client
}

// List log events, most recent first. Supported options: Page, PerPage,
// Query, Parameter("from", ...) for checkpoint pagination.
func (m *LogManager) List(ctx context.Context, opt ...RequestOption) ([]*Log, error) {
	var logs []*Log
	if err := m.client.do(ctx, http.MethodGet, "logs", nil, &logs, opt...); err != nil {
		return nil, err
	}
	return logs, nil
}

// Read a single log event by id.
func (m *LogManager) Read(ctx context.Context, id string) (*Log, error) {
	logEvent := &Log{}
	if err := m.client.do(ctx, http.MethodGet, "logs/"+url.PathEscape(id), nil, logEvent); err != nil {
		return nil, err
	}
	return logEvent, nil
}
