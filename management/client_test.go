package management

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManagementServer(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()
	require := require.New(t)
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	client, err := NewClient(&Config{
		Domain: ts.URL,
		Token:  "test-token",
	})
	require.NoError(err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "valid",
			config: &Config{Domain: "tenant.example.com", Token: "test-token"},
		},
		{
			name:    "nil-config",
			config:  nil,
			wantErr: true,
		},
		{
			name:    "empty-domain",
			config:  &Config{Token: "test-token"},
			wantErr: true,
		},
		{
			name:    "empty-token",
			config:  &Config{Domain: "tenant.example.com"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			_, err := NewClient(tt.config)
			if tt.wantErr {
				require.Error(err)
				return
			}
			require.NoError(err)
		})
	}
}

func TestClient_managerRegistry(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	client, err := NewClient(&Config{Domain: "tenant.example.com", Token: "test-token"})
	require.NoError(err)

	// accessors are memoized per client instance
	assert.Same(client.Connections(), client.Connections())
	assert.Same(client.Logs(), client.Logs())
	assert.Same(client.LogStreams(), client.LogStreams())
	assert.Same(client.Users(), client.Users())
	assert.Same(client.ResourceServers(), client.ResourceServers())
}

func TestConnectionManager(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		client := testManagementServer(t, map[string]http.HandlerFunc{
			"/api/v2/connections": func(w http.ResponseWriter, r *http.Request) {
				assert.Equal("true", r.URL.Query().Get("include_totals"))
				assert.Equal("database", r.URL.Query().Get("strategy"))
				_ = json.NewEncoder(w).Encode(&ConnectionList{
					Total: 1,
					Connections: []*Connection{
						{ID: "con_1", Name: "db", Strategy: "database"},
					},
				})
			},
		})
		list, err := client.Connections().List(ctx, Parameter("strategy", "database"))
		require.NoError(err)
		require.Len(list.Connections, 1)
		assert.Equal("con_1", list.Connections[0].ID)
	})
	t.Run("create-returns-assigned-id", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		client := testManagementServer(t, map[string]http.HandlerFunc{
			"/api/v2/connections": func(w http.ResponseWriter, r *http.Request) {
				require.Equal(http.MethodPost, r.Method)
				var conn Connection
				require.NoError(json.NewDecoder(r.Body).Decode(&conn))
				conn.ID = "con_new"
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(&conn)
			},
		})
		conn := &Connection{Name: "db", Strategy: "database"}
		require.NoError(client.Connections().Create(ctx, conn))
		assert.Equal("con_new", conn.ID)
	})
	t.Run("read-not-found", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		client := testManagementServer(t, map[string]http.HandlerFunc{
			"/api/v2/connections/con_missing": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"statusCode":404,"error":"Not Found","message":"the connection does not exist"}`))
			},
		})
		_, err := client.Connections().Read(ctx, "con_missing")
		require.Error(err)
		apiErr := &Error{}
		require.True(errors.As(err, &apiErr))
		assert.True(apiErr.NotFound())
		assert.Equal("the connection does not exist", apiErr.Message)
	})
	t.Run("delete", func(t *testing.T) {
		require := require.New(t)
		client := testManagementServer(t, map[string]http.HandlerFunc{
			"/api/v2/connections/con_1": func(w http.ResponseWriter, r *http.Request) {
				require.Equal(http.MethodDelete, r.Method)
				w.WriteHeader(http.StatusNoContent)
			},
		})
		require.NoError(client.Connections().Delete(ctx, "con_1"))
	})
}

func TestLogManager_List(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()
	client := testManagementServer(t, map[string]http.HandlerFunc{
		"/api/v2/logs": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("2", r.URL.Query().Get("page"))
			assert.Equal("50", r.URL.Query().Get("per_page"))
			_ = json.NewEncoder(w).Encode([]*Log{
				{ID: "log_1", Type: "s", Description: "Successful login"},
			})
		},
	})
	logs, err := client.Logs().List(ctx, Page(2), PerPage(50))
	require.NoError(err)
	require.Len(logs, 1)
	assert.Equal("log_1", logs[0].ID)
}

func TestUserManager(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()
	client := testManagementServer(t, map[string]http.HandlerFunc{
		"/api/v2/users": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(`email:"alice@example.com"`, r.URL.Query().Get("q"))
			_ = json.NewEncoder(w).Encode(&UserList{
				Total: 1,
				Users: []*User{{ID: "usr_1", Email: "alice@example.com"}},
			})
		},
		"/api/v2/users/usr_1": func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPatch:
				var user User
				require.NoError(json.NewDecoder(r.Body).Decode(&user))
				user.ID = "usr_1"
				_ = json.NewEncoder(w).Encode(&user)
			default:
				_ = json.NewEncoder(w).Encode(&User{ID: "usr_1", Email: "alice@example.com"})
			}
		},
	})

	list, err := client.Users().List(ctx, Query(`email:"alice@example.com"`))
	require.NoError(err)
	require.Len(list.Users, 1)

	user, err := client.Users().Read(ctx, "usr_1")
	require.NoError(err)
	assert.Equal("alice@example.com", user.Email)

	update := &User{Name: "Alice"}
	require.NoError(client.Users().Update(ctx, "usr_1", update))
	assert.Equal("usr_1", update.ID)
}

func TestLogStreamManager_roundTrip(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()
	client := testManagementServer(t, map[string]http.HandlerFunc{
		"/api/v2/log-streams": func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var stream LogStream
				require.NoError(json.NewDecoder(r.Body).Decode(&stream))
				stream.ID = "ls_new"
				stream.Status = "active"
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(&stream)
			default:
				_ = json.NewEncoder(w).Encode([]*LogStream{{ID: "ls_1"}})
			}
		},
	})

	stream := &LogStream{Name: "siem", Type: "http", Sink: map[string]interface{}{
		"httpEndpoint": "https://siem.example.com/ingest",
	}}
	require.NoError(client.LogStreams().Create(ctx, stream))
	assert.Equal("ls_new", stream.ID)
	assert.Equal("active", stream.Status)

	streams, err := client.LogStreams().List(ctx)
	require.NoError(err)
	require.Len(streams, 1)
}

func TestError_unparsableBody(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()
	client := testManagementServer(t, map[string]http.HandlerFunc{
		"/api/v2/resource-servers": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream exploded"))
		},
	})
	_, err := client.ResourceServers().List(ctx)
	require.Error(err)
	apiErr := &Error{}
	require.True(errors.As(err, &apiErr))
	assert.Equal(http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal("upstream exploded", apiErr.Message)
}
