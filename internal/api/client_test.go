package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harlow-hs/paydash/internal/common"
	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/query"
	"github.com/harlow-hs/paydash/internal/session"
)

func newTestSession(t *testing.T, token string) *session.Session {
	t.Helper()
	sess, err := session.New(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, sess.Initialize())
	if token != "" {
		require.NoError(t, sess.Set(token, session.User{ID: "u1", Email: "u1@example.com"}))
	}
	return sess
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *session.Session, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := newTestSession(t, token)
	client, err := NewClient(Config{BaseURL: server.URL}, sess)
	require.NoError(t, err)

	return client, sess, server
}

func emptyListBody() string {
	return `{"transactions": [], "pagination": {"currentPage":1,"totalPages":1,"totalCount":0,"hasNextPage":false,"hasPrevPage":false}}`
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{BaseURL: "https://api.example.com"}, wantErr: false},
		{name: "missing url", cfg: Config{}, wantErr: true},
		{name: "not a url", cfg: Config{BaseURL: "::bad::"}, wantErr: true},
		{name: "wrong scheme", cfg: Config{BaseURL: "ftp://api.example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListTransactionsQueryString(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(emptyListBody()))
	})
	client, _, _ := newTestClient(t, handler, "tok")

	st := query.DefaultState()
	st.Search = "abc"
	_, _, err := client.ListTransactions(context.Background(), st)
	require.NoError(t, err)

	for _, pair := range []string{
		"page=1", "limit=10", "sortBy=payment_time", "sortOrder=desc", "search=abc",
	} {
		assert.Contains(t, gotQuery, pair)
	}
}

func TestListTransactionsRepeatsFilterKeys(t *testing.T) {
	var gotStatuses, gotSchools []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatuses = r.URL.Query()["status"]
		gotSchools = r.URL.Query()["school_id"]
		_, _ = w.Write([]byte(emptyListBody()))
	})
	client, _, _ := newTestClient(t, handler, "tok")

	st := query.DefaultState()
	st.Statuses = []string{"success", "failed"}
	st.SchoolIDs = []string{"sch-1", "sch-2"}
	_, _, err := client.ListTransactions(context.Background(), st)
	require.NoError(t, err)

	assert.Equal(t, []string{"success", "failed"}, gotStatuses)
	assert.Equal(t, []string{"sch-1", "sch-2"}, gotSchools)
}

func TestListTransactionsParsesResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"transactions": []map[string]any{
				{"collect_id": "c1", "custom_order_id": "ORD-1", "status": "SUCCESS", "transaction_amount": 1200.0},
				{"collect_id": "c2", "custom_order_id": "ORD-2", "status": "pending"},
			},
			"pagination": map[string]any{
				"currentPage": 2, "totalPages": 5, "totalCount": 42,
				"hasNextPage": true, "hasPrevPage": true,
			},
		})
	})
	client, _, _ := newTestClient(t, handler, "tok")

	txns, meta, err := client.ListTransactions(context.Background(), query.DefaultState())
	require.NoError(t, err)

	require.Len(t, txns, 2)
	assert.Equal(t, model.StatusSuccess, txns[0].Status)
	assert.Equal(t, model.StatusPending, txns[1].Status)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 5, meta.TotalPages)
	assert.Equal(t, 42, meta.TotalCount)
	assert.True(t, meta.HasNextPage)
}

func TestListTransactionsSendsBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(emptyListBody()))
	})
	client, _, _ := newTestClient(t, handler, "tok-xyz")

	_, _, err := client.ListTransactions(context.Background(), query.DefaultState())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestListSchoolTransactions(t *testing.T) {
	t.Run("scopes by path and drops the school filter param", func(t *testing.T) {
		var gotPath, gotQuery string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(emptyListBody()))
		})
		client, _, _ := newTestClient(t, handler, "tok")

		st := query.DefaultState()
		st.SchoolIDs = []string{"sch-1"}
		_, _, err := client.ListSchoolTransactions(context.Background(), "sch-1", st)
		require.NoError(t, err)

		assert.Equal(t, "/transactions/school/sch-1", gotPath)
		assert.NotContains(t, gotQuery, "school_id")
	})

	t.Run("rejects empty school id", func(t *testing.T) {
		client, _, _ := newTestClient(t, http.NotFoundHandler(), "tok")
		_, _, err := client.ListSchoolTransactions(context.Background(), "  ", query.DefaultState())
		assert.Error(t, err)
	})
}

func TestLookupStatus(t *testing.T) {
	t.Run("empty id short-circuits with zero requests", func(t *testing.T) {
		var calls int
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		})
		client, _, _ := newTestClient(t, handler, "tok")

		for _, id := range []string{"", "   ", "\t\n"} {
			_, err := client.LookupStatus(context.Background(), id)
			assert.ErrorIs(t, err, common.ErrEmptyOrderID)
		}
		assert.Equal(t, 0, calls)
	})

	t.Run("found", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transactions/status/ORD-77", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"collect_id": "c7", "custom_order_id": "ORD-77", "status": "Failed",
				"error_message": "insufficient balance",
			})
		})
		client, _, _ := newTestClient(t, handler, "tok")

		txn, err := client.LookupStatus(context.Background(), " ORD-77 ")
		require.NoError(t, err)
		assert.Equal(t, "ORD-77", txn.CustomOrderID)
		assert.Equal(t, model.StatusFailed, txn.Status)
	})

	t.Run("not found carries the server message", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "no transaction with order id ORD-0"}`))
		})
		client, _, _ := newTestClient(t, handler, "tok")

		_, err := client.LookupStatus(context.Background(), "ORD-0")
		assert.ErrorIs(t, err, common.ErrNotFound)
		assert.Contains(t, err.Error(), "no transaction with order id ORD-0")
	})
}

func TestUnauthorizedClearsSessionOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "token expired"}`))
	})
	client, sess, _ := newTestClient(t, handler, "stale-tok")
	require.True(t, sess.Authenticated())

	_, _, err := client.ListTransactions(context.Background(), query.DefaultState())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token())

	// A second 401 finds nothing left to clear.
	_, err = client.LookupStatus(context.Background(), "ORD-1")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, sess.Authenticated())
}

func TestLogin(t *testing.T) {
	t.Run("stores token and user", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "admin@school.test", body["email"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "fresh-tok",
				"user":  map[string]string{"id": "u9", "name": "Admin", "email": "admin@school.test"},
			})
		})
		client, sess, _ := newTestClient(t, handler, "")

		user, err := client.Login(context.Background(), "admin@school.test", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "Admin", user.Name)
		assert.Equal(t, "fresh-tok", sess.Token())
	})

	t.Run("bad credentials surface the server message", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "invalid credentials"}`))
		})
		client, sess, _ := newTestClient(t, handler, "")

		_, err := client.Login(context.Background(), "x@y.z", "nope")
		assert.ErrorIs(t, err, common.ErrUnauthorized)
		assert.Contains(t, err.Error(), "invalid credentials")
		assert.False(t, sess.Authenticated())
	})
}

func TestProfile(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "name": "Priya", "email": "priya@example.com"})
	})
	client, _, _ := newTestClient(t, handler, "tok")

	user, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Priya", user.Name)
}

func TestServerErrorIsSurfacedOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "database unavailable"}`))
	})
	client, sess, _ := newTestClient(t, handler, "tok")

	_, _, err := client.ListTransactions(context.Background(), query.DefaultState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
	// A transport-level failure must not touch credentials.
	assert.True(t, sess.Authenticated())
}
