package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

func testCreds() domain.ClientCredentials {
	return domain.ClientCredentials{ClientID: "client-1", ClientSecret: "secret-1"}
}

func TestExchangeSuccess(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"client_id":     r.PostFormValue("client_id"),
			"client_secret": r.PostFormValue("client_secret"),
			"code":          r.PostFormValue("code"),
			"redirect_uri":  r.PostFormValue("redirect_uri"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok-123", "token_type": "Bearer"}`))
	}))
	defer srv.Close()

	e := &Exchanger{TokenURL: srv.URL}
	token, err := e.Exchange(context.Background(), testCreds(), "code-1", "http://localhost:8080/callback")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, map[string]string{
		"client_id":     "client-1",
		"client_secret": "secret-1",
		"code":          "code-1",
		"redirect_uri":  "http://localhost:8080/callback",
	}, gotForm)
}

func TestExchangeFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "http error status",
			status:  http.StatusBadRequest,
			body:    `{"error": "invalid_grant"}`,
			wantMsg: "HTTP 400",
		},
		{
			name:    "provider error field",
			status:  http.StatusOK,
			body:    `{"error": "incorrect_application_credentials"}`,
			wantMsg: "incorrect_application_credentials",
		},
		{
			name:    "missing access token",
			status:  http.StatusOK,
			body:    `{"token_type": "Bearer"}`,
			wantMsg: "no access_token",
		},
		{
			name:    "malformed response",
			status:  http.StatusOK,
			body:    `not json`,
			wantMsg: "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			e := &Exchanger{TokenURL: srv.URL}
			_, err := e.Exchange(context.Background(), testCreds(), "code-1", "http://localhost:8080/callback")
			assert.ErrorIs(t, err, domain.ErrExchangeFailed)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestExchangeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens any more

	e := &Exchanger{TokenURL: srv.URL}
	_, err := e.Exchange(context.Background(), testCreds(), "code-1", "http://localhost:8080/callback")
	assert.ErrorIs(t, err, domain.ErrExchangeFailed)
}
