package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAccessToken = "00Dxx0000001gPL!token"

// testOrg is a fake Salesforce org: a token endpoint plus whatever REST
// handlers a test registers under /services/data/v59.0
type testOrg struct {
	server *httptest.Server
	mux    *http.ServeMux
}

func newTestOrg(t *testing.T) *testOrg {
	t.Helper()

	org := &testOrg{mux: http.NewServeMux()}
	org.server = httptest.NewServer(org.mux)
	t.Cleanup(org.server.Close)

	org.mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "secretTOKEN" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"authentication failure"}`))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"access_token": testAccessToken,
			"instance_url": org.server.URL,
			"token_type":   "Bearer",
		})
	})
	return org
}

// handle registers an API handler and checks every call carries the session token
func (o *testOrg) handle(t *testing.T, path string, h http.HandlerFunc) {
	o.mux.HandleFunc("/services/data/v59.0"+path, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testAccessToken, r.Header.Get("Authorization"))
		h(w, r)
	})
}

func (o *testOrg) session(password string) *Session {
	auth := NewPasswordAuthenticator(o.server.URL, "client-id", "client-secret", "portal@example.com", password, "TOKEN")
	return NewSession(auth, o.server.Client(), zap.NewNop())
}

// connect returns a client over a connected session
func (o *testOrg) connect(t *testing.T) *Client {
	t.Helper()
	session := o.session("secret")
	require.NoError(t, session.Connect(context.Background()))
	return NewClient(session, "59.0")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
