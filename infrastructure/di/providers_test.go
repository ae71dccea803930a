package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supportportal/infrastructure/config"
	"supportportal/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(loginURL string) *config.Config {
	return &config.Config{
		Environment: "development",
		LogLevel:    "info",
		CRM: config.CRMConfig{
			LoginURL:     loginURL,
			APIVersion:   "59.0",
			AuthFlow:     config.AuthFlowPassword,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Username:     "portal@example.com",
			Password:     "secret",
			LoginTimeout: 50 * time.Millisecond,
		},
		Knowledge: config.KnowledgeConfig{
			ArticleObject: "Knowledge__kav",
			CategoryGroup: "Topics",
			Locale:        "en_US",
			CategoryDepth: 4,
		},
	}
}

func TestProvideHTTPClient_HasNoTimeout(t *testing.T) {
	client := ProvideHTTPClient(testConfig("https://login.salesforce.com"))
	assert.Zero(t, client.Timeout)
}

func TestCRMCallsOutlastLoginTimeout(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "token",
			"instance_url": server.URL,
			"token_type":   "Bearer",
		})
	})
	mux.HandleFunc("/services/data/v59.0/support/dataCategoryGroups", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"categoryGroups":[{"name":"Topics","label":"Topics"}]}`))
	})

	cfg := testConfig(server.URL)
	logger := zap.NewNop()

	auth, err := ProvideAuthenticator(cfg)
	require.NoError(t, err)
	session := ProvideSession(context.Background(), cfg, auth, ProvideHTTPClient(cfg), observability.NewCollector("test"), logger)
	require.True(t, session.Ready())

	knowledge := ProvideKnowledgeBase(ProvideCRMClient(session, cfg), cfg)
	groups, err := knowledge.CategoryGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Topics", groups[0].Name)
}

func TestProvideSession_LoginIsBounded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	auth, err := ProvideAuthenticator(cfg)
	require.NoError(t, err)

	started := time.Now()
	session := ProvideSession(context.Background(), cfg, auth, ProvideHTTPClient(cfg), observability.NewCollector("test"), zap.NewNop())

	assert.False(t, session.Ready())
	assert.Less(t, time.Since(started), time.Second)
}
