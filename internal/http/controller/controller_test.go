package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/wandaazhar007/backend-kansha-2026/internal/auth"
	"github.com/wandaazhar007/backend-kansha-2026/internal/config"
	httpAPI "github.com/wandaazhar007/backend-kansha-2026/internal/http"
	"github.com/wandaazhar007/backend-kansha-2026/internal/http/controller"
	"github.com/wandaazhar007/backend-kansha-2026/internal/store"
)

const testToken = "valid-token"

// stubVerifier accepts exactly testToken and rejects everything else.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(_ context.Context, token string) (*auth.Identity, error) {
	if token == testToken {
		return &auth.Identity{SubjectID: "admin-1", Email: "admin@example.com"}, nil
	}
	return nil, auth.ErrInvalidToken
}

// newTestAPI builds the full router on an in-memory store.
func newTestAPI(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conf := &config.Config{
		RateLimit: config.RateLimit{RPS: 1000, Burst: 1000},
	}
	memStore := store.NewMemoryStore()

	server := gin.New()
	server = httpAPI.InitRouter(
		conf,
		server,
		stubVerifier{},
		controller.New(),
		controller.NewCategoryController(memStore),
		controller.NewProductController(memStore),
	)
	return server, memStore
}

type apiOption func(*http.Request)

func asAdmin(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+testToken)
}

func withCookieToken(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: "token", Value: testToken})
}

// doJSON performs a request against the router and decodes the JSON response.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, opts ...apiOption) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "response should be JSON: %s", w.Body.String())
	}
	return w.Code, resp
}

// rawRequest builds a request with a raw string body, for payloads that
// cannot be produced by the JSON encoder.
func rawRequest(t *testing.T, method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

// violatedFields extracts the field names from a 422 response body.
func violatedFields(t *testing.T, resp map[string]any) []string {
	t.Helper()
	details, ok := resp["details"].([]any)
	require.True(t, ok, "422 response should carry details: %v", resp)

	fields := make([]string, 0, len(details))
	for _, d := range details {
		entry, ok := d.(map[string]any)
		require.True(t, ok)
		field, _ := entry["field"].(string)
		fields = append(fields, field)
	}
	return fields
}
