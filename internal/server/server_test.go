package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/toyz/valuegen/internal/utils"
)

func newTestServer() *Server {
	config := DefaultConfig()
	config.EnableLogger = false
	config.MaxBatchSize = 3
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	return New(config, diagnostics)
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const personJSON = `{
  "typeName": "Person",
  "includes": ["RMBuilder"],
  "attributes": [
    {"name": "name", "nullability": "nonnull", "type": "NSString *"},
    {"name": "age", "type": "NSUInteger"}
  ]
}`

func TestDefaultConfig(t *testing.T) {
	t.Setenv("PORT", "9191")

	config := DefaultConfig()
	assert.Equal(t, "9191", config.Port)
	assert.Equal(t, ":9191", config.Address())
	assert.Equal(t, 30*time.Second, config.ShutdownTimeout)
	assert.True(t, config.EnableRecover)
	assert.Equal(t, "1M", config.MaxBodySize)
}

func TestServer_Health(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err)
}

func TestServer_Plugins(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/v1/plugins", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"builder","requiredIncludes":["RMBuilder"]}]`, rec.Body.String())
}

func TestServer_Builder(t *testing.T) {
	s := newTestServer()

	t.Run("json", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/v1/builders", echo.MIMEApplicationJSON, personJSON)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var response BuilderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "Person", response.ValueType)
		assert.False(t, response.Skipped)
		require.Len(t, response.Files, 1)
		assert.Equal(t, "PersonBuilder", response.Files[0].Name)
		require.Len(t, response.Files[0].Classes, 1)
		assert.Equal(t, "NSObject", response.Files[0].Classes[0].BaseClassName)
	})

	t.Run("yaml in and out", func(t *testing.T) {
		body := "typeName: Address\noptions:\n  builder: true\nattributes:\n  - name: street\n    type: NSString *\n"
		rec := do(t, s, http.MethodPost, "/v1/builders?format=yaml", "application/yaml", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "application/yaml", rec.Header().Get(echo.HeaderContentType))

		var response BuilderResponse
		require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "Address", response.ValueType)
		require.Len(t, response.Files, 1)
		assert.Equal(t, "AddressBuilder", response.Files[0].Name)
	})
}

func TestServer_BuilderErrors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name     string
		target   string
		body     string
		status   int
		contains string
	}{
		{
			name:     "empty body",
			target:   "/v1/builders",
			body:     "  ",
			status:   http.StatusBadRequest,
			contains: "request body is empty",
		},
		{
			name:     "syntax error",
			target:   "/v1/builders",
			body:     `{"typeName": "Person",}`,
			status:   http.StatusUnprocessableEntity,
			contains: "SyntaxError",
		},
		{
			name:     "invalid attribute",
			target:   "/v1/builders",
			body:     `{"typeName": "Person", "includes": ["RMBuilder"], "attributes": [{"name": "2fast", "type": "BOOL"}]}`,
			status:   http.StatusUnprocessableEntity,
			contains: "ValidationError",
		},
		{
			name:     "no builder include",
			target:   "/v1/builders",
			body:     `{"typeName": "Person", "attributes": []}`,
			status:   http.StatusUnprocessableEntity,
			contains: "does not include RMBuilder",
		},
		{
			name:     "several value types",
			target:   "/v1/builders",
			body:     `[{"typeName": "A", "attributes": []}, {"typeName": "B", "attributes": []}]`,
			status:   http.StatusBadRequest,
			contains: "/v1/builders/batch",
		},
		{
			name:     "unknown format",
			target:   "/v1/builders?format=toml",
			body:     personJSON,
			status:   http.StatusBadRequest,
			contains: "format",
		},
		{
			name:     "unknown route",
			target:   "/v1/unknown",
			body:     personJSON,
			status:   http.StatusNotFound,
			contains: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, echo.MIMEApplicationJSON, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)

			var body HttpError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.StatusCode)
			assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), body.RequestID)
		})
	}
}

func TestServer_Batch(t *testing.T) {
	s := newTestServer()

	body := `[
  {"typeName": "Person", "includes": ["RMBuilder"], "attributes": [{"name": "name", "type": "NSString *"}]},
  {"typeName": "Plain", "attributes": []},
  {"typeName": "Address", "options": {"builder": true}, "attributes": []}
]`
	rec := do(t, s, http.MethodPost, "/v1/builders/batch", echo.MIMEApplicationJSON, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), response.RequestID)
	require.Len(t, response.Builders, 3)

	assert.Equal(t, "Person", response.Builders[0].ValueType)
	assert.Equal(t, "PersonBuilder", response.Builders[0].Files[0].Name)

	assert.Equal(t, "Plain", response.Builders[1].ValueType)
	assert.True(t, response.Builders[1].Skipped)
	assert.Empty(t, response.Builders[1].Files)

	assert.Equal(t, "AddressBuilder", response.Builders[2].Files[0].Name)
}

func TestServer_BatchTooLarge(t *testing.T) {
	body := `[{"typeName": "A", "attributes": []}, {"typeName": "B", "attributes": []},
{"typeName": "C", "attributes": []}, {"typeName": "D", "attributes": []}]`

	rec := do(t, newTestServer(), http.MethodPost, "/v1/builders/batch", echo.MIMEApplicationJSON, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServer_BodyTooLarge(t *testing.T) {
	config := DefaultConfig()
	config.EnableLogger = false
	config.MaxBodySize = "1K"
	s := New(config, utils.NewDiagnosticSystem(utils.DiagnosticSilent))

	body := strings.Repeat(" ", 2048) + personJSON
	rec := do(t, s, http.MethodPost, "/v1/builders", echo.MIMEApplicationJSON, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var response HttpError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, http.StatusRequestEntityTooLarge, response.StatusCode)

	rec = do(t, s, http.MethodPost, "/v1/builders", echo.MIMEApplicationJSON, personJSON)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	config := DefaultConfig()
	config.Host = "127.0.0.1"
	config.Port = "0"
	config.EnableLogger = false
	config.ShutdownTimeout = time.Second
	s := New(config, utils.NewDiagnosticSystem(utils.DiagnosticSilent))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
