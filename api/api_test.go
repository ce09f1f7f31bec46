package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagarniyantran/civicnav/api"
)

func TestGetSwagger(t *testing.T) {
	doc, err := api.GetSwagger()
	require.NoError(t, err)
	require.NotNil(t, doc.Info)
	assert.NotEmpty(t, doc.Info.Version)

	for _, path := range []string{
		"/health", "/info", "/screens",
		"/sessions", "/sessions/{id}", "/sessions/{id}/events", "/sessions/{id}/stream",
		"/sessions/{id}/navigate", "/sessions/{id}/back", "/sessions/{id}/login",
		"/sessions/{id}/role", "/sessions/{id}/language",
		"/collections/{name}",
	} {
		assert.NotNil(t, doc.Paths.Find(path), "missing path %s", path)
	}
}

func TestGetSwagger_Routes(t *testing.T) {
	doc, err := api.GetSwagger()
	require.NoError(t, err)
	router, err := gorillamux.NewRouter(doc)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sessions/s1/events", strings.NewReader(`{"event":"complete"}`))
	req = req.WithContext(context.Background())
	route, params, err := router.FindRoute(req)
	require.NoError(t, err)
	assert.Equal(t, "dispatchEvent", route.Operation.OperationID)
	assert.Equal(t, "s1", params["id"])
}

func TestRawSpec(t *testing.T) {
	raw := api.RawSpec()
	assert.True(t, strings.HasPrefix(string(raw), "openapi: 3.0.3"))
	raw[0] = 'X'
	assert.Equal(t, byte('o'), api.RawSpec()[0], "callers get a copy")
}
