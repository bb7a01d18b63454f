package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/profila/httpapi"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	return httpapi.SetupRouter(httpapi.NewHandler(nil))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFitExecuteResult_BruteFD(t *testing.T) {
	router := newTestRouter()

	fitBody := map[string]interface{}{
		"columns": []string{"id", "name"},
		"rows": [][]string{
			{"1", "alice"},
			{"2", "bob"},
		},
	}
	rec := doJSON(t, router, http.MethodPost, "/primitives/brute_fd/fit", fitBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/primitives/brute_fd/execute", map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	var execResp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &execResp))
	assert.Equal(t, "executed", execResp["status"])

	rec = doJSON(t, router, http.MethodGet, "/primitives/brute_fd/result", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleExecute_WithoutFitReturns404(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, http.MethodPost, "/primitives/brute_fd/execute", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleFit_UnknownTagReturns404(t *testing.T) {
	router := newTestRouter()
	fitBody := map[string]interface{}{
		"columns": []string{"a"},
		"rows":    [][]string{{"1"}},
	}
	rec := doJSON(t, router, http.MethodPost, "/primitives/nonexistent/fit", fitBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
