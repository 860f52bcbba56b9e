package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLogging(t *testing.T, body []byte) (logged string, handlerSaw int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var logBuf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&logBuf, nil))

	r := gin.New()
	r.Use(Logging(base))
	r.POST("/orders", func(c *gin.Context) {
		got, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		handlerSaw = len(got)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return logBuf.String(), handlerSaw
}

func TestLoggingRedactsSmallBody(t *testing.T) {
	raw, err := json.Marshal(map[string]string{"password": "hunter2-super-secret", "name": "Maria"})
	require.NoError(t, err)

	logged, seen := runLogging(t, raw)

	assert.Equal(t, len(raw), seen)
	assert.Contains(t, logged, "***redacted***")
	assert.NotContains(t, logged, "hunter2-super-secret")
	assert.NotContains(t, logged, "truncated")
}

func TestLoggingRedactsOversizedBody(t *testing.T) {
	// Map keys marshal sorted, so the secret lands ahead of the padding and
	// ahead of the truncation cut.
	raw, err := json.Marshal(map[string]string{
		"password":   "hunter2-super-secret",
		"zz_padding": strings.Repeat("x", 10*1024),
	})
	require.NoError(t, err)

	logged, seen := runLogging(t, raw)

	assert.Equal(t, len(raw), seen, "handler must receive the whole body, not the logged cut")
	assert.Contains(t, logged, "***redacted***")
	assert.NotContains(t, logged, "hunter2-super-secret")
	assert.Contains(t, logged, "...truncated...")
}
