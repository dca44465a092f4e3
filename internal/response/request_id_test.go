package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func requestIDServer() *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { Success(c, http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestRequestIDKeepsWellFormedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "edge-7f3a.42_b")
	rec := httptest.NewRecorder()
	requestIDServer().ServeHTTP(rec, req)

	assert.Equal(t, "edge-7f3a.42_b", rec.Header().Get(HeaderRequestID))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "edge-7f3a.42_b", body.Metadata.RequestID)
}

func TestRequestIDReplacesMissingOrMalformedHeader(t *testing.T) {
	for name, header := range map[string]string{
		"missing":  "",
		"spaces":   "two words",
		"newline":  "abc\r\nSet-Cookie: x=1",
		"too long": strings.Repeat("a", 65),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header[HeaderRequestID] = []string{header}
			}
			rec := httptest.NewRecorder()
			requestIDServer().ServeHTTP(rec, req)

			got := rec.Header().Get(HeaderRequestID)
			assert.NotEqual(t, header, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
