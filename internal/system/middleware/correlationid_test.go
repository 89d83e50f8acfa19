package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectbrow/consent-api/internal/system/constants"
)

func newCorrelationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CorrelationIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("correlation_id"))
	})
	return router
}

func TestCorrelationIDMiddleware(t *testing.T) {
	t.Run("passes through incoming correlation id", func(t *testing.T) {
		router := newCorrelationRouter()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(constants.CorrelationIDHeaderName, "abc-123")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(constants.CorrelationIDHeaderName))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("accepts request and trace id aliases", func(t *testing.T) {
		for _, header := range []string{"X-Request-ID", "X-Trace-ID"} {
			router := newCorrelationRouter()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(header, "from-"+header)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, "from-"+header, w.Header().Get(constants.CorrelationIDHeaderName))
		}
	})

	t.Run("generates uuid when absent", func(t *testing.T) {
		router := newCorrelationRouter()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		generated := w.Header().Get(constants.CorrelationIDHeaderName)
		require.NotEmpty(t, generated)
		_, err := uuid.Parse(generated)
		assert.NoError(t, err)
		assert.Equal(t, generated, w.Body.String())
	})
}
