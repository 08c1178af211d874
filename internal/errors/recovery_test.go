package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sprintsync/sprintsync-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanickingRouter(hideDetails bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Recovery(logger.Discard(), hideDetails))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	router.NoRoute(NoRoute)
	return router
}

func TestRecovery(t *testing.T) {
	for _, tt := range []struct {
		hide    bool
		message string
	}{
		{hide: false, message: "kaboom"},
		{hide: true, message: "Something went wrong"},
	} {
		w := httptest.NewRecorder()
		newPanickingRouter(tt.hide).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var body APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Internal Server Error", body.Error)
		assert.Equal(t, tt.message, body.Message)
	}
}

func TestAbortHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	AbortWithConflict(c, "Already exists.", map[string]any{"field": "email"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"error":"Already exists.","details":{"field":"email"}}`, w.Body.String())
}
