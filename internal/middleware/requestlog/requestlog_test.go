package requestlog

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewWithLogger(log.New(buf)))
	router.GET("/eventos/:id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})
	return router
}

func TestAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(&buf)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/eventos/1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
	assert.Contains(t, buf.String(), "Request completed")
	assert.Contains(t, buf.String(), "/eventos/:id")
}

func TestKeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(&buf)
	incoming := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/eventos/1", nil)
	req.Header.Set(HeaderRequestID, incoming)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, incoming, w.Header().Get(HeaderRequestID))
}

func TestReplacesMalformedRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/eventos/1", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, "not-a-uuid", w.Header().Get(HeaderRequestID))
}
