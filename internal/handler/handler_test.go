package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"chatboard/internal/domain/session"
	"chatboard/internal/middleware"
	"chatboard/internal/services"
	"chatboard/internal/validation"
	"chatboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// newRouter returns an engine with the error middleware installed. When sess
// is not nil every request carries it.
func newRouter(sess *session.Session) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(logger.NewNop()))
	if sess != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(services.WithSession(c.Request.Context(), *sess))
			c.Next()
		})
	}
	return r
}

func testSession() *session.Session {
	return &session.Session{ID: uuid.New(), UserID: uuid.New()}
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
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
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}
