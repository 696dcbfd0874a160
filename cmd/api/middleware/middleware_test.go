package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms/cmd/api/auth"
	"blog-cms/cmd/api/trace"
)

type stubParser struct {
	subject, role string
	err           error
}

func (s stubParser) ParseAccessToken(string) (string, string, error) {
	return s.subject, s.role, s.err
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
			"subject":    c.GetString("subject"),
		})
	})
	return r
}

func TestAdminAuthMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		parser stubParser
		want   int
	}{
		{name: "missing header", parser: stubParser{}, want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer x", parser: stubParser{err: errors.New("bad")}, want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer x", parser: stubParser{subject: "bob", role: "user"}, want: http.StatusForbidden},
		{name: "admin", header: "Bearer x", parser: stubParser{subject: "admin", role: auth.RoleAdmin}, want: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine(AdminAuthMiddleware(tc.parser))
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			if tc.want != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}

func TestRequestTraceKeepsIncomingID(t *testing.T) {
	r := newEngine(RequestTrace())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Header().Get("X-Request-Id"))
	assert.Contains(t, w.Body.String(), `"request_id":"abc"`)
}

func TestRequestTraceGeneratesID(t *testing.T) {
	r := newEngine(RequestTrace())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Len(t, w.Header().Get("X-Request-Id"), 36)
}

func TestPublicCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/public", PublicCORS(nil))
	group.GET("/posts", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.OPTIONS("/*path", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodGet, "/api/public/posts", nil)
	req.Header.Set("Origin", "https://reader.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	pre := httptest.NewRequest(http.MethodOptions, "/api/public/posts", nil)
	pre.Header.Set("Origin", "https://reader.example.com")
	pre.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, pre)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	r := newEngine(rl.Limit())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "", wantErr: ErrMissingToken},
		{header: "Basic abc", wantErr: ErrBadScheme},
		{header: "Bearer", wantErr: ErrBadScheme},
		{header: "Bearer   ", wantErr: ErrMissingToken},
		{header: "bearer abc.def", want: "abc.def"},
		{header: "Bearer  xyz ", want: "xyz"},
	}
	for _, tc := range cases {
		got, err := bearerToken(tc.header)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr, tc.header)
			continue
		}
		require.NoError(t, err, tc.header)
		assert.Equal(t, tc.want, got)
	}
}
