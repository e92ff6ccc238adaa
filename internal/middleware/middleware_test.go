package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railres/internal/auth"
	"railres/internal/cache"
	"railres/internal/logger"
	"railres/internal/metrics"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString(UsernameKey),
			"role":     c.GetString(RoleKey),
		})
	})
	return r
}

func serve(r *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDPropagation(t *testing.T) {
	var seen string
	r := newEngine(RequestID(), func(c *gin.Context) {
		seen, _ = logger.RequestIDFromContext(c.Request.Context())
	})

	w := serve(r, http.Header{"X-Request-Id": {"req-42"}})
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", seen)

	w = serve(r, nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	store := cache.NewMemoryRevocationStore()
	r := newEngine(Auth(issuer, store))

	w := serve(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	token, _, err := issuer.Issue("john", auth.RoleUser)
	require.NoError(t, err)

	w = serve(r, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"john","role":"user"}`, w.Body.String())

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), claims.ID, time.Hour))

	w = serve(r, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newEngine(Auth(issuer, cache.NewMemoryRevocationStore()), RequireAdmin())

	userToken, _, err := issuer.Issue("john", auth.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := issuer.Issue("admin", auth.RoleAdmin)
	require.NoError(t, err)

	w := serve(r, http.Header{"Authorization": {"Bearer " + userToken}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.Header{"Authorization": {"Bearer " + adminToken}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newEngine(Metrics(metrics.New(reg)))

	serve(r, nil)
	serve(r, nil)

	count, err := testutil.GatherAndCount(reg, "railres_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORS())

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
