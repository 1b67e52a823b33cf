package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"guardians/training-tracker/internal/metrics"
)

const testSecret = "test-secret"

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func signToken(t *testing.T, secret, userID string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &jwtClaims{
		UserID: userID,
		Role:   "player",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func newAuthedEngine() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		userID, ok := mustUserID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", "user-1", time.Hour), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, "user-1", -time.Minute), wantStatus: http.StatusUnauthorized},
		{name: "missing uid", header: "Bearer " + signToken(t, testSecret, "", time.Hour), wantStatus: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + signToken(t, testSecret, "user-1", time.Hour), wantStatus: http.StatusOK},
	}

	r := newAuthedEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			body := decodeBody(t, rr)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", body["userId"])
			} else {
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestPanicRecovery(t *testing.T) {
	m := metrics.NewTestManager()
	r := gin.New()
	r.Use(PanicRecovery(m))
	r.GET("/boom", func(c *gin.Context) { panic("YOLO") })
	r.GET("/fine", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/fine", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CounterHandlePanic))

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterHandlePanic))
}

func TestRequestMetrics(t *testing.T) {
	m := metrics.NewTestManager()
	r := gin.New()
	r.Use(RequestMetrics(m))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "404")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.GaugeRequests))
}

type fakeLimiter struct {
	res   *redis_rate.Result
	err   error
	keys  []string
	limit redis_rate.Limit
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	f.keys = append(f.keys, key)
	f.limit = limit
	return f.res, f.err
}

func newRateLimitedEngine(limiter RequestRateLimiter, perMin int) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, "user-1")
		c.Next()
	})
	r.POST("/ask", RateLimit(limiter, "assistant", perMin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		limiter := &fakeLimiter{res: &redis_rate.Result{Allowed: 1, Remaining: 4}}
		rr := httptest.NewRecorder()
		newRateLimitedEngine(limiter, 5).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ask", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"assistant:user-1"}, limiter.keys)
		assert.Equal(t, redis_rate.PerMinute(5), limiter.limit)
	})

	t.Run("denied", func(t *testing.T) {
		limiter := &fakeLimiter{res: &redis_rate.Result{Allowed: 0, RetryAfter: 30 * time.Second}}
		rr := httptest.NewRecorder()
		newRateLimitedEngine(limiter, 5).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ask", nil))

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "30", rr.Header().Get("Retry-After"))
		body := decodeBody(t, rr)
		assert.Equal(t, false, body["success"])
		assert.True(t, strings.HasPrefix(body["error"].(string), "retry after 30.0"))
	})

	t.Run("limiter error", func(t *testing.T) {
		limiter := &fakeLimiter{err: errors.New("redis down")}
		rr := httptest.NewRecorder()
		newRateLimitedEngine(limiter, 5).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ask", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newRateLimitedEngine(nil, 5).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ask", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		limiter := &fakeLimiter{}
		rr = httptest.NewRecorder()
		newRateLimitedEngine(limiter, 0).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ask", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, limiter.keys)
	})
}
