package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestAuthAndRoles(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := gin.New()
	r.GET("/kitchen", AuthMiddleware(tokens), RequireRole(models.RoleKitchen), func(c *gin.Context) {
		id, ok := StaffIDFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": RoleFrom(c)})
	})

	kitchen, err := tokens.GenerateToken(1, "kitchen")
	require.NoError(t, err)
	manager, err := tokens.GenerateToken(4, "manager")
	require.NoError(t, err)
	waiter, err := tokens.GenerateToken(2, "waiter")
	require.NoError(t, err)
	guest, err := tokens.GenerateToken(9, "guest")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/kitchen", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/kitchen", http.Header{"Authorization": []string{kitchen}}).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/kitchen", bearer(guest)).Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodGet, "/kitchen", bearer(waiter)).Code)

	w := perform(r, http.MethodGet, "/kitchen", bearer(kitchen))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"role":"kitchen"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/kitchen", bearer(manager)).Code)

	tokens.Revoke(kitchen)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/kitchen", bearer(kitchen)).Code)
}

func TestWebSocketAuthDefaultsToGuest(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := gin.New()
	r.GET("/ws", WebSocketAuth(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, string(RoleFrom(c)))
	})

	w := perform(r, http.MethodGet, "/ws", nil)
	assert.Equal(t, "guest", w.Body.String())

	token, err := tokens.GenerateToken(3, "delivery")
	require.NoError(t, err)
	w = perform(r, http.MethodGet, "/ws?token="+token, nil)
	assert.Equal(t, "delivery", w.Body.String())

	w = perform(r, http.MethodGet, "/ws?token=garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestRateLimiterForgetsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.limiterFor("10.0.0.1")
	assert.Len(t, rl.visitors, 1)

	now = now.Add(rl.idleTTL + time.Second)
	rl.limiterFor("10.0.0.2")
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddlewares("*"))
	r.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/orders", http.Header{"Origin": []string{"http://localhost:3000"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	r = gin.New()
	r.Use(CORSMiddlewares("https://dash.example.com"))
	r.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = perform(r, http.MethodGet, "/orders", http.Header{"Origin": []string{"http://evil.test"}})
	assert.Equal(t, "https://dash.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
