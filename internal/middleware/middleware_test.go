package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/db"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	pkgauth "github.com/futureintern/platform/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string      `json:"code"`
		Message string      `json:"message"`
		Field   string      `json:"field"`
		Details interface{} `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body
}

func newJWT(exp time.Duration) *pkgauth.JWTService {
	return pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  exp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "futureintern-test",
	})
}

func protectedRouter(m *AuthMiddleware, roles ...models.RoleType) *gin.Engine {
	r := gin.New()
	r.GET("/protected", m.JWTAuth(), m.RoleRequired(roles...), func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID, "role": actor.Role})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWT(time.Hour)
	m := NewAuthMiddleware(jwtService)
	router := protectedRouter(m, models.RoleCompany, models.RoleAdmin)

	pair, err := jwtService.GenerateTokenPair(&models.User{ID: 20, Email: "hr@acme.io", Role: models.RoleCompany})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":20,"role":"company"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTH_008", decodeError(t, w).Error.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTH_005", decodeError(t, w).Error.Code)
	})

	t.Run("query token on websocket handshake", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected?access_token="+pair.AccessToken, nil)
		req.Header.Set("Upgrade", "websocket")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("query token ignored on plain requests", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?access_token="+pair.AccessToken, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJWTAuth_Expired(t *testing.T) {
	expired := newJWT(-time.Minute)
	pair, err := expired.GenerateTokenPair(&models.User{ID: 3, Email: "sara@example.com", Role: models.RoleStudent})
	require.NoError(t, err)

	router := protectedRouter(NewAuthMiddleware(expired), models.RoleStudent)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_006", decodeError(t, w).Error.Code)
}

func TestRoleRequired_Forbidden(t *testing.T) {
	jwtService := newJWT(time.Hour)
	router := protectedRouter(NewAuthMiddleware(jwtService), models.RoleAdmin)

	pair, err := jwtService.GenerateTokenPair(&models.User{ID: 3, Email: "sara@example.com", Role: models.RoleStudent})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTH_009", decodeError(t, w).Error.Code)
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", apperrors.ErrInternshipNotFound, http.StatusNotFound, "RES_001", "Internship not found"},
		{"wrapped not found", fmt.Errorf("loading: %w", apperrors.ErrUserNotFound), http.StatusNotFound, "RES_001", "User not found"},
		{"duplicate application", apperrors.ErrAlreadyApplied, http.StatusConflict, "RES_002", "You have already applied to this internship"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001", "Invalid email or password"},
		{"forbidden with message", apperrors.NewForbiddenError("you can only manage your own internships"), http.StatusForbidden, "AUTH_009", "you can only manage your own internships"},
		{"bad request", apperrors.NewBadRequestError("application deadline has passed"), http.StatusBadRequest, "RES_003", "application deadline has passed"},
		{"file too large", apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "VAL_003", "File too large"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "SRV_001", "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.Equal(t, tc.wantMsg, body.Error.Message)
		})
	}
}

func TestHandleAPIError_ValidationField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	HandleAPIError(c, apperrors.NewValidationError("password", "password too short"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "VAL_001", body.Error.Code)
	assert.Equal(t, "password", body.Error.Field)
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	redis, err := db.NewRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer redis.Close()

	router := gin.New()
	router.POST("/login", RateLimit(redis, RateLimitConfig{Name: "auth", Requests: 2, Window: time.Minute}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send().Code)

	blocked := send()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_001", decodeError(t, blocked).Error.Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, send().Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	redis, err := db.NewRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer redis.Close()
	mr.Close()

	router := gin.New()
	router.GET("/", RateLimit(redis, RateLimitConfig{Name: "chatbot", Requests: 1, Window: time.Minute}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:*"}))
	router.GET("/api/v1/internships", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/internships", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/internships", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
