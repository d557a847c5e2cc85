package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/what2eat/what2eat-api/internal/models"
)

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestErrorHandlerMapsDomainErrorKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
	}{
		{models.NewNotFoundError("gone"), http.StatusNotFound},
		{models.NewAlreadyExistsError("dupe"), http.StatusConflict},
		{models.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{models.NewForbiddenError("no"), http.StatusForbidden},
	}

	for _, tc := range cases {
		router := gin.New()
		router.Use(ErrorHandler(DefaultStatusMapping()))
		router.GET("/boom", func(c *gin.Context) {
			c.Error(tc.err)
		})

		resp := serve(router, http.MethodGet, "/boom", nil)
		assert.Equal(t, tc.wantStatus, resp.Code)
	}
}

func TestErrorHandlerMasksUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler(DefaultStatusMapping()))
	router.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("secret database detail"))
	})

	resp := serve(router, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), "secret")
}

func TestRecoveryMasksPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("sensitive state")
	})

	resp := serve(router, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "sensitive")
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	resp := serve(router, http.MethodGet, "/", nil)
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))

	resp = serve(router, http.MethodGet, "/", map[string]string{"X-Request-ID": "req-123"})
	assert.Equal(t, "req-123", resp.Header().Get("X-Request-ID"))
}

func authTestRouter(secret []byte, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler(DefaultStatusMapping()))
	handlers := []gin.HandlerFunc{JWTAuth(secret)}
	if requiredRole != "" {
		handlers = append(handlers, RequireRole(requiredRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("userID")})
	})
	router.GET("/protected", handlers...)
	return router
}

func signToken(t *testing.T, secret []byte, role string) string {
	claims := jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	router := authTestRouter([]byte("test-secret"), "")

	resp := serve(router, http.MethodGet, "/protected", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuthRejectsBadToken(t *testing.T) {
	router := authTestRouter([]byte("test-secret"), "")

	resp := serve(router, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer not.a.token",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	secret := []byte("test-secret")
	router := authTestRouter(secret, "")

	resp := serve(router, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer " + signToken(t, secret, "user"),
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "user-1")
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	secret := []byte("test-secret")
	router := authTestRouter(secret, "admin")

	resp := serve(router, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer " + signToken(t, secret, "user"),
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
