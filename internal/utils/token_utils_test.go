package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/SscSPs/fleetops_finance/internal/middleware"
	"github.com/SscSPs/fleetops_finance/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT_AcceptedByAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "test-secret-key-that-is-long-enough"

	token, err := utils.GenerateJWT(domain.Actor{UserID: "finance-1", Role: domain.RoleFinance}, secret, time.Hour, "fleetops-test")
	require.NoError(t, err)

	var got domain.Actor
	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleware(secret), func(c *gin.Context) {
		got, _ = middleware.GetActorFromContext(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Actor{UserID: "finance-1", Role: domain.RoleFinance}, got)
}

func TestGenerateJWT_RejectsUnknownRole(t *testing.T) {
	_, err := utils.GenerateJWT(domain.Actor{UserID: "u", Role: "ROOT"}, "secret", time.Hour, "fleetops-test")
	assert.Error(t, err)

	_, err = utils.GenerateJWT(domain.Actor{Role: domain.RoleAdmin}, "secret", time.Hour, "fleetops-test")
	assert.Error(t, err)
}

func TestGenerateJWT_ExpiredTokenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "test-secret-key-that-is-long-enough"

	token, err := utils.GenerateJWT(domain.Actor{UserID: "u", Role: domain.RoleReadOnly}, secret, -time.Minute, "fleetops-test")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleware(secret), func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}
