package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/roomsense/roomsense-backend/internal/model"
)

func setupMiddleware(t *testing.T) (*gorm.DB, *TokenManager, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Middleware(db, tokens, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUser(c).ID})
	})

	return db, tokens, router
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddlewareMissingToken(t *testing.T) {
	_, _, router := setupMiddleware(t)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token")
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	_, tokens, router := setupMiddleware(t)

	token, err := tokens.Generate(1)
	require.NoError(t, err)

	w := doRequest(router, token) // missing Bearer prefix
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareInvalidToken(t *testing.T) {
	_, _, router := setupMiddleware(t)

	w := doRequest(router, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestMiddlewareDeletedUser(t *testing.T) {
	_, tokens, router := setupMiddleware(t)

	// token for a user that never existed
	token, err := tokens.Generate(999)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestMiddlewareValidToken(t *testing.T) {
	db, tokens, router := setupMiddleware(t)

	user := model.User{Email: "a@x.com", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)

	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
