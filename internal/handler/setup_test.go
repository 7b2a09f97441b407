package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"qrlink-platform/internal/middleware"
	"qrlink-platform/internal/model"
	"qrlink-platform/internal/qrtoken"
	auth "qrlink-platform/pkg/jwt"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTest 为集成测试初始化一个干净的环境
// 返回配置好的 gin.Engine、数据库句柄、处理器和清理函数
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB, *QRHandler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 每个测试使用独立命名的内存数据库，避免互相污染
	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "无法连接到内存数据库")

	err = db.AutoMigrate(&model.User{}, &model.QRRedirect{}, &model.ScanRecord{})
	require.NoError(t, err, "数据库迁移失败")

	// 测试中不依赖 Redis，传入 nil
	logger, _ := zap.NewDevelopment()
	sugaredLogger := logger.Sugar()

	tokenGenerator := qrtoken.NewGenerator(db, sugaredLogger)
	tokenGenerator.Start()

	tokenManager := auth.NewManager("test-secret", "qrlink-test", 1)

	qrHandler := NewQRHandler(db, nil, tokenGenerator, "http://localhost:8080")
	authHandler := NewAuthHandler(db, nil, tokenManager)

	router := gin.New()
	router.GET("/not-found", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/inactive", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/error", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/:code", qrHandler.Redirect)
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(tokenManager))
	{
		api.GET("/me", authHandler.GetCurrentUser)
		api.POST("/qrcodes", qrHandler.CreateQR)
		api.GET("/qrcodes", qrHandler.ListQR)
		api.PATCH("/qrcodes/:id", qrHandler.UpdateQR)
		api.DELETE("/qrcodes/:id", qrHandler.DeleteQR)
		api.GET("/subscription", qrHandler.GetSubscription)
		api.POST("/subscription", qrHandler.UpgradeSubscription)
		api.GET("/analytics", qrHandler.GetAnalytics)
	}

	cleanup := func() {
		tokenGenerator.Stop()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return router, db, qrHandler, cleanup
}

// registerTestUser 注册一个用户并返回其 JWT 令牌
func registerTestUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	body, _ := json.Marshal(RegisterRequest{Name: "测试用户", Email: email, Password: "password123"})
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, "注册应返回 201")

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// doJSON 发送带认证的 JSON 请求
func doJSON(router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
