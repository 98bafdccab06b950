package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garagemlabs/garagem-api/internal/container"
	handlers "github.com/garagemlabs/garagem-api/internal/interface/http"
	"github.com/garagemlabs/garagem-api/internal/interface/middleware"
)

// AuthModule wires registration and token routes.
// Public: POST /api/usuarios, POST /api/auth/login, POST /api/auth/refresh
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/usuarios", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
}
