package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garagemlabs/garagem-api/internal/container"
	handlers "github.com/garagemlabs/garagem-api/internal/interface/http"
	"github.com/garagemlabs/garagem-api/internal/interface/middleware"
)

// UserModule wires the profile self-service routes.
// Protected: GET /api/users/profile, PUT /api/users/profile
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(container.GetJWT(), container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
