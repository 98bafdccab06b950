package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garagemlabs/garagem-api/internal/container"
	handlers "github.com/garagemlabs/garagem-api/internal/interface/http"
	"github.com/garagemlabs/garagem-api/internal/interface/middleware"
)

// AppointmentModule wires the maintenance appointment routes.
// Protected: GET/POST /api/agendamentos, DELETE /api/agendamentos/:id
type AppointmentModule struct {
	Handler *handlers.AppointmentHandler
}

func NewAppointmentModule(h *handlers.AppointmentHandler) *AppointmentModule {
	return &AppointmentModule{Handler: h}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/agendamentos")
	auth.Use(middleware.Auth(container.GetJWT(), container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.ListMine)
		auth.POST("", m.Handler.Create)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
