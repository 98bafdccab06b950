package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garagemlabs/garagem-api/internal/container"
	handlers "github.com/garagemlabs/garagem-api/internal/interface/http"
	"github.com/garagemlabs/garagem-api/internal/interface/middleware"
)

// VehicleModule wires the vehicle routes.
// Public: GET /api/vehicles/public, GET /api/vehicles/public/search
// Optional auth: GET /api/veiculos/:id
// Protected: GET/POST /api/veiculos, PUT /api/veiculos/:id/additional-details,
// POST /api/veiculos/:id/share, POST /api/veiculos/:id/photo,
// DELETE /api/veiculos/:id, PUT /api/vehicles/:id/toggle-privacy
type VehicleModule struct {
	Handler *handlers.VehicleHandler
}

func NewVehicleModule(h *handlers.VehicleHandler) *VehicleModule {
	return &VehicleModule{Handler: h}
}

func (m *VehicleModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	jwt := container.GetJWT()

	galleryLimiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/vehicles/public", galleryLimiter, m.Handler.ListPublic)
	rg.GET("/vehicles/public/search", galleryLimiter, m.Handler.SearchPublic)

	// Single vehicle lookup works for anonymous callers when the vehicle
	// is public.
	rg.GET("/veiculos/:id", middleware.OptionalAuth(jwt), galleryLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(jwt, container.GetLogger()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/veiculos", m.Handler.ListMine)
		auth.POST("/veiculos", m.Handler.Create)
		auth.PUT("/veiculos/:id/additional-details", m.Handler.UpdateDetails)
		auth.POST("/veiculos/:id/share", m.Handler.Share)
		auth.POST("/veiculos/:id/photo", m.Handler.UploadPhoto)
		auth.DELETE("/veiculos/:id", m.Handler.Delete)
		auth.PUT("/vehicles/:id/toggle-privacy", m.Handler.TogglePrivacy)
	}
}
