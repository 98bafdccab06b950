package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garagemlabs/garagem-api/internal/container"
	"github.com/garagemlabs/garagem-api/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar metrics, rate-limited and open to private IPs without limits
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
