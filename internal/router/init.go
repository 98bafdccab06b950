package router

import (
	"github.com/garagemlabs/garagem-api/internal/application"
	"github.com/garagemlabs/garagem-api/internal/container"
	"github.com/garagemlabs/garagem-api/internal/infrastructure/postgres"
	handlers "github.com/garagemlabs/garagem-api/internal/interface/http"
	"github.com/garagemlabs/garagem-api/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetDB()

	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger, container.GetRabbitPub(), cfg.MailSendEnabled)

	vehicleSvc := application.NewVehicleService(vehicleRepo, userRepo, logger)
	vehicleSvc.RDB = container.GetRedis()
	vehicleSvc.CacheTTL = cfg.PublicGalleryCacheTTL
	vehicleSvc.ES = container.GetES()
	vehicleSvc.ESIndex = cfg.ESVehiclesIndex
	vehicleSvc.GCS = container.GetGCS()
	vehicleSvc.GCSBucket = cfg.GCSBucket
	vehicleSvc.Pub = container.GetRabbitPub()
	vehicleSvc.MailEnabled = cfg.MailSendEnabled

	appointmentSvc := application.NewAppointmentService(appointmentRepo, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, logger)))
	r.Add(modules.NewVehicleModule(handlers.NewVehicleHandler(vehicleSvc, logger)))
	r.Add(modules.NewAppointmentModule(handlers.NewAppointmentHandler(appointmentSvc, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
