package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"reservasalas/internal/config"
	"reservasalas/internal/database"
	"reservasalas/internal/middleware"
	"reservasalas/internal/modules/alertstream"
	"reservasalas/internal/modules/incident"
	"reservasalas/internal/modules/reservation"
	"reservasalas/internal/modules/rooms"
	"reservasalas/internal/modules/sanction"
	jwtsvc "reservasalas/internal/pkg/jwt"
	"reservasalas/internal/repository"
	"reservasalas/internal/slots"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var sanctions reservation.SanctionNotifier
	if cfg.SanctionURL != "" {
		sanctions = sanction.NewHTTPNotifier(cfg.SanctionURL, cfg.SanctionTimeout)
	}

	hub := alertstream.NewHub()

	reservationService := reservation.NewService(reservationRepo, roomRepo, sanctions)
	reservationHandler := reservation.NewHandler(reservationService)

	roomsService := rooms.NewService(roomRepo, reservationRepo)
	roomsHandler := rooms.NewHandler(roomsService)

	incidentService := incident.NewService(incidentRepo, alertRepo, reservationRepo, hub, cfg.NotifyReporter)
	incidentHandler := incident.NewHandler(incidentService)

	streamHandler := alertstream.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		slots.RegisterRoutes(v1)

		// everything else needs an identity token
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			reservationHandler.RegisterRoutes(protected)
			roomsHandler.RegisterRoutes(protected)
			incidentHandler.RegisterRoutes(protected)
			streamHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
