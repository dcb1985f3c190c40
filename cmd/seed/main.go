package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"reservasalas/internal/database"
	"reservasalas/internal/domain"
	jwtsvc "reservasalas/internal/pkg/jwt"
	"reservasalas/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "reservas.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM alerts")
	db.Exec("DELETE FROM incidents")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM rooms")

	log.Println("Creating rooms...")
	ctx := context.Background()

	roomRepo := repository.NewRoomRepository(db)
	rooms := []domain.Room{
		{Name: "Sala 1", Building: "El Central", Capacity: 6, Category: domain.CategoryGeneral},
		{Name: "Sala 6", Building: "El Central", Capacity: 10, Category: domain.CategoryGeneral},
		{Name: "Sala 2", Building: "Anexo", Capacity: 4, Category: domain.CategoryTeaching},
		{Name: "Sala 3", Building: "Anexo", Capacity: 12, Category: domain.CategoryGraduate},
	}
	for i := range rooms {
		if err := roomRepo.Create(ctx, &rooms[i]); err != nil {
			log.Fatal("seed room failed:", err)
		}
		log.Printf("room created: %s / %s", rooms[i].Building, rooms[i].Name)
	}

	// Dev identity tokens so the API can be exercised without the session
	// collaborator running.
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET not set, skipping dev tokens")
		return
	}

	j := jwtsvc.New(secret, 24*time.Hour)

	userToken, _ := j.GenerateToken("11111111", false)
	adminToken, _ := j.GenerateToken("22222222", true)
	log.Println("dev user token (ci=11111111):", userToken)
	log.Println("dev admin token (ci=22222222, admin):", adminToken)
}
