package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/garagemlabs/garagem-api/config"
	"github.com/garagemlabs/garagem-api/pkg/helpers"
)

// seed inserts a demo account with one public and one private vehicle so a
// fresh environment has something to show in the gallery.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@garagem.dev"
	password := "senha123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (nome, email, senha_hash, idade)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET nome = EXCLUDED.nome
		RETURNING id::text
	`, "Usuário Demo", email, hash, 30).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	vehicles := []struct {
		modelo, placa, cor string
		ano                int
		isPublic           bool
	}{
		{"Fusca 1300", "DEM0001", "azul", 1974, true},
		{"Gol G5", "DEM0002", "preto", 2012, false},
	}
	for _, v := range vehicles {
		var id string
		err := db.QueryRow(`
			INSERT INTO vehicles (modelo, placa, ano, cor, owner_id, is_public)
			VALUES ($1, $2, $3, $4, $5::uuid, $6)
			ON CONFLICT (placa) DO UPDATE SET modelo = EXCLUDED.modelo
			RETURNING id::text
		`, v.modelo, v.placa, v.ano, v.cor, userID, v.isPublic).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed vehicle %s: %v", v.placa, err)
		}
		fmt.Printf("seeded vehicle: id=%s placa=%s public=%v\n", id, v.placa, v.isPublic)
	}

	var apptID string
	err = db.QueryRow(`
		INSERT INTO appointments (data, hora, descricao, owner_id)
		VALUES ($1, $2, $3, $4::uuid)
		RETURNING id::text
	`, "2026-09-15", "09:30", "troca de óleo e filtros", userID).Scan(&apptID)
	if err != nil {
		log.Fatalf("failed to seed appointment: %v", err)
	}
	fmt.Printf("seeded appointment: id=%s\n", apptID)
}
