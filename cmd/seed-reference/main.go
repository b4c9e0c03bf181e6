package main

import (
	"context"
	"fmt"
	"time"

	"github.com/davmoros/cronograma-backend/internal/config"
	"github.com/davmoros/cronograma-backend/internal/database"
	"github.com/davmoros/cronograma-backend/internal/logger"
	"github.com/davmoros/cronograma-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	refRepo := repository.NewReferenceRepository(pool)

	fmt.Println("=== Seeding Reference Catalogs ===")

	programs := []string{
		"Clinical Psychology",
		"Neuroscience",
		"Organizational Psychology",
		"Public Health",
		"Education Sciences",
	}

	instructors := []string{
		"Dr. Mariana Soto", "Dr. Julián Vidal", "Dr. Carmen Lema",
		"Dr. Andrés Paredes", "Dr. Lucía Ferreyra", "Dr. Tomás Ibarra",
		"Dr. Paula Quintero", "Dr. Sergio Maldonado",
	}

	seeded := 0
	for _, name := range programs {
		if err := refRepo.CreateProgram(ctx, name); err != nil {
			fmt.Printf("Error creating program %q: %v\n", name, err)
			continue
		}
		seeded++
	}
	fmt.Printf("Programs: %d/%d\n", seeded, len(programs))

	seeded = 0
	for _, name := range instructors {
		if err := refRepo.CreateInstructor(ctx, name); err != nil {
			fmt.Printf("Error creating instructor %q: %v\n", name, err)
			continue
		}
		seeded++
	}
	fmt.Printf("Instructors: %d/%d\n", seeded, len(instructors))

	fmt.Println("\nSeed completed!")
}
