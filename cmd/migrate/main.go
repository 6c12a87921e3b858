// migrate crea o recrea el esquema de la base de datos.
//
// Uso:
//
//	go run ./cmd/migrate create   aplica las migraciones pendientes
//	go run ./cmd/migrate reset    elimina las tablas y las vuelve a crear (BORRA LOS DATOS)
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

const usage = `Comandos disponíveis:
  migrate create  - Criar tabelas
  migrate reset   - Recriar tabelas (REMOVE DADOS!)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	command := os.Args[1]
	if command != "create" && command != "reset" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "estoque-migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if command == "reset" {
		log.Warn().Msg("recreando tablas, los datos existentes se eliminan")
		if err := postgres.Reset(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("reset")
		}
	}
	if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Str("command", command).Msg("migración concluida")
}
