// seed puebla la base con productos de ejemplo y el operador administrador.
//
// Uso:
//
//	go run ./cmd/seed run                          productos de ejemplo + admin (SEED_ADMIN_*)
//	go run ./cmd/seed clear                        vacía productos e histórico y borra el admin
//	go run ./cmd/seed import planilha.csv [enc]    importa productos de una planilha ';' (enc: utf-8 | windows-1252)
package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

const usage = `Comandos disponíveis:
  seed run                          - Popular com dados de exemplo
  seed clear                        - Limpar dados (CUIDADO!)
  seed import <arquivo.csv> [enc]   - Importar planilha de produtos (utf-8 | windows-1252)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "run", "clear":
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "estoque-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Report.Timezone).Msg("REPORT_TIMEZONE inválido")
	}

	userRepo := postgres.NewUserRepository(pool)
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewTxRunner(pool), nil, nil, loc)

	switch command {
	case "run":
		authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
		if cfg.Seed.AdminPassword == "" {
			log.Warn().Msg("SEED_ADMIN_PASSWORD vacío, no se crea el administrador")
		} else {
			_, err := authUC.RegisterUser(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName, entity.RoleAdmin)
			switch {
			case err == nil:
				log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador creado")
			case isDuplicate(err):
				log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador ya existe, se omite")
			default:
				log.Fatal().Err(err).Msg("crear administrador")
			}
		}
		created, skipped, err := createProducts(ctx, productUC, sampleProducts(time.Now().In(loc)))
		if err != nil {
			log.Fatal().Err(err).Msg("productos de ejemplo")
		}
		log.Info().Int("created", created).Int("skipped", skipped).Msg("población concluida")

	case "clear":
		if err := postgres.ClearData(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("limpiar datos")
		}
		if err := userRepo.DeleteByEmail(ctx, cfg.Seed.AdminEmail); err != nil {
			log.Fatal().Err(err).Msg("borrar administrador")
		}
		log.Info().Msg("base limpia")

	case "import":
		enc := dto.EncodingUTF8
		if len(os.Args) > 3 {
			enc = os.Args[3]
		}
		f, err := os.Open(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("abrir planilha")
		}
		defer f.Close()
		rows, err := readProductsCSV(f, enc)
		if err != nil {
			log.Fatal().Err(err).Msg("leer planilha")
		}
		created, skipped, err := createProducts(ctx, productUC, rows)
		if err != nil {
			log.Fatal().Err(err).Msg("importar productos")
		}
		log.Info().Int("created", created).Int("skipped", skipped).Str("file", os.Args[2]).Msg("importación concluida")
	}
}
