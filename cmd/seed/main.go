// seed carga las categorías por defecto y, opcionalmente, un usuario admin en el store configurado.
//
// Uso: go run ./cmd/seed [--admin-email admin@x.com] [--admin-name "Admin"] [--skip-categories]
// Lee la misma configuración que la API (DB_DRIVER, DATABASE_URL, MONGO_URI...).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/store"
	"github.com/jhoicas/bikehouse-api/pkg/config"
	"github.com/jhoicas/bikehouse-api/pkg/logger"
)

var (
	adminEmail     string
	adminName      string
	skipCategories bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga datos de referencia de Antique Bike House",
		Long: `Carga las categorías por defecto y opcionalmente un admin.

POST /users solo acepta buyer y seller; el primer admin se crea desde aquí.

Ejemplos:
  seed
  seed --admin-email admin@antiquebikes.com --admin-name "Admin"`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
	rootCmd.Flags().StringVar(&adminEmail, "admin-email", "", "email del usuario admin a crear")
	rootCmd.Flags().StringVar(&adminName, "admin-name", "", "nombre del admin (por defecto el email)")
	rootCmd.Flags().BoolVar(&skipCategories, "skip-categories", false, "no sembrar categorías")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DB.Driver == config.DriverMemory {
		return errors.New("seed: DB_DRIVER=memory no persiste; la API ya siembra categorías al arrancar")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	repos, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("abrir store: %w", err)
	}
	defer repos.Close()

	if !skipCategories {
		if err := usecase.NewCategoryUseCase(repos.Categories).SeedDefaults(ctx); err != nil {
			return fmt.Errorf("sembrar categorías: %w", err)
		}
		log.Info().Int("categorias", len(usecase.DefaultCategoryNames)).Msg("categorías sembradas")
	}

	if adminEmail == "" {
		return nil
	}
	res, err := usecase.NewUserUseCase(repos.Users).CreateAdmin(ctx, adminEmail, adminName)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Warn().Str("email", adminEmail).Msg("el admin ya existe")
		return nil
	case err != nil:
		return fmt.Errorf("crear admin: %w", err)
	}
	log.Info().Str("email", adminEmail).Str("id", res.InsertedID).Msg("admin creado")
	return nil
}
