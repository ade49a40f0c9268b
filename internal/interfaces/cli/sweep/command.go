package sweep

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"allaccess/internal/application/pass/usecases"
	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/pass"
	"allaccess/internal/infrastructure/config"
	"allaccess/internal/infrastructure/database"
	"allaccess/internal/infrastructure/repository"
	"allaccess/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expire elapsed passes",
		Long:  `Scan orders with active passes and expire every grant whose validity window has elapsed. The server runs this daily; this command triggers one run by hand.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	db := database.Get()
	orderRepo := repository.NewOrderRepository(db, log)
	registryStore := repository.NewPassRegistryRepository(db, log)
	catalogRepo := repository.NewCatalogRepository(db, log)

	resolver := catalog.NewResolver(catalogRepo)
	lifecycle := pass.NewLifecycle(orderRepo, registryStore, catalogRepo, resolver, nil, log)
	sweepUC := usecases.NewSweepExpiredUseCase(orderRepo, lifecycle, log)

	result, err := sweepUC.Execute(context.Background())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Printf("orders scanned: %d\npasses expired: %d\nfailures: %d\n",
		result.OrdersScanned, result.PassesExpired, result.Failures)
	return nil
}
