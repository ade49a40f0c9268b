package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"allaccess/internal/infrastructure/config"
	"allaccess/internal/infrastructure/database"
	"allaccess/internal/infrastructure/persistence/models"
	"allaccess/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Create or update the database schema for all persistence models.`,
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

	log.Infow("running migrations", "environment", env)

	if err := database.Get().AutoMigrate(
		&models.CustomerModel{},
		&models.CustomerMetaModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.OrderPassFlagsModel{},
		&models.ProductPassConfigModel{},
		&models.ProductCategoryModel{},
	); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}
