package cli

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/logger"
	"github.com/mantonx/cinevault/internal/modules/seedmodule"
)

func NewSeedCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the bootstrap admin and reference catalog if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if catalogPath != "" {
				cfg.Seed.CatalogPath = catalogPath
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			return runSeed(cmd.Context(), db, cfg, logger.Named("seed"))
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog YAML to seed instead of the built-in one")

	return cmd
}

func runSeed(ctx context.Context, db *gorm.DB, cfg *config.Config, log hclog.Logger) error {
	catalog, err := seedmodule.LoadCatalog(cfg.Seed.CatalogPath)
	if err != nil {
		return err
	}

	report, err := seedmodule.NewSeeder(db, cfg.Admin, cfg.Security.BcryptCost, log).Run(ctx, catalog)
	if err != nil {
		return err
	}

	log.Info("seed finished",
		"admin_created", report.AdminCreated,
		"genres", report.Genres,
		"people", report.People,
		"films", report.Films,
	)
	return nil
}
