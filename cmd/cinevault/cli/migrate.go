package cli

import (
	"github.com/spf13/cobra"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/logger"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(config.Get())
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			logger.Info("database migrated")
			return nil
		},
	}
}
