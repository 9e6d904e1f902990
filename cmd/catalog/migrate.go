package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog"
	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/migrations"
	"github.com/Aravinthpromon/ORM-tasks/pkg/migration"
	"github.com/Aravinthpromon/ORM-tasks/pkg/sqlitedb"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "データベースのスキーマを最新にする",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sqlDB, err := sqlitedb.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := catalog.Migrate(sqlDB); err != nil {
			return err
		}
		v, err := migration.Version(sqlDB, migrations.FS, migrations.Dir)
		if err != nil {
			return err
		}
		log.Printf("[Migration] スキーマバージョン: %06d", v)
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
		return nil
	},
}
