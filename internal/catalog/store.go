package catalog

import (
	"database/sql"
	"fmt"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/migrations"
	"github.com/Aravinthpromon/ORM-tasks/pkg/migration"
	"github.com/Aravinthpromon/ORM-tasks/pkg/sqlitedb"
)

// Open はpathのSQLiteデータベースを開き、スキーマを最新にする。
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sqlitedb.Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// Migrate はカタログのスキーマを最新にする。
func Migrate(sqlDB *sql.DB) error {
	if err := migration.Run(sqlDB, migrations.FS, migrations.Dir); err != nil {
		return fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return nil
}
