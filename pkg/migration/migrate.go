// Package migration はSQLiteデータベースのマイグレーションを管理する。
// embed.FSからSQLファイルを読み込み、golang-migrateで適用状態を追跡する。
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Run はfsys内のdirに置かれたマイグレーションを順序通りに適用する。
// 未適用のマイグレーションのみ実行し、適用済みのものはスキップする。
// ファイル名形式: 000001_description.up.sql
//
// dbは呼び出し元が所有する。migrate.Closeはデータベースも閉じてしまうため呼ばない。
func Run(db *sql.DB, fsys fs.FS, dir string) error {
	m, err := newMigrator(db, fsys, dir)
	if err != nil {
		return err
	}

	before, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("現在のバージョンの取得に失敗: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("マイグレーションの適用に失敗: %w", err)
	}

	after, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("適用後のバージョンの取得に失敗: %w", err)
	}
	if dirty {
		return fmt.Errorf("マイグレーション %06d が不完全な状態です", after)
	}
	log.Printf("[Migration] マイグレーションを適用しました: %06d -> %06d", before, after)
	return nil
}

// Version は適用済みの最新バージョンを返す。
// 一度も適用していない場合は0を返す。
func Version(db *sql.DB, fsys fs.FS, dir string) (uint, error) {
	m, err := newMigrator(db, fsys, dir)
	if err != nil {
		return 0, err
	}

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("現在のバージョンの取得に失敗: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("マイグレーション %06d が不完全な状態です", v)
	}
	return v, nil
}

// newMigrator はembed.FSをソース、既存のSQLite接続をデータベースとするMigrateを生成する。
func newMigrator(db *sql.DB, fsys fs.FS, dir string) (*migrate.Migrate, error) {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("マイグレーションファイルの読み込みに失敗: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("マイグレーション管理テーブルの作成に失敗: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("マイグレーションの初期化に失敗: %w", err)
	}
	return m, nil
}
