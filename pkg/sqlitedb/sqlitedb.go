// Package sqlitedb はmodernc.org/sqliteでデータベースを開く。
// 外部キー制約とbusy_timeoutを有効にし、ファイルの場合はWALモードにする。
// 書き込みトランザクションはBEGIN IMMEDIATEで開始する。
package sqlitedb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MemoryPath はインメモリデータベースを表すパス。
const MemoryPath = ":memory:"

// Open はpathのSQLiteデータベースを開く。
// 親ディレクトリが無ければ作成する。
// 日時は "2006-01-02 15:04:05.999999999-07:00" 形式のテキストで保存する。
// トランザクションは開始時に書き込みロックを取るため、
// 読んでから書く処理が並行してもbusy_timeoutの範囲で待ち合わせる。
func Open(path string) (*sql.DB, error) {
	params := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
		"_txlock=immediate",
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("データベースディレクトリの作成に失敗: %w", err)
		}
		params = append(params, "_pragma=journal_mode(WAL)")
	}

	db, err := sql.Open("sqlite", path+"?"+strings.Join(params, "&"))
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if path == MemoryPath {
		// 接続ごとに別のデータベースになるため1本に固定する
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("データベースへの疎通確認に失敗: %w", err)
	}
	return db, nil
}

// IsPrimaryKeyViolation はerrが主キー制約違反かどうかを返す。
func IsPrimaryKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
