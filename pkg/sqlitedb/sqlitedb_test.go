package sqlitedb

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("存在しないディレクトリを作成してWALモードで開けること", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "catalog.db")
		db, err := Open(path)
		if err != nil {
			t.Fatalf("Open()でエラーが発生: %v", err)
		}
		defer db.Close()

		var mode string
		if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("journal_modeの取得に失敗: %v", err)
		}
		if mode != "wal" {
			t.Errorf("journal_mode = %q, want %q", mode, "wal")
		}
	})

	t.Run("外部キー制約が有効であること", func(t *testing.T) {
		t.Parallel()

		db, err := Open(MemoryPath)
		if err != nil {
			t.Fatalf("Open()でエラーが発生: %v", err)
		}
		defer db.Close()

		var enabled int
		if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("foreign_keysの取得に失敗: %v", err)
		}
		if enabled != 1 {
			t.Errorf("foreign_keys = %d, want 1", enabled)
		}
	})

	t.Run("DATETIME列がtime.Timeとして読み戻せること", func(t *testing.T) {
		t.Parallel()

		db, err := Open(MemoryPath)
		if err != nil {
			t.Fatalf("Open()でエラーが発生: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("CREATE TABLE t (at DATETIME NOT NULL)"); err != nil {
			t.Fatalf("テーブル作成に失敗: %v", err)
		}
		want := time.Date(2024, 5, 1, 12, 30, 0, 123000000, time.UTC)
		if _, err := db.Exec("INSERT INTO t (at) VALUES (?)", want); err != nil {
			t.Fatalf("挿入に失敗: %v", err)
		}

		var got time.Time
		if err := db.QueryRow("SELECT at FROM t").Scan(&got); err != nil {
			t.Fatalf("読み込みに失敗: %v", err)
		}
		if !got.Equal(want) {
			t.Errorf("at = %v, want %v", got, want)
		}
	})
}

func TestConcurrentWriteTransactions(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "counter.db"))
	if err != nil {
		t.Fatalf("Open()でエラーが発生: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, seq INTEGER NOT NULL UNIQUE)"); err != nil {
		t.Fatalf("テーブル作成に失敗: %v", err)
	}

	// 読んでから書くトランザクションを並行に実行する
	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := db.Begin()
			if err != nil {
				errs <- err
				return
			}
			defer tx.Rollback()
			var next int
			if err := tx.QueryRow("SELECT COALESCE(MAX(seq), 0) + 1 FROM items").Scan(&next); err != nil {
				errs <- err
				return
			}
			if _, err := tx.Exec("INSERT INTO items (seq) VALUES (?)", next); err != nil {
				errs <- err
				return
			}
			errs <- tx.Commit()
		}()
	}
	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		if err != nil {
			failed++
			t.Logf("トランザクションが失敗: %v", err)
		}
	}
	if failed != 0 {
		t.Errorf("失敗したトランザクション = %d/%d, want 0", failed, workers)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		t.Fatalf("件数の取得に失敗: %v", err)
	}
	if count != workers {
		t.Errorf("件数 = %d, want %d", count, workers)
	}
}

func TestIsPrimaryKeyViolation(t *testing.T) {
	t.Parallel()

	db, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open()でエラーが発生: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t (id TEXT PRIMARY KEY, name TEXT NOT NULL UNIQUE)"); err != nil {
		t.Fatalf("テーブル作成に失敗: %v", err)
	}
	if _, err := db.Exec("INSERT INTO t (id, name) VALUES ('a', 'x')"); err != nil {
		t.Fatalf("挿入に失敗: %v", err)
	}

	_, pkErr := db.Exec("INSERT INTO t (id, name) VALUES ('a', 'y')")
	if !IsPrimaryKeyViolation(pkErr) {
		t.Errorf("主キーの重複: IsPrimaryKeyViolation(%v) = false, want true", pkErr)
	}
	if !IsPrimaryKeyViolation(fmt.Errorf("wrapped: %w", pkErr)) {
		t.Error("ラップされた主キー違反を判定できない")
	}

	_, uniqueErr := db.Exec("INSERT INTO t (id, name) VALUES ('b', 'x')")
	if uniqueErr == nil {
		t.Fatal("UNIQUE制約違反でエラーにならない")
	}
	if IsPrimaryKeyViolation(uniqueErr) {
		t.Errorf("UNIQUE制約違反: IsPrimaryKeyViolation(%v) = true, want false", uniqueErr)
	}
	if IsPrimaryKeyViolation(errors.New("disk I/O error")) {
		t.Error("SQLite以外のエラーをtrueと判定した")
	}
}
