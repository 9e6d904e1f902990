package catalog

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Aravinthpromon/ORM-tasks/internal/config"
)

// newMockServer はsqlmockをデータベースとするテスト用サーバーを返す。
func newMockServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmockの作成に失敗: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("満たされていない期待値: %v", err)
		}
		sqlDB.Close()
	})
	return newServer(sqlDB, config.Default(), nil), mock
}

var errDiskIO = errors.New("disk I/O error")

// TestDatabaseFailures はデータベースエラーが500に変換されることを検証する。
func TestDatabaseFailures(t *testing.T) {
	t.Parallel()

	t.Run("一覧取得の失敗は500になること", func(t *testing.T) {
		t.Parallel()

		s, mock := newMockServer(t)
		mock.ExpectQuery("FROM categories").WillReturnError(errDiskIO)

		w := doRequest(s, http.MethodGet, "/api/categories", adminAuth, nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
		if got := errorMessage(t, w); got != "カテゴリ一覧の取得に失敗しました" {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("取得時のエラーは404ではなく500になること", func(t *testing.T) {
		t.Parallel()

		s, mock := newMockServer(t)
		mock.ExpectQuery("FROM orders").WithArgs("order-1").WillReturnError(errDiskIO)

		w := doRequest(s, http.MethodGet, "/api/orders/order-1", adminAuth, nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})

	t.Run("削除の失敗は500になること", func(t *testing.T) {
		t.Parallel()

		s, mock := newMockServer(t)
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders").WithArgs("prod-1").WillReturnRows(
			sqlmock.NewRows([]string{"id", "customer_name", "product_id", "quantity", "cost_cents", "created_at", "updated_at"}),
		)
		mock.ExpectExec("DELETE FROM products").WithArgs("prod-1").WillReturnError(errDiskIO)
		mock.ExpectRollback()

		w := doRequest(s, http.MethodDelete, "/api/products/prod-1", adminAuth, nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})

	t.Run("商品作成の途中で失敗するとロールバックされること", func(t *testing.T) {
		t.Parallel()

		s, mock := newMockServer(t)
		now := time.Now().UTC()
		mock.ExpectBegin()
		mock.ExpectQuery("FROM categories").WithArgs("cat-1").WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
				AddRow("cat-1", "Electronics", now, now),
		)
		mock.ExpectExec("INSERT INTO products").WillReturnError(errDiskIO)
		mock.ExpectRollback()

		w := doRequest(s, http.MethodPost, "/api/products", adminAuth, map[string]any{
			"name": "Laptop", "category_id": "cat-1", "price": 1,
		})
		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})

	t.Run("コミットの失敗は500になりイベントを送らないこと", func(t *testing.T) {
		t.Parallel()

		sqlDB, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmockの作成に失敗: %v", err)
		}
		defer sqlDB.Close()
		pub := &recordingPublisher{}
		s := newServer(sqlDB, config.Default(), pub)

		now := time.Now().UTC()
		orderCols := []string{"id", "customer_name", "product_id", "quantity", "cost_cents", "created_at", "updated_at"}
		mock.ExpectBegin()
		mock.ExpectQuery("FROM products").WithArgs("prod-1").WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "category_id", "price_cents", "created_at", "updated_at"}).
				AddRow("prod-1", "Laptop", "cat-1", int64(1000), now, now),
		)
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("FROM orders").WillReturnRows(
			sqlmock.NewRows(orderCols).AddRow("order-1", "Alice", "prod-1", int64(2), int64(2000), now, now),
		)
		mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

		w := doRequest(s, http.MethodPost, "/api/orders", adminAuth, map[string]any{
			"customer_name": "Alice", "product_id": "prod-1", "quantity": 2,
		})
		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
		if got := pub.types(); len(got) != 0 {
			t.Errorf("イベントが送信された: %v", got)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("満たされていない期待値: %v", err)
		}
	})

	t.Run("サマリー集計の失敗は500になること", func(t *testing.T) {
		t.Parallel()

		s, mock := newMockServer(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errDiskIO)

		token := mustAdminToken(t, s)
		w := doRequest(s, http.MethodGet, "/admin/summary", "Bearer "+token, nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})
}

// mustAdminToken はデータベースを使わずに管理ログインしてトークンを得る。
func mustAdminToken(t *testing.T, s *Server) string {
	t.Helper()
	return adminLogin(t, s, "admin", "123")
}
