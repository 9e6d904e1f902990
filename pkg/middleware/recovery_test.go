package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Aravinthpromon/ORM-tasks/pkg/basicauth"
)

// TestRecovery はRecoveryミドルウェアを検証する。
func TestRecovery(t *testing.T) {
	t.Parallel()

	panicValues := map[string]any{
		"文字列":  "テスト用パニック",
		"整数":   42,
		"error": http.ErrAbortHandler,
	}
	for name, value := range panicValues {
		t.Run(name+"のパニック値で500が返ること", func(t *testing.T) {
			t.Parallel()

			router := gin.New()
			router.Use(Recovery())
			router.GET("/panic", func(_ *gin.Context) {
				panic(value)
			})

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("レスポンスボディのパースに失敗: %v", err)
			}
			if body["error"] != MsgInternalError {
				t.Errorf("error = %q, want %q", body["error"], MsgInternalError)
			}
		})
	}

	t.Run("送信済みのレスポンスは書き換えないこと", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.GET("/partial", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("書き込み後のパニック")
		})

		req := httptest.NewRequest(http.MethodGet, "/partial", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if w.Body.String() != "partial" {
			t.Errorf("body = %q, want %q", w.Body.String(), "partial")
		}
	})

	t.Run("認証済みリクエストのパニックでも500が返りサーバーが継続すること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery())
		router.Use(BasicAuth(basicauth.NewGate(basicauth.NewCredentials("admin", "123"))))
		router.POST("/api/orders", func(_ *gin.Context) {
			panic("注文処理でパニック")
		})
		router.GET("/api/orders", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "recovered"})
		})

		req1 := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req1.Header.Set("Authorization", basicauth.Encode("admin", "123"))
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, req1)

		if w1.Code != http.StatusInternalServerError {
			t.Errorf("1回目のステータスコード = %d, want %d", w1.Code, http.StatusInternalServerError)
		}

		req2 := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req2.Header.Set("Authorization", basicauth.Encode("admin", "123"))
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req2)

		if w2.Code != http.StatusOK {
			t.Errorf("2回目のステータスコード = %d, want %d", w2.Code, http.StatusOK)
		}
	})
}
