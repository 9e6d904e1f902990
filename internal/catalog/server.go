package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/db"
	"github.com/Aravinthpromon/ORM-tasks/internal/config"
	"github.com/Aravinthpromon/ORM-tasks/pkg/basicauth"
	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
	"github.com/Aravinthpromon/ORM-tasks/pkg/middleware"
)

// shutdownTimeout は終了時に処理中のリクエストを待つ時間。
const shutdownTimeout = 10 * time.Second

// Server はカタログサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// addr はサーバーの待ち受けアドレス。
	addr string
	// queries はカタログテーブルへのクエリ実行オブジェクト。
	queries *db.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// gate は /api 配下を保護するBasic認証ゲート。
	gate *basicauth.Gate
	// jwtSecret は管理セッションのJWT署名鍵。
	jwtSecret string
	// allowedOrigins はCORSで許可するオリジン。
	allowedOrigins []string
	// publisher は状態変更イベントの送信先。
	publisher event.Publisher
	// now は現在時刻を返す。
	now func() time.Time
}

// NewServer は新しいカタログサーバーを生成する。
// SQLiteデータベースを開いてスキーマを最新にする。
func NewServer(cfg *config.Config, publisher event.Publisher) (*Server, error) {
	sqlDB, err := Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	return newServer(sqlDB, cfg, publisher), nil
}

// newServer は開いたデータベース接続からサーバーを組み立てる。
func newServer(sqlDB *sql.DB, cfg *config.Config, publisher event.Publisher) *Server {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}

	s := &Server{
		router:         gin.New(),
		addr:           cfg.Addr(),
		queries:        db.New(sqlDB),
		db:             sqlDB,
		gate:           basicauth.NewGate(cfg.Credentials()),
		jwtSecret:      cfg.JWTSecret,
		allowedOrigins: cfg.AllowedOrigins(),
		publisher:      publisher,
		now:            func() time.Time { return time.Now().UTC() },
	}
	s.setupRoutes()
	return s
}

// Handler はHTTPハンドラとしてのルーターを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまで待ち受ける。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Catalog] サーバーを起動します: addr=%s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーが停止しました: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[Catalog] サーバーを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// Close はイベント送信先とデータベース接続を閉じる。
func (s *Server) Close() error {
	return errors.Join(s.publisher.Close(), s.db.Close())
}

// setupRoutes はAPIルーティングを設定する。
// CORSはプリフライトに応答するためゲートより前に置く。
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recovery())
	s.router.Use(gin.Logger())
	s.router.Use(middleware.CORS(s.allowedOrigins))
	s.router.Use(middleware.BasicAuth(s.gate))

	// サービス情報（認証不要）
	s.router.GET("/", s.handleRoot())

	api := s.router.Group("/api")
	{
		categories := api.Group("/categories")
		{
			categories.POST("", s.handleCreateCategory())
			categories.GET("", s.handleListCategories())
			categories.GET("/:id", s.handleGetCategory())
			categories.PUT("/:id", s.handleUpdateCategory())
			categories.DELETE("/:id", s.handleDeleteCategory())
		}

		products := api.Group("/products")
		{
			products.POST("", s.handleCreateProduct())
			products.GET("", s.handleListProducts())
			products.GET("/:id", s.handleGetProduct())
			products.PUT("/:id", s.handleUpdateProduct())
			products.DELETE("/:id", s.handleDeleteProduct())
		}

		orders := api.Group("/orders")
		{
			orders.POST("", s.handleCreateOrder())
			orders.GET("", s.handleListOrders())
			orders.GET("/:id", s.handleGetOrder())
			orders.PUT("/:id", s.handleUpdateOrder())
			orders.DELETE("/:id", s.handleDeleteOrder())
		}
	}

	// 管理用エンドポイント。Basic認証ゲートは免除され、JWTで保護する
	admin := s.router.Group("/admin")
	{
		admin.POST("/login", s.handleAdminLogin())
		admin.GET("/summary", middleware.JWTAuth(s.jwtSecret), s.handleAdminSummary())
	}
}

// handleRoot はサービス情報を返すハンドラを返す。
func (s *Server) handleRoot() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "catalog",
			"status":  "ok",
			"endpoints": []string{
				"/api/categories",
				"/api/products",
				"/api/orders",
			},
		})
	}
}

// withTx はトランザクション内でfnを実行する。fnがエラーを返した場合はロールバックする。
func (s *Server) withTx(ctx context.Context, fn func(q *db.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	if err := fn(s.queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("[Catalog] ロールバックに失敗: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return nil
}

// internalError は500エラーを返し、原因をログに残す。
func internalError(c *gin.Context, message string, err error) {
	log.Printf("[Catalog] %s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// badRequest はリクエスト不正の400エラーを返す。
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
}

// formatTime はレスポンス用に日時を整形する。
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
