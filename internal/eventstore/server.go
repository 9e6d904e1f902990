package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aravinthpromon/ORM-tasks/internal/config"
	"github.com/Aravinthpromon/ORM-tasks/internal/eventstore/db"
	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
	"github.com/Aravinthpromon/ORM-tasks/pkg/httpclient"
	"github.com/Aravinthpromon/ORM-tasks/pkg/middleware"
)

// shutdownTimeout は終了時に処理中のリクエストを待つ時間。
const shutdownTimeout = 10 * time.Second

// Server はイベントストアサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// addr はサーバーの待ち受けアドレス。
	addr string
	// queries はeventsテーブルへのクエリ実行オブジェクト。
	queries *db.Queries
	// db はデータベース接続。トランザクション管理に使用する。
	db *sql.DB
	// now は現在時刻を返す。
	now func() time.Time
}

// NewServer は新しいイベントストアサーバーを生成する。
func NewServer(cfg *config.Config) (*Server, error) {
	sqlDB, err := Open(cfg.EventStoreDatabasePath)
	if err != nil {
		return nil, err
	}
	return newServer(sqlDB, cfg.EventStoreAddr()), nil
}

// newServer は開いたデータベース接続からサーバーを組み立てる。
func newServer(sqlDB *sql.DB, addr string) *Server {
	s := &Server{
		router:  gin.New(),
		addr:    addr,
		queries: db.New(sqlDB),
		db:      sqlDB,
		now:     func() time.Time { return time.Now().UTC() },
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
		log.Printf("[EventStore] サーバーを起動します: addr=%s", s.addr)
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

	log.Printf("[EventStore] サーバーを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// Close はデータベース接続を閉じる。
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recovery())
	s.router.Use(gin.Logger())

	api := s.router.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			// イベントの追記
			events.POST("", s.handleAppendEvent())
			// 全イベント取得
			events.GET("", s.handleListEvents())
			// AggregateIDによるイベント取得
			events.GET("/aggregate/:aggregate_id", s.handleGetEventsByAggregateID())
			// AggregateIDの最新バージョン取得
			events.GET("/aggregate/:aggregate_id/version", s.handleGetLatestVersion())
			// イベントタイプによるイベント取得
			events.GET("/type/:event_type", s.handleGetEventsByType())
			// 日時指定によるイベント取得（クエリパラメータ: since）
			events.GET("/since", s.handleGetEventsSince())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "eventstore"})
	})
}

// appendEventRequest はイベント追記リクエストのボディ。
type appendEventRequest struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id" binding:"required"`
	AggregateType string          `json:"aggregate_type" binding:"required"`
	EventType     string          `json:"event_type" binding:"required"`
	Data          json.RawMessage `json:"data" binding:"required"`
	CreatedAt     time.Time       `json:"created_at"`
}

// eventResponse はイベントのレスポンス形式。
type eventResponse struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Version       int64           `json:"version"`
	Actor         string          `json:"actor"`
	CreatedAt     string          `json:"created_at"`
	RecordedAt    string          `json:"recorded_at"`
}

// toEventResponse はDBの行をレスポンス形式に変換する。
func toEventResponse(row db.Event) eventResponse {
	return eventResponse{
		ID:            row.ID,
		AggregateID:   row.AggregateID,
		AggregateType: row.AggregateType,
		EventType:     row.EventType,
		Data:          json.RawMessage(row.Data),
		Version:       row.Version,
		Actor:         row.Actor,
		CreatedAt:     formatTime(row.CreatedAt),
		RecordedAt:    formatTime(row.RecordedAt),
	}
}

// toEventResponses は複数行をレスポンス形式に変換する。空でもnilではなく空配列を返す。
func toEventResponses(rows []db.Event) []eventResponse {
	resp := make([]eventResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toEventResponse(row))
	}
	return resp
}

// handleAppendEvent はイベントの追記を処理するハンドラを返す。
func (s *Server) handleAppendEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appendEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		e := &event.Event{
			ID:            req.ID,
			AggregateID:   req.AggregateID,
			AggregateType: event.AggregateType(req.AggregateType),
			EventType:     event.Type(req.EventType),
			Data:          req.Data,
			CreatedAt:     req.CreatedAt,
		}
		row, err := s.Append(c.Request.Context(), e, c.GetHeader(httpclient.HeaderActor))
		switch {
		case errors.Is(err, event.ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, ErrDuplicateEvent):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case err != nil:
			internalError(c, "イベントの追記に失敗しました", err)
			return
		}

		c.JSON(http.StatusCreated, toEventResponse(row))
	}
}

// handleListEvents は全イベントを作成日時の昇順で返すハンドラを返す。
func (s *Server) handleListEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := s.queries.ListEvents(c.Request.Context())
		if err != nil {
			internalError(c, "イベントの取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toEventResponses(rows))
	}
}

// handleGetEventsByAggregateID はAggregateIDのイベントをバージョン順に返すハンドラを返す。
func (s *Server) handleGetEventsByAggregateID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := s.queries.ListEventsByAggregateID(c.Request.Context(), c.Param("aggregate_id"))
		if err != nil {
			internalError(c, "イベントの取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toEventResponses(rows))
	}
}

// handleGetEventsByType はイベントタイプに一致するイベントを返すハンドラを返す。
func (s *Server) handleGetEventsByType() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := s.queries.ListEventsByType(c.Request.Context(), c.Param("event_type"))
		if err != nil {
			internalError(c, "イベントの取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toEventResponses(rows))
	}
}

// handleGetEventsSince はsince（RFC3339）以降に作成されたイベントを返すハンドラを返す。
func (s *Server) handleGetEventsSince() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("since")
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sinceパラメータは必須です"})
			return
		}
		since, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sinceはRFC3339形式で指定してください"})
			return
		}

		rows, err := s.queries.ListEventsSince(c.Request.Context(), since.UTC())
		if err != nil {
			internalError(c, "イベントの取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toEventResponses(rows))
	}
}

// handleGetLatestVersion はAggregateIDの最新バージョンを返すハンドラを返す。
// イベントが無ければ0を返す。
func (s *Server) handleGetLatestVersion() gin.HandlerFunc {
	return func(c *gin.Context) {
		aggregateID := c.Param("aggregate_id")
		version, err := s.queries.GetLatestVersion(c.Request.Context(), aggregateID)
		if err != nil {
			internalError(c, "バージョンの取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"aggregate_id": aggregateID, "version": version})
	}
}

// internalError は500エラーを返し、原因をログに残す。
func internalError(c *gin.Context, message string, err error) {
	log.Printf("[EventStore] %s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// formatTime はレスポンス用に日時を整形する。
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
