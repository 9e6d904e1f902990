package eventstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Aravinthpromon/ORM-tasks/internal/eventstore/db"
	"github.com/Aravinthpromon/ORM-tasks/internal/eventstore/migrations"
	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
	"github.com/Aravinthpromon/ORM-tasks/pkg/httpclient"
	"github.com/Aravinthpromon/ORM-tasks/pkg/migration"
	"github.com/Aravinthpromon/ORM-tasks/pkg/sqlitedb"
)

var (
	// ErrDuplicateEvent は同じIDのイベントが記録済みであることを表す。
	ErrDuplicateEvent = errors.New("イベントは記録済みです")
)

// Open はpathのSQLiteデータベースを開き、スキーマを最新にする。
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sqlitedb.Open(path)
	if err != nil {
		return nil, err
	}
	if err := migration.Run(sqlDB, migrations.FS, migrations.Dir); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return sqlDB, nil
}

// Append はイベントを記録し、振られたバージョンを含む行を返す。
// IDが空ならUUIDを、作成日時が空なら受信日時を補う。
func (s *Server) Append(ctx context.Context, e *event.Event, actor string) (db.Event, error) {
	if err := e.Validate(); err != nil {
		return db.Event{}, err
	}

	now := s.now()
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := e.CreatedAt.UTC()
	if e.CreatedAt.IsZero() {
		createdAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return db.Event{}, fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer tx.Rollback()
	q := s.queries.WithTx(tx)

	if _, err := q.GetEvent(ctx, id); err == nil {
		return db.Event{}, fmt.Errorf("%w: id=%s", ErrDuplicateEvent, id)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return db.Event{}, fmt.Errorf("既存イベントの確認に失敗: %w", err)
	}

	if err := q.AppendEvent(ctx, db.AppendEventParams{
		ID:            id,
		AggregateID:   e.AggregateID,
		AggregateType: string(e.AggregateType),
		EventType:     string(e.EventType),
		Data:          string(e.Data),
		Actor:         actor,
		CreatedAt:     createdAt,
		RecordedAt:    now,
	}); err != nil {
		// 確認から追記までの間に同じIDが記録された
		if sqlitedb.IsPrimaryKeyViolation(err) {
			return db.Event{}, fmt.Errorf("%w: id=%s", ErrDuplicateEvent, id)
		}
		return db.Event{}, fmt.Errorf("イベントの追記に失敗: %w", err)
	}

	row, err := q.GetEvent(ctx, id)
	if err != nil {
		return db.Event{}, fmt.Errorf("追記したイベントの取得に失敗: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return db.Event{}, fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return row, nil
}

// HandleEvent はNATSから受信したイベントを記録する。
// 記録済みのイベントは重複配信とみなして無視する。
func (s *Server) HandleEvent(ctx context.Context, e *event.Event) error {
	actor, _ := httpclient.ActorFromContext(ctx)
	row, err := s.Append(ctx, e, actor)
	if errors.Is(err, ErrDuplicateEvent) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("[EventStore] イベントを記録しました: type=%s, aggregate=%s, version=%d", row.EventType, row.AggregateID, row.Version)
	return nil
}
