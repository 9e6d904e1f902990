package event

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Aravinthpromon/ORM-tasks/pkg/httpclient"
)

// Handler は受信したイベントを処理する。
// ctxには送信元の操作ユーザー名が httpclient.WithActor で設定されている。
type Handler func(ctx context.Context, e *Event) error

// NATSSubscriber は catalog.events.> を購読してイベントを受け取る。
type NATSSubscriber struct {
	// conn はNATSサーバーとの接続。
	conn *nats.Conn
}

// NewNATSSubscriber は自動再接続付きでNATSサーバーに接続する。
func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	defaults := []nats.Option{
		nats.Name("catalog-eventstore"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("NATSへの接続に失敗: url=%s: %w", url, err)
	}
	return &NATSSubscriber{conn: nc}, nil
}

// Subscribe は全イベントを購読し、受信するたびにhandlerを呼ぶ。
// 解析できないメッセージやhandlerのエラーはログに残して読み飛ばす。
// 返り値の関数で購読を解除する。
func (s *NATSSubscriber) Subscribe(handler Handler) (func(), error) {
	sub, err := s.conn.Subscribe(SubjectPrefix+">", func(msg *nats.Msg) {
		e, err := Decode(msg.Data)
		if err != nil {
			log.Printf("[Event] 不正なメッセージを破棄しました: subject=%s: %v", msg.Subject, err)
			return
		}
		ctx := context.Background()
		if msg.Header != nil {
			ctx = httpclient.WithActor(ctx, msg.Header.Get(httpclient.HeaderActor))
		}
		if err := handler(ctx, e); err != nil {
			log.Printf("[Event] イベントの処理に失敗: id=%s, type=%s: %v", e.ID, e.EventType, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s> の購読に失敗: %w", SubjectPrefix, err)
	}
	// 他の接続から送られたメッセージを確実に受け取るため、購読の登録を待つ
	if err := s.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("購読の登録に失敗: %w", err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Close は処理中のメッセージを捌き切ってから接続を閉じる。
func (s *NATSSubscriber) Close() error {
	if err := s.conn.Drain(); err != nil {
		s.conn.Close()
		return fmt.Errorf("NATS接続のクローズに失敗: %w", err)
	}
	return nil
}
