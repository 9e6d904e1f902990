package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Aravinthpromon/ORM-tasks/pkg/httpclient"
)

// SubjectPrefix はNATSへ送信する際のサブジェクト接頭辞。
// 購読側は "catalog.events.>" で全イベントを受信できる。
const SubjectPrefix = "catalog.events."

// Publisher はイベントを外部へ送信するインターフェース。
type Publisher interface {
	// Publish はイベントを1件送信する。
	Publish(ctx context.Context, e *Event) error
	// Close は送信先との接続を閉じる。
	Close() error
}

// Subject はイベントのNATSサブジェクトを返す。
func Subject(e *Event) string {
	return SubjectPrefix + string(e.EventType)
}

// NoopPublisher は何も送信しないPublisher。送信先が設定されていない場合に使用する。
type NoopPublisher struct{}

// Publish は何もせずnilを返す。
func (NoopPublisher) Publish(context.Context, *Event) error { return nil }

// Close は何もせずnilを返す。
func (NoopPublisher) Close() error { return nil }

// NATSPublisher はイベントをJSONにしてNATSサブジェクトへ送信する。
type NATSPublisher struct {
	// conn はNATSサーバーとの接続。
	conn *nats.Conn
}

// NewNATSPublisher は指定URLのNATSサーバーに接続するPublisherを生成する。
func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	defaults := []nats.Option{
		nats.Name("catalog"),
		nats.MaxReconnects(-1),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("NATSへの接続に失敗: url=%s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

// Publish はイベントを catalog.events.<EventType> へ送信する。
// コンテキストに操作ユーザー名があればX-Catalog-Actorヘッダーに載せる。
func (p *NATSPublisher) Publish(ctx context.Context, e *Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("イベントのシリアライズに失敗: %w", err)
	}
	msg := nats.NewMsg(Subject(e))
	msg.Data = data
	if actor, ok := httpclient.ActorFromContext(ctx); ok {
		msg.Header.Set(httpclient.HeaderActor, actor)
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("NATSへのイベント送信に失敗: %w", err)
	}
	return nil
}

// Close は未送信のメッセージを送り切ってから接続を閉じる。
func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("NATS接続のクローズに失敗: %w", err)
	}
	return nil
}

// eventsPath はEvent Storeのイベント追記エンドポイント。
const eventsPath = "/api/v1/events"

// HTTPPublisher はイベントをHTTP経由でEvent Storeへ送信する。
type HTTPPublisher struct {
	// client はEvent StoreへのHTTPクライアント。
	client *httpclient.Client
}

// NewHTTPPublisher はbaseURLのEvent Storeへ送信するPublisherを生成する。
func NewHTTPPublisher(baseURL string) *HTTPPublisher {
	return &HTTPPublisher{client: httpclient.New(baseURL)}
}

// Publish はイベントをEvent StoreへPOSTする。
func (p *HTTPPublisher) Publish(ctx context.Context, e *Event) error {
	if err := p.client.PostJSON(ctx, eventsPath, e, nil); err != nil {
		return fmt.Errorf("Event Storeへのイベント送信に失敗: %w", err)
	}
	return nil
}

// Close は何もせずnilを返す。
func (p *HTTPPublisher) Close() error { return nil }
