// Package eventstore はカタログのイベントを追記のみで記録するサービスを提供する。
//
// カタログサービスが送信した状態変更イベントをHTTP（POST /api/v1/events）または
// NATS（catalog.events.>）で受け取り、SQLiteに永続化する。
// イベントは不変であり、AggregateIDごとに1から始まるバージョンを振る。
//
// 主な機能:
//   - イベントの追記（Append）
//   - AggregateIDによるイベント取得（エンティティの変更履歴）
//   - イベントタイプによるイベント取得
//   - 日時指定によるイベント取得（増分の取り込み用）
package eventstore
