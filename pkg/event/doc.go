// Package event はカタログの状態変更を表すイベントと、その送信先を提供する。
//
// カテゴリ・商品・注文の作成、更新、削除ごとにイベントを生成し、
// NATSまたはHTTPのEvent Storeへ送信する。送信先が無い場合はNoopPublisherを使う。
package event
