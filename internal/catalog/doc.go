// Package catalog は商品カタログのHTTP APIを提供する。
//
// カテゴリ・商品・注文のCRUDをSQLite上に実装し、すべての /api 配下のリクエストを
// Basic認証ゲートの後ろに置く。"/" と "/admin/" 配下はゲートを免除し、
// 管理用エンドポイントは独自のJWTセッションで保護する。
//
// 状態が変わるたびにイベントを event.Publisher へ送信する。送信の失敗はログに残すだけで、
// APIのレスポンスには影響しない。
package catalog
