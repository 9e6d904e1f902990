// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// Basic認証ゲートの適用、管理画面用JWTセッションの検証、パニックリカバリ、
// CORS設定など、カタログサービス全体で共通して使用するミドルウェアを含む。
package middleware
