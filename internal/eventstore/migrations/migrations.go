// Package migrations はイベントストアのスキーマ定義をバイナリに埋め込む。
package migrations

import "embed"

// FS はマイグレーションSQLファイル群。
//
//go:embed *.sql
var FS embed.FS

// Dir はFS内でマイグレーションファイルを置いているディレクトリ。
const Dir = "."
