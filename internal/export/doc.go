// Package export はカタログ全体をJSONLのスナップショットとして書き出す。
//
// 1行目はヘッダーレコード、以降はカテゴリ・商品・注文を
// {"type": ..., "data": ...} 形式で1行ずつ出力する。
// 出力先はローカルファイルまたはS3互換のバケットを選べる。
package export
