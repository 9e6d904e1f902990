// Package httpclient はJSON APIを呼び出すための小さなHTTPクライアントを提供する。
//
// カタログサービスが外部のEvent Storeへイベントを送信する際に使用する。
// 操作したユーザー名はコンテキスト経由でヘッダーに載せる。
package httpclient
