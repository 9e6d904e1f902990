// Package basicauth はHTTP Basic認証によるリクエストゲートを提供する。
//
// ゲートはリクエストのパスとAuthorizationヘッダーだけを見て、
// 後段のハンドラへ通すか401で拒否するかを決定する。
// 判定は状態を持たず、起動時に一度だけ構築される認証情報のみを参照するため、
// 複数のゴルーチンから同時に呼び出しても安全である。
package basicauth
