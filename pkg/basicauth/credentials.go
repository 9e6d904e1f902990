package basicauth

import "crypto/subtle"

// Credentials はゲートが受け付ける唯一のユーザー名とパスワードの組。
// プロセス起動時に一度だけ生成され、以後変更されない。
type Credentials struct {
	// username は期待するユーザー名。
	username string
	// password は期待するパスワード。
	password string
}

// NewCredentials は認証情報を生成する。
func NewCredentials(username, password string) Credentials {
	return Credentials{username: username, password: password}
}

// Username は期待するユーザー名を返す。
func (c Credentials) Username() string {
	return c.username
}

// Match はユーザー名とパスワードの両方が完全一致する場合にtrueを返す。
// 比較は定数時間で行い、片方が不一致でももう片方の比較を省略しない。
func (c Credentials) Match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.password))
	return userOK&passOK == 1
}
