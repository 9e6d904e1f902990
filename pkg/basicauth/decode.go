package basicauth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidBase64 はペイロードが標準base64として復号できないことを表す。
	ErrInvalidBase64 = errors.New("base64の復号に失敗")
	// ErrInvalidUTF8 は復号結果が正しいUTF-8でないことを表す。
	ErrInvalidUTF8 = errors.New("UTF-8として不正なバイト列")
	// ErrMissingSeparator は復号結果に ':' が含まれないことを表す。
	ErrMissingSeparator = errors.New("ユーザー名とパスワードの区切り ':' がない")
)

// Identity はAuthorizationヘッダーから取り出したユーザー名とパスワード。
type Identity struct {
	// Username はクライアントが提示したユーザー名。
	Username string
	// Password はクライアントが提示したパスワード。ログに出力してはならない。
	Password string
}

// Decode は "Basic " 以降のペイロードを復号してIdentityを返す。
// 標準base64で復号し、UTF-8として検証したうえで最初の ':' で分割する。
// パスワード側に ':' が含まれていてもそのまま保持する。
func Decode(payload string) (Identity, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	if !utf8.Valid(raw) {
		return Identity{}, ErrInvalidUTF8
	}

	username, password, found := strings.Cut(string(raw), ":")
	if !found {
		return Identity{}, ErrMissingSeparator
	}
	return Identity{Username: username, Password: password}, nil
}

// Encode はユーザー名とパスワードからAuthorizationヘッダーの値を組み立てる。
// クライアント側やテストで使用する。
func Encode(username, password string) string {
	return schemePrefix + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
