package basicauth

import (
	"errors"
	"log"
	"net/http"
	"strings"
)

const (
	// MsgMissingHeader はヘッダーが無い、またはBasicスキームでない場合の拒否理由。
	MsgMissingHeader = "Missing or invalid Authorization header"
	// MsgInvalidFormat はペイロードを復号できない場合の拒否理由。
	MsgInvalidFormat = "Invalid Authorization header format"
	// MsgInvalidCredentials はユーザー名またはパスワードが一致しない場合の拒否理由。
	MsgInvalidCredentials = "Invalid username or password"
)

// schemePrefix はBasic認証スキームのヘッダー接頭辞。
const schemePrefix = "Basic "

// adminPrefix は認証を免除する管理画面のパス接頭辞。
const adminPrefix = "/admin/"

// Request はゲートが判定に使うリクエストの情報。
type Request struct {
	// Path はリクエストパス。
	Path string
	// Authorization はAuthorizationヘッダーの値。ヘッダーが無い場合は空文字列。
	Authorization string
}

// Decision はゲートの判定結果。
type Decision struct {
	// Allowed は後段のハンドラへ通す場合にtrue。
	Allowed bool
	// Reason は拒否理由。許可時は空文字列。
	Reason string
	// Status は拒否時に返すHTTPステータスコード。許可時は0。
	Status int
	// Username は認証に成功したユーザー名。免除パスでは空文字列。
	Username string
}

// Allow は許可の判定を返す。
func Allow() Decision {
	return Decision{Allowed: true}
}

// Reject は拒否の判定を返す。
func Reject(reason string, status int) Decision {
	return Decision{Reason: reason, Status: status}
}

// Gate はBasic認証によるリクエストゲート。
type Gate struct {
	creds Credentials
}

// NewGate は指定された認証情報で判定するゲートを生成する。
func NewGate(creds Credentials) *Gate {
	return &Gate{creds: creds}
}

// Credentials はゲートが保持する認証情報を返す。
func (g *Gate) Credentials() Credentials {
	return g.creds
}

// IsBypassed はパスが認証免除の対象かどうかを返す。
// ルートパスと /admin/ 配下が対象。
func IsBypassed(path string) bool {
	return path == "/" || strings.HasPrefix(path, adminPrefix)
}

// Evaluate はリクエストを許可するか拒否するかを判定する。
// 復号の失敗はすべて401の拒否に変換し、呼び出し元へエラーを伝播しない。
func (g *Gate) Evaluate(req Request) Decision {
	if IsBypassed(req.Path) {
		return Allow()
	}

	payload, found := strings.CutPrefix(req.Authorization, schemePrefix)
	if !found {
		log.Printf("[Auth] 認証ヘッダーが無いか不正です: path=%s", req.Path)
		return Reject(MsgMissingHeader, http.StatusUnauthorized)
	}

	identity, err := Decode(payload)
	if err != nil {
		log.Printf("[Auth] 認証情報の復号に失敗: path=%s, cause=%s", req.Path, decodeCause(err))
		return Reject(MsgInvalidFormat, http.StatusUnauthorized)
	}

	if !g.creds.Match(identity.Username, identity.Password) {
		log.Printf("[Auth] ユーザー名またはパスワードが不正です: path=%s, username=%q", req.Path, identity.Username)
		return Reject(MsgInvalidCredentials, http.StatusUnauthorized)
	}

	d := Allow()
	d.Username = identity.Username
	return d
}

// decodeCause は復号エラーの種類をログ用の短い文字列にする。
func decodeCause(err error) string {
	switch {
	case errors.Is(err, ErrInvalidBase64):
		return "base64"
	case errors.Is(err, ErrInvalidUTF8):
		return "utf8"
	case errors.Is(err, ErrMissingSeparator):
		return "separator"
	default:
		return "unknown"
	}
}
