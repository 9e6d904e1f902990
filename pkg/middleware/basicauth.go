package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Aravinthpromon/ORM-tasks/pkg/basicauth"
)

// contextKeyUsername は認証済みユーザー名をGinコンテキストに格納するキー。
// BasicAuthとJWTAuthの両方が同じキーに設定する。
const contextKeyUsername = "username"

// basicRealm は401応答のWWW-Authenticateヘッダーに含めるレルム。
const basicRealm = `Basic realm="catalog"`

// BasicAuth はBasic認証ゲートをリクエストパイプラインに組み込むGinミドルウェアを返す。
// ゲートが拒否した場合は {"error": 理由} を返して後続のハンドラを実行しない。
func BasicAuth(gate *basicauth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := gate.Evaluate(basicauth.Request{
			Path:          c.Request.URL.Path,
			Authorization: c.GetHeader("Authorization"),
		})
		if !decision.Allowed {
			c.Header("WWW-Authenticate", basicRealm)
			c.AbortWithStatusJSON(decision.Status, gin.H{"error": decision.Reason})
			return
		}

		if decision.Username != "" {
			c.Set(contextKeyUsername, decision.Username)
		}
		c.Next()
	}
}

// GetUsername はGinコンテキストから認証済みユーザー名を取得する。
// 認証が免除されたパスでは空文字列を返す。
func GetUsername(c *gin.Context) string {
	username, _ := c.Get(contextKeyUsername)
	if name, ok := username.(string); ok {
		return name
	}
	return ""
}
