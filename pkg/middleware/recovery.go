package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// MsgInternalError はパニックから回復したときに返すエラーメッセージ。
const MsgInternalError = "内部サーバーエラーが発生しました"

// Recovery はハンドラーのパニックを500エラーのJSONに変換するGinミドルウェアを返す。
// ログにはリクエストと認証済みユーザー名、スタックトレースを出す。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Printf("[PANIC] %s %s user=%q: %v\n%s",
				c.Request.Method, c.Request.URL.Path, GetUsername(c), r, debug.Stack())

			// 送信済みのレスポンスは差し替えられない
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": MsgInternalError})
		}()
		c.Next()
	}
}
