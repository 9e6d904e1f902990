package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// adminIssuer は管理画面セッショントークンの発行者。
const adminIssuer = "catalog-admin"

// adminSessionTTL は管理画面セッショントークンの有効期間。
const adminSessionTTL = 24 * time.Hour

// AdminClaims は管理画面セッショントークンのクレーム。
type AdminClaims struct {
	jwt.RegisteredClaims
	// Username はログインした管理者のユーザー名。
	Username string `json:"username"`
}

// GenerateJWT は管理者のユーザー名から管理画面セッショントークンを生成する。
// /admin/login でのログイン成功時に呼び出す。
func GenerateJWT(secret, username string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(adminSessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    adminIssuer,
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// ParseJWT は管理画面セッショントークンを検証し、クレームを返す。
// 署名方式はHS256、発行者はadminIssuerのものだけを受け付ける。
func ParseJWT(secret, tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("トークンの検証に失敗: %w", err)
	}
	if claims.Username == "" {
		return nil, errors.New("トークンにユーザー名が含まれていない")
	}
	return claims, nil
}

// JWTAuth は管理画面セッショントークンを検証するGinミドルウェアを返す。
// /admin/ 配下はBasic認証ゲートの対象外のため、管理APIはこのミドルウェアで保護する。
// 検証に成功した場合、コンテキストにユーザー名を設定する。
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			c.Header("WWW-Authenticate", `Bearer realm="`+adminIssuer+`"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearerトークンが必要です",
			})
			return
		}

		claims, err := ParseJWT(secret, tokenString)
		if err != nil {
			log.Printf("[Admin] トークンを拒否しました: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "トークンが無効です",
			})
			return
		}

		c.Set(contextKeyUsername, claims.Username)
		c.Next()
	}
}
