package catalog

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aravinthpromon/ORM-tasks/pkg/basicauth"
	"github.com/Aravinthpromon/ORM-tasks/pkg/middleware"
)

// loginRequest は管理ログインリクエストのJSON構造。
type loginRequest struct {
	// Username はユーザー名。
	Username string `json:"username" binding:"required"`
	// Password はパスワード。
	Password string `json:"password" binding:"required"`
}

// summaryResponse は管理サマリーのJSONレスポンス構造。
type summaryResponse struct {
	Categories int64  `json:"categories"`
	Products   int64  `json:"products"`
	Orders     int64  `json:"orders"`
	Revenue    string `json:"revenue"`
}

// handleAdminLogin は管理ログインを処理するハンドラを返す。
// Basic認証と同じ資格情報で照合し、管理セッション用のJWTを発行する。
func (s *Server) handleAdminLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		if !s.gate.Credentials().Match(req.Username, req.Password) {
			log.Printf("[Admin] ログインに失敗: username=%q", req.Username)
			c.JSON(http.StatusUnauthorized, gin.H{"error": basicauth.MsgInvalidCredentials})
			return
		}

		token, err := middleware.GenerateJWT(s.jwtSecret, req.Username)
		if err != nil {
			internalError(c, "トークンの発行に失敗しました", err)
			return
		}

		log.Printf("[Admin] ログインしました: username=%q", req.Username)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// handleAdminSummary は件数と売上合計を返すハンドラを返す。
func (s *Server) handleAdminSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		categories, err := s.queries.CountCategories(ctx)
		if err != nil {
			internalError(c, "カテゴリ数の取得に失敗しました", err)
			return
		}
		products, err := s.queries.CountProducts(ctx)
		if err != nil {
			internalError(c, "商品数の取得に失敗しました", err)
			return
		}
		orders, err := s.queries.CountOrders(ctx)
		if err != nil {
			internalError(c, "注文数の取得に失敗しました", err)
			return
		}
		revenue, err := s.queries.SumOrderCost(ctx)
		if err != nil {
			internalError(c, "売上合計の取得に失敗しました", err)
			return
		}

		c.JSON(http.StatusOK, summaryResponse{
			Categories: categories,
			Products:   products,
			Orders:     orders,
			Revenue:    FormatCents(revenue),
		})
	}
}
