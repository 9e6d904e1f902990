package catalog

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/db"
	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
	"github.com/Aravinthpromon/ORM-tasks/pkg/middleware"
)

// categoryRequest はカテゴリ作成・更新リクエストのJSON構造。
type categoryRequest struct {
	// Name はカテゴリ名。
	Name string `json:"name" binding:"required,max=255"`
}

// categoryResponse はカテゴリのJSONレスポンス構造。
type categoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toCategoryResponse(cat db.Category) categoryResponse {
	return categoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		CreatedAt: formatTime(cat.CreatedAt),
		UpdatedAt: formatTime(cat.UpdatedAt),
	}
}

// bindCategory はリクエストボディを読み込み、名前の前後の空白を取り除く。
func bindCategory(c *gin.Context) (categoryRequest, bool) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nameは必須です"})
		return req, false
	}
	return req, true
}

// handleCreateCategory はカテゴリ作成を処理するハンドラを返す。
func (s *Server) handleCreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindCategory(c)
		if !ok {
			return
		}

		id := uuid.New().String()
		now := s.now()
		if err := s.queries.CreateCategory(c.Request.Context(), db.CreateCategoryParams{
			ID:        id,
			Name:      req.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			internalError(c, "カテゴリの作成に失敗しました", err)
			return
		}

		created, err := s.queries.GetCategory(c.Request.Context(), id)
		if err != nil {
			internalError(c, "作成したカテゴリの取得に失敗しました", err)
			return
		}

		s.emitEvent(c, event.AggregateTypeCategory, created.ID, event.TypeCategoryCreated, event.CategoryData{
			Name: created.Name,
		})
		c.JSON(http.StatusCreated, toCategoryResponse(created))
	}
}

// handleListCategories はカテゴリ一覧取得を処理するハンドラを返す。
func (s *Server) handleListCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := s.queries.ListCategories(c.Request.Context())
		if err != nil {
			internalError(c, "カテゴリ一覧の取得に失敗しました", err)
			return
		}

		responses := make([]categoryResponse, 0, len(categories))
		for _, cat := range categories {
			responses = append(responses, toCategoryResponse(cat))
		}
		c.JSON(http.StatusOK, responses)
	}
}

// handleGetCategory はカテゴリ詳細取得を処理するハンドラを返す。
func (s *Server) handleGetCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := s.queries.GetCategory(c.Request.Context(), c.Param("id"))
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "カテゴリが見つかりません"})
			return
		}
		if err != nil {
			internalError(c, "カテゴリの取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toCategoryResponse(cat))
	}
}

// handleUpdateCategory はカテゴリ名の更新を処理するハンドラを返す。
func (s *Server) handleUpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindCategory(c)
		if !ok {
			return
		}

		id := c.Param("id")
		n, err := s.queries.UpdateCategory(c.Request.Context(), db.UpdateCategoryParams{
			Name:      req.Name,
			UpdatedAt: s.now(),
			ID:        id,
		})
		if err != nil {
			internalError(c, "カテゴリの更新に失敗しました", err)
			return
		}
		if n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "カテゴリが見つかりません"})
			return
		}

		updated, err := s.queries.GetCategory(c.Request.Context(), id)
		if err != nil {
			internalError(c, "更新後のカテゴリの取得に失敗しました", err)
			return
		}

		s.emitEvent(c, event.AggregateTypeCategory, updated.ID, event.TypeCategoryUpdated, event.CategoryData{
			Name: updated.Name,
		})
		c.JSON(http.StatusOK, toCategoryResponse(updated))
	}
}

// handleDeleteCategory はカテゴリ削除を処理するハンドラを返す。
// 所属する商品と、その商品の注文も外部キー制約によって削除され、それぞれの削除イベントを送る。
func (s *Server) handleDeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		ctx := c.Request.Context()
		var cs cascade
		err := s.withTx(ctx, func(q *db.Queries) error {
			var err error
			if cs, err = collectCategoryCascade(ctx, q, id); err != nil {
				return err
			}
			n, err := q.DeleteCategory(ctx, id)
			if err != nil {
				return err
			}
			if n == 0 {
				return sql.ErrNoRows
			}
			return nil
		})
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "カテゴリが見つかりません"})
			return
		}
		if err != nil {
			internalError(c, "カテゴリの削除に失敗しました", err)
			return
		}

		s.emitCascade(c, cs)
		s.emitEvent(c, event.AggregateTypeCategory, id, event.TypeCategoryDeleted, event.DeletedData{
			DeletedBy: middleware.GetUsername(c),
		})
		c.Status(http.StatusNoContent)
	}
}
