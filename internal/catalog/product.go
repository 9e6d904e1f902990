package catalog

import (
	"context"
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

// errCategoryNotFound は参照先のカテゴリが存在しない場合のエラー。
var errCategoryNotFound = errors.New("指定されたカテゴリが存在しません")

// productRequest は商品作成・更新リクエストのJSON構造。
type productRequest struct {
	// Name は商品名。
	Name string `json:"name" binding:"required,max=255"`
	// CategoryID は所属カテゴリのID。
	CategoryID string `json:"category_id" binding:"required"`
	// Price は価格。数値または文字列の10進表記。
	Price *Cents `json:"price" binding:"required"`
}

// productResponse は商品のJSONレスポンス構造。
type productResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Price      string `json:"price"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toProductResponse(p db.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      FormatCents(p.PriceCents),
		CreatedAt:  formatTime(p.CreatedAt),
		UpdatedAt:  formatTime(p.UpdatedAt),
	}
}

func bindProduct(c *gin.Context) (productRequest, bool) {
	var req productRequest
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

// ensureCategory は参照先のカテゴリが存在することを確認する。
func ensureCategory(ctx context.Context, q *db.Queries, id string) error {
	if _, err := q.GetCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errCategoryNotFound
		}
		return err
	}
	return nil
}

// handleCreateProduct は商品作成を処理するハンドラを返す。
func (s *Server) handleCreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindProduct(c)
		if !ok {
			return
		}

		var created db.Product
		err := s.withTx(c.Request.Context(), func(q *db.Queries) error {
			if err := ensureCategory(c.Request.Context(), q, req.CategoryID); err != nil {
				return err
			}
			id := uuid.New().String()
			now := s.now()
			if err := q.CreateProduct(c.Request.Context(), db.CreateProductParams{
				ID:         id,
				Name:       req.Name,
				CategoryID: req.CategoryID,
				PriceCents: int64(*req.Price),
				CreatedAt:  now,
				UpdatedAt:  now,
			}); err != nil {
				return err
			}
			var err error
			created, err = q.GetProduct(c.Request.Context(), id)
			return err
		})
		if errors.Is(err, errCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			internalError(c, "商品の作成に失敗しました", err)
			return
		}

		s.emitEvent(c, event.AggregateTypeProduct, created.ID, event.TypeProductCreated, event.ProductData{
			Name:       created.Name,
			CategoryID: created.CategoryID,
			PriceCents: created.PriceCents,
		})
		c.JSON(http.StatusCreated, toProductResponse(created))
	}
}

// handleListProducts は商品一覧取得を処理するハンドラを返す。
// クエリパラメータ category_id が指定された場合はそのカテゴリの商品だけを返す。
func (s *Server) handleListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			products []db.Product
			err      error
		)
		if categoryID := c.Query("category_id"); categoryID != "" {
			products, err = s.queries.ListProductsByCategoryID(c.Request.Context(), categoryID)
		} else {
			products, err = s.queries.ListProducts(c.Request.Context())
		}
		if err != nil {
			internalError(c, "商品一覧の取得に失敗しました", err)
			return
		}

		responses := make([]productResponse, 0, len(products))
		for _, p := range products {
			responses = append(responses, toProductResponse(p))
		}
		c.JSON(http.StatusOK, responses)
	}
}

// handleGetProduct は商品詳細取得を処理するハンドラを返す。
func (s *Server) handleGetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := s.queries.GetProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "商品が見つかりません"})
			return
		}
		if err != nil {
			internalError(c, "商品の取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toProductResponse(p))
	}
}

// handleUpdateProduct は商品更新を処理するハンドラを返す。
// 既存の注文金額は注文作成・更新時点の価格で確定しているため再計算しない。
func (s *Server) handleUpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindProduct(c)
		if !ok {
			return
		}

		id := c.Param("id")
		var updated db.Product
		err := s.withTx(c.Request.Context(), func(q *db.Queries) error {
			if _, err := q.GetProduct(c.Request.Context(), id); err != nil {
				return err
			}
			if err := ensureCategory(c.Request.Context(), q, req.CategoryID); err != nil {
				return err
			}
			if _, err := q.UpdateProduct(c.Request.Context(), db.UpdateProductParams{
				Name:       req.Name,
				CategoryID: req.CategoryID,
				PriceCents: int64(*req.Price),
				UpdatedAt:  s.now(),
				ID:         id,
			}); err != nil {
				return err
			}
			var err error
			updated, err = q.GetProduct(c.Request.Context(), id)
			return err
		})
		switch {
		case errors.Is(err, sql.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "商品が見つかりません"})
			return
		case errors.Is(err, errCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			internalError(c, "商品の更新に失敗しました", err)
			return
		}

		s.emitEvent(c, event.AggregateTypeProduct, updated.ID, event.TypeProductUpdated, event.ProductData{
			Name:       updated.Name,
			CategoryID: updated.CategoryID,
			PriceCents: updated.PriceCents,
		})
		c.JSON(http.StatusOK, toProductResponse(updated))
	}
}

// handleDeleteProduct は商品削除を処理するハンドラを返す。
// 商品の注文も外部キー制約によって削除され、それぞれの削除イベントを送る。
func (s *Server) handleDeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		ctx := c.Request.Context()
		var cs cascade
		err := s.withTx(ctx, func(q *db.Queries) error {
			var err error
			if cs, err = collectProductCascade(ctx, q, id); err != nil {
				return err
			}
			n, err := q.DeleteProduct(ctx, id)
			if err != nil {
				return err
			}
			if n == 0 {
				return sql.ErrNoRows
			}
			return nil
		})
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "商品が見つかりません"})
			return
		}
		if err != nil {
			internalError(c, "商品の削除に失敗しました", err)
			return
		}

		s.emitCascade(c, cs)
		s.emitEvent(c, event.AggregateTypeProduct, id, event.TypeProductDeleted, event.DeletedData{
			DeletedBy: middleware.GetUsername(c),
		})
		c.Status(http.StatusNoContent)
	}
}
