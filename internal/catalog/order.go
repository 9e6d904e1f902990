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

// errProductNotFound は参照先の商品が存在しない場合のエラー。
var errProductNotFound = errors.New("指定された商品が存在しません")

// orderRequest は注文作成・更新リクエストのJSON構造。
// 金額はサーバー側で計算するため受け付けない。
type orderRequest struct {
	// CustomerName は注文者名。
	CustomerName string `json:"customer_name" binding:"required,max=255"`
	// ProductID は注文する商品のID。
	ProductID string `json:"product_id" binding:"required"`
	// Quantity は数量。1以上。
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// orderResponse は注文のJSONレスポンス構造。
type orderResponse struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	ProductID    string `json:"product_id"`
	Quantity     int64  `json:"quantity"`
	Cost         string `json:"cost"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toOrderResponse(o db.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		ProductID:    o.ProductID,
		Quantity:     o.Quantity,
		Cost:         FormatCents(o.CostCents),
		CreatedAt:    formatTime(o.CreatedAt),
		UpdatedAt:    formatTime(o.UpdatedAt),
	}
}

func bindOrder(c *gin.Context) (orderRequest, bool) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return req, false
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_nameは必須です"})
		return req, false
	}
	return req, true
}

// costFor は商品の現在価格から注文金額を計算する。
func costFor(ctx context.Context, q *db.Queries, productID string, quantity int64) (int64, error) {
	p, err := q.GetProduct(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errProductNotFound
	}
	if err != nil {
		return 0, err
	}
	return orderCost(p.PriceCents, quantity)
}

// writeOrderError は注文の作成・更新で発生したエラーをレスポンスに変換する。
func writeOrderError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "注文が見つかりません"})
	case errors.Is(err, errProductNotFound), errors.Is(err, ErrCostOverflow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		internalError(c, message, err)
	}
}

// handleCreateOrder は注文作成を処理するハンドラを返す。
// 金額は商品の現在価格と数量から計算する。
func (s *Server) handleCreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindOrder(c)
		if !ok {
			return
		}

		var created db.Order
		err := s.withTx(c.Request.Context(), func(q *db.Queries) error {
			cost, err := costFor(c.Request.Context(), q, req.ProductID, req.Quantity)
			if err != nil {
				return err
			}
			id := uuid.New().String()
			now := s.now()
			if err := q.CreateOrder(c.Request.Context(), db.CreateOrderParams{
				ID:           id,
				CustomerName: req.CustomerName,
				ProductID:    req.ProductID,
				Quantity:     req.Quantity,
				CostCents:    cost,
				CreatedAt:    now,
				UpdatedAt:    now,
			}); err != nil {
				return err
			}
			created, err = q.GetOrder(c.Request.Context(), id)
			return err
		})
		if err != nil {
			writeOrderError(c, "注文の作成に失敗しました", err)
			return
		}

		s.emitEvent(c, event.AggregateTypeOrder, created.ID, event.TypeOrderCreated, orderData(created))
		c.JSON(http.StatusCreated, toOrderResponse(created))
	}
}

// handleListOrders は注文一覧取得を処理するハンドラを返す。
func (s *Server) handleListOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := s.queries.ListOrders(c.Request.Context())
		if err != nil {
			internalError(c, "注文一覧の取得に失敗しました", err)
			return
		}

		responses := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			responses = append(responses, toOrderResponse(o))
		}
		c.JSON(http.StatusOK, responses)
	}
}

// handleGetOrder は注文詳細取得を処理するハンドラを返す。
func (s *Server) handleGetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := s.queries.GetOrder(c.Request.Context(), c.Param("id"))
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "注文が見つかりません"})
			return
		}
		if err != nil {
			internalError(c, "注文の取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(o))
	}
}

// handleUpdateOrder は注文更新を処理するハンドラを返す。
// 金額は更新のたびに商品の現在価格で再計算する。
func (s *Server) handleUpdateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindOrder(c)
		if !ok {
			return
		}

		id := c.Param("id")
		var updated db.Order
		err := s.withTx(c.Request.Context(), func(q *db.Queries) error {
			if _, err := q.GetOrder(c.Request.Context(), id); err != nil {
				return err
			}
			cost, err := costFor(c.Request.Context(), q, req.ProductID, req.Quantity)
			if err != nil {
				return err
			}
			if _, err := q.UpdateOrder(c.Request.Context(), db.UpdateOrderParams{
				CustomerName: req.CustomerName,
				ProductID:    req.ProductID,
				Quantity:     req.Quantity,
				CostCents:    cost,
				UpdatedAt:    s.now(),
				ID:           id,
			}); err != nil {
				return err
			}
			updated, err = q.GetOrder(c.Request.Context(), id)
			return err
		})
		if err != nil {
			writeOrderError(c, "注文の更新に失敗しました", err)
			return
		}

		s.emitEvent(c, event.AggregateTypeOrder, updated.ID, event.TypeOrderUpdated, orderData(updated))
		c.JSON(http.StatusOK, toOrderResponse(updated))
	}
}

// handleDeleteOrder は注文削除を処理するハンドラを返す。
func (s *Server) handleDeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		n, err := s.queries.DeleteOrder(c.Request.Context(), id)
		if err != nil {
			internalError(c, "注文の削除に失敗しました", err)
			return
		}
		if n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "注文が見つかりません"})
			return
		}

		s.emitEvent(c, event.AggregateTypeOrder, id, event.TypeOrderDeleted, event.DeletedData{
			DeletedBy: middleware.GetUsername(c),
		})
		c.Status(http.StatusNoContent)
	}
}

func orderData(o db.Order) event.OrderData {
	return event.OrderData{
		CustomerName: o.CustomerName,
		ProductID:    o.ProductID,
		Quantity:     o.Quantity,
		CostCents:    o.CostCents,
	}
}
