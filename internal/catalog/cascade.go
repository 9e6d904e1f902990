package catalog

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/db"
	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
	"github.com/Aravinthpromon/ORM-tasks/pkg/middleware"
)

// cascade は親の削除に伴って外部キー制約で削除される子エンティティ。
type cascade struct {
	// parentID は削除される親のID。
	parentID string
	// productIDs は削除される商品のID。
	productIDs []string
	// orderIDs は削除される注文のID。
	orderIDs []string
}

// collectProductCascade は商品の削除で消える注文を集める。
func collectProductCascade(ctx context.Context, q *db.Queries, productID string) (cascade, error) {
	cs := cascade{parentID: productID}
	if err := cs.addOrders(ctx, q, productID); err != nil {
		return cascade{}, err
	}
	return cs, nil
}

// collectCategoryCascade はカテゴリの削除で消える商品と注文を集める。
func collectCategoryCascade(ctx context.Context, q *db.Queries, categoryID string) (cascade, error) {
	cs := cascade{parentID: categoryID}
	products, err := q.ListProductsByCategoryID(ctx, categoryID)
	if err != nil {
		return cascade{}, err
	}
	for _, p := range products {
		cs.productIDs = append(cs.productIDs, p.ID)
		if err := cs.addOrders(ctx, q, p.ID); err != nil {
			return cascade{}, err
		}
	}
	return cs, nil
}

func (cs *cascade) addOrders(ctx context.Context, q *db.Queries, productID string) error {
	orders, err := q.ListOrdersByProductID(ctx, productID)
	if err != nil {
		return err
	}
	for _, o := range orders {
		cs.orderIDs = append(cs.orderIDs, o.ID)
	}
	return nil
}

// emitCascade は連鎖削除された注文、商品の順に削除イベントを送信する。
// 親自身の削除イベントは呼び出し側が最後に送る。
func (s *Server) emitCascade(c *gin.Context, cs cascade) {
	data := event.DeletedData{
		DeletedBy:    middleware.GetUsername(c),
		CascadedFrom: cs.parentID,
	}
	for _, id := range cs.orderIDs {
		s.emitEvent(c, event.AggregateTypeOrder, id, event.TypeOrderDeleted, data)
	}
	for _, id := range cs.productIDs {
		s.emitEvent(c, event.AggregateTypeProduct, id, event.TypeProductDeleted, data)
	}
}
