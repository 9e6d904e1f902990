package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog"
	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/db"
)

// FormatVersion はエクスポート形式のバージョン。
const FormatVersion = "1"

// レコード種別
const (
	TypeHeader   = "header"
	TypeCategory = "category"
	TypeProduct  = "product"
	TypeOrder    = "order"
)

// Header はJSONLの先頭に書き出すレコード。
type Header struct {
	Version       string    `json:"version"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	CategoryCount int       `json:"category_count"`
	ProductCount  int       `json:"product_count"`
	OrderCount    int       `json:"order_count"`
}

// Category はエクスポートされるカテゴリ。
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product はエクスポートされる商品。価格は "699.99" 形式の文字列。
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	Price      string    `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Order はエクスポートされる注文。
type Order struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProductID    string    `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	Cost         string    `json:"cost"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// record は種別付きの1行。
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL はカタログの全データをJSONLとしてwに書き出す。
// 各エンティティはIDの昇順に並べる。
func ExportJSONL(ctx context.Context, q *db.Queries, w io.Writer) error {
	categories, err := q.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("カテゴリ一覧の取得に失敗: %w", err)
	}
	products, err := q.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("商品一覧の取得に失敗: %w", err)
	}
	orders, err := q.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("注文一覧の取得に失敗: %w", err)
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(Header{
		Version:       FormatVersion,
		Type:          TypeHeader,
		Timestamp:     time.Now().UTC(),
		CategoryCount: len(categories),
		ProductCount:  len(products),
		OrderCount:    len(orders),
	}); err != nil {
		return fmt.Errorf("ヘッダーの書き出しに失敗: %w", err)
	}

	for _, cat := range categories {
		data := Category{
			ID:        cat.ID,
			Name:      cat.Name,
			CreatedAt: cat.CreatedAt.UTC(),
			UpdatedAt: cat.UpdatedAt.UTC(),
		}
		if err := enc.Encode(record{Type: TypeCategory, Data: data}); err != nil {
			return fmt.Errorf("カテゴリ %s の書き出しに失敗: %w", cat.ID, err)
		}
	}

	for _, p := range products {
		data := Product{
			ID:         p.ID,
			Name:       p.Name,
			CategoryID: p.CategoryID,
			Price:      catalog.FormatCents(p.PriceCents),
			CreatedAt:  p.CreatedAt.UTC(),
			UpdatedAt:  p.UpdatedAt.UTC(),
		}
		if err := enc.Encode(record{Type: TypeProduct, Data: data}); err != nil {
			return fmt.Errorf("商品 %s の書き出しに失敗: %w", p.ID, err)
		}
	}

	for _, o := range orders {
		data := Order{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			ProductID:    o.ProductID,
			Quantity:     o.Quantity,
			Cost:         catalog.FormatCents(o.CostCents),
			CreatedAt:    o.CreatedAt.UTC(),
			UpdatedAt:    o.UpdatedAt.UTC(),
		}
		if err := enc.Encode(record{Type: TypeOrder, Data: data}); err != nil {
			return fmt.Errorf("注文 %s の書き出しに失敗: %w", o.ID, err)
		}
	}

	return nil
}
