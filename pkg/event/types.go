package event

import (
	"encoding/json"
	"time"
)

// AggregateType はイベントの対象となるエンティティの種類を表す。
type AggregateType string

const (
	// AggregateTypeCategory は商品カテゴリを表す。
	AggregateTypeCategory AggregateType = "Category"
	// AggregateTypeProduct は商品を表す。
	AggregateTypeProduct AggregateType = "Product"
	// AggregateTypeOrder は注文を表す。
	AggregateTypeOrder AggregateType = "Order"
)

// Type はイベントの種類を表す。
type Type string

const (
	// TypeCategoryCreated はカテゴリが作成されたことを表す。
	TypeCategoryCreated Type = "CategoryCreated"
	// TypeCategoryUpdated はカテゴリが更新されたことを表す。
	TypeCategoryUpdated Type = "CategoryUpdated"
	// TypeCategoryDeleted はカテゴリが削除されたことを表す。
	TypeCategoryDeleted Type = "CategoryDeleted"

	// TypeProductCreated は商品が作成されたことを表す。
	TypeProductCreated Type = "ProductCreated"
	// TypeProductUpdated は商品が更新されたことを表す。
	TypeProductUpdated Type = "ProductUpdated"
	// TypeProductDeleted は商品が削除されたことを表す。
	TypeProductDeleted Type = "ProductDeleted"

	// TypeOrderCreated は注文が作成されたことを表す。
	TypeOrderCreated Type = "OrderCreated"
	// TypeOrderUpdated は注文が更新されたことを表す。金額は再計算済み。
	TypeOrderUpdated Type = "OrderUpdated"
	// TypeOrderDeleted は注文が削除されたことを表す。
	TypeOrderDeleted Type = "OrderDeleted"
)

// Valid はカタログが扱うエンティティの種類かどうかを返す。
func (a AggregateType) Valid() bool {
	switch a {
	case AggregateTypeCategory, AggregateTypeProduct, AggregateTypeOrder:
		return true
	}
	return false
}

// Valid は定義済みのイベント種別かどうかを返す。
func (t Type) Valid() bool {
	_, ok := aggregateOf[t]
	return ok
}

// Event はカタログの状態変更を外部へ通知するためのイベントレコード。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// AggregateID は対象エンティティの識別子。
	AggregateID string `json:"aggregate_id"`
	// AggregateType は対象エンティティの種類。
	AggregateType AggregateType `json:"aggregate_type"`
	// EventType はイベントの種類。
	EventType Type `json:"event_type"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// CategoryData はカテゴリ系イベントのデータ。
type CategoryData struct {
	// Name はカテゴリ名。
	Name string `json:"name"`
}

// ProductData は商品系イベントのデータ。
type ProductData struct {
	// Name は商品名。
	Name string `json:"name"`
	// CategoryID は所属カテゴリのID。
	CategoryID string `json:"category_id"`
	// PriceCents は価格（最小通貨単位）。
	PriceCents int64 `json:"price_cents"`
}

// OrderData は注文系イベントのデータ。
type OrderData struct {
	// CustomerName は注文者名。
	CustomerName string `json:"customer_name"`
	// ProductID は注文された商品のID。
	ProductID string `json:"product_id"`
	// Quantity は数量。
	Quantity int64 `json:"quantity"`
	// CostCents は注文金額（最小通貨単位）。
	CostCents int64 `json:"cost_cents"`
}

// DeletedData は削除系イベントのデータ。
type DeletedData struct {
	// DeletedBy は削除を実行したユーザー名。
	DeletedBy string `json:"deleted_by"`
	// CascadedFrom は親の削除に伴って削除された場合の親のID。
	CascadedFrom string `json:"cascaded_from,omitempty"`
}
