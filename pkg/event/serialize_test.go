package event

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("ProductDataでイベントを生成できること", func(t *testing.T) {
		t.Parallel()

		data := ProductData{Name: "Laptop", CategoryID: "cat-1", PriceCents: 69999}

		before := time.Now().UTC()
		ev, err := New("prod-1", AggregateTypeProduct, TypeProductCreated, data)
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("New()でエラーが発生: %v", err)
		}

		if ev.ID == "" {
			t.Error("IDが空文字列")
		}
		if ev.AggregateID != "prod-1" {
			t.Errorf("AggregateID = %q, want %q", ev.AggregateID, "prod-1")
		}
		if ev.AggregateType != AggregateTypeProduct {
			t.Errorf("AggregateType = %q, want %q", ev.AggregateType, AggregateTypeProduct)
		}
		if ev.EventType != TypeProductCreated {
			t.Errorf("EventType = %q, want %q", ev.EventType, TypeProductCreated)
		}
		if ev.CreatedAt.Before(before) || ev.CreatedAt.After(after) {
			t.Errorf("CreatedAt = %v, 期待する範囲: [%v, %v]", ev.CreatedAt, before, after)
		}
		if string(ev.Data) != `{"name":"Laptop","category_id":"cat-1","price_cents":69999}` {
			t.Errorf("Data = %s", ev.Data)
		}
	})

	t.Run("連続して生成したイベントのIDが異なること", func(t *testing.T) {
		t.Parallel()

		ev1, err := New("order-1", AggregateTypeOrder, TypeOrderDeleted, DeletedData{DeletedBy: "admin"})
		if err != nil {
			t.Fatalf("1回目のNew()でエラーが発生: %v", err)
		}
		ev2, err := New("order-1", AggregateTypeOrder, TypeOrderDeleted, DeletedData{DeletedBy: "admin"})
		if err != nil {
			t.Fatalf("2回目のNew()でエラーが発生: %v", err)
		}
		if ev1.ID == ev2.ID {
			t.Errorf("異なるイベントが同じIDを持っている: %q", ev1.ID)
		}
	})

	t.Run("対象エンティティと種別が食い違うとErrInvalidになること", func(t *testing.T) {
		t.Parallel()

		_, err := New("cat-1", AggregateTypeCategory, TypeProductCreated, ProductData{Name: "Laptop"})
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("err = %v, want ErrInvalid", err)
		}
	})

	t.Run("シリアライズ不可能なデータでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ev, err := New("cat-1", AggregateTypeCategory, TypeCategoryCreated, make(chan int))
		if err == nil {
			t.Fatal("New()がエラーを返すべきだが、nilが返った")
		}
		if ev != nil {
			t.Error("エラー時にnilでないEventが返った")
		}
	})
}

func TestDecodeData(t *testing.T) {
	t.Parallel()

	t.Run("OrderDataを往復できること", func(t *testing.T) {
		t.Parallel()

		original := OrderData{CustomerName: "Kumar", ProductID: "prod-1", Quantity: 3, CostCents: 2997}
		ev, err := New("order-1", AggregateTypeOrder, TypeOrderUpdated, original)
		if err != nil {
			t.Fatalf("New()でエラーが発生: %v", err)
		}

		got, err := DecodeData[OrderData](ev)
		if err != nil {
			t.Fatalf("DecodeData()でエラーが発生: %v", err)
		}
		if *got != original {
			t.Errorf("DecodeData() = %+v, want %+v", *got, original)
		}
	})

	t.Run("不正なJSONでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ev := &Event{Data: []byte("{invalid")}
		if _, err := DecodeData[CategoryData](ev); err == nil {
			t.Fatal("DecodeData()がエラーを返すべきだが、nilが返った")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Event {
		return Event{
			ID:            "ev-1",
			AggregateID:   "order-1",
			AggregateType: AggregateTypeOrder,
			EventType:     TypeOrderCreated,
			Data:          []byte(`{"quantity":1}`),
		}
	}

	tests := []struct {
		name   string
		modify func(e *Event)
	}{
		{name: "aggregate_idが空白", modify: func(e *Event) { e.AggregateID = "  " }},
		{name: "未知のaggregate_type", modify: func(e *Event) { e.AggregateType = "Media" }},
		{name: "未知のevent_type", modify: func(e *Event) { e.EventType = "MediaUploaded" }},
		{name: "種別の組み合わせが不一致", modify: func(e *Event) { e.EventType = TypeCategoryDeleted }},
		{name: "dataが空", modify: func(e *Event) { e.Data = nil }},
		{name: "dataがnull", modify: func(e *Event) { e.Data = []byte("null") }},
		{name: "dataがJSONではない", modify: func(e *Event) { e.Data = []byte("{broken") }},
	}

	for _, tt := range tests {
		t.Run(tt.name+"ならErrInvalidになること", func(t *testing.T) {
			t.Parallel()

			e := valid()
			tt.modify(&e)
			if err := e.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	t.Run("IDと作成日時が無くても妥当であること", func(t *testing.T) {
		t.Parallel()

		e := valid()
		e.ID = ""
		if err := e.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("JSONからイベントを読み込めること", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{"id":"ev-1","aggregate_id":"prod-1","aggregate_type":"Product","event_type":"ProductDeleted","data":{"deleted_by":"admin"},"created_at":"2024-05-01T12:00:00Z"}`)
		e, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode()でエラーが発生: %v", err)
		}
		if e.ID != "ev-1" || e.EventType != TypeProductDeleted {
			t.Errorf("Decode() = %+v", e)
		}
		data, err := DecodeData[DeletedData](e)
		if err != nil {
			t.Fatalf("DecodeData()でエラーが発生: %v", err)
		}
		if data.DeletedBy != "admin" {
			t.Errorf("DeletedBy = %q, want admin", data.DeletedBy)
		}
	})

	t.Run("JSONでなければErrInvalidになること", func(t *testing.T) {
		t.Parallel()

		if _, err := Decode([]byte("not json")); !errors.Is(err, ErrInvalid) {
			t.Errorf("Decode() = %v, want ErrInvalid", err)
		}
	})

	t.Run("検証に失敗するとErrInvalidになること", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{"aggregate_id":"prod-1","aggregate_type":"Product","event_type":"ProductDeleted"}`)
		if _, err := Decode(raw); !errors.Is(err, ErrInvalid) {
			t.Errorf("Decode() = %v, want ErrInvalid", err)
		}
	})
}
