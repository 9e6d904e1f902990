package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalid はイベントの内容が不正であることを表す。
var ErrInvalid = errors.New("不正なイベント")

// aggregateOf はイベント種別ごとの対象エンティティ。
var aggregateOf = map[Type]AggregateType{
	TypeCategoryCreated: AggregateTypeCategory,
	TypeCategoryUpdated: AggregateTypeCategory,
	TypeCategoryDeleted: AggregateTypeCategory,
	TypeProductCreated:  AggregateTypeProduct,
	TypeProductUpdated:  AggregateTypeProduct,
	TypeProductDeleted:  AggregateTypeProduct,
	TypeOrderCreated:    AggregateTypeOrder,
	TypeOrderUpdated:    AggregateTypeOrder,
	TypeOrderDeleted:    AggregateTypeOrder,
}

// New はaggregateIDのエンティティに対するイベントを生成する。
// dataはJSONにシリアライズしてDataに格納する。IDはUUID、作成日時はUTCの現在時刻。
func New(aggregateID string, aggregateType AggregateType, eventType Type, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("イベントデータのシリアライズに失敗: %w", err)
	}

	e := &Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          raw,
		CreatedAt:     time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate はイベントの必須項目と種別の組み合わせを検証する。
// IDと作成日時は受信側で補えるため検証しない。
func (e *Event) Validate() error {
	if strings.TrimSpace(e.AggregateID) == "" {
		return fmt.Errorf("%w: aggregate_idが空", ErrInvalid)
	}
	if !e.AggregateType.Valid() {
		return fmt.Errorf("%w: 未知のaggregate_type %q", ErrInvalid, e.AggregateType)
	}
	want, ok := aggregateOf[e.EventType]
	if !ok {
		return fmt.Errorf("%w: 未知のevent_type %q", ErrInvalid, e.EventType)
	}
	if want != e.AggregateType {
		return fmt.Errorf("%w: %sは%sのイベントではない", ErrInvalid, e.EventType, e.AggregateType)
	}
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return fmt.Errorf("%w: dataが空", ErrInvalid)
	}
	if !json.Valid(e.Data) {
		return fmt.Errorf("%w: dataがJSONではない", ErrInvalid)
	}
	return nil
}

// Decode はJSONのイベントを読み込んで検証する。
func Decode(raw []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// DecodeData はイベントのDataをT型として読み出す。
func DecodeData[T any](e *Event) (*T, error) {
	var data T
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("イベントデータのデシリアライズに失敗: %w", err)
	}
	return &data, nil
}
