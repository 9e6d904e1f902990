package catalog

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
	"github.com/Aravinthpromon/ORM-tasks/pkg/httpclient"
	"github.com/Aravinthpromon/ORM-tasks/pkg/middleware"
)

// emitEvent は状態変更イベントを送信する。
// 送信に失敗してもAPIのレスポンスは変えず、ログに残すだけにする。
func (s *Server) emitEvent(c *gin.Context, aggregateType event.AggregateType, aggregateID string, eventType event.Type, data any) {
	ev, err := event.New(aggregateID, aggregateType, eventType, data)
	if err != nil {
		log.Printf("[Event] イベントの生成に失敗: type=%s, id=%s: %v", eventType, aggregateID, err)
		return
	}

	ctx := httpclient.WithActor(c.Request.Context(), middleware.GetUsername(c))
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("[Event] イベントの送信に失敗: type=%s, id=%s: %v", eventType, aggregateID, err)
	}
}
