package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aravinthpromon/ORM-tasks/internal/eventstore"
	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
)

var eventstoreCmd = &cobra.Command{
	Use:   "eventstore",
	Short: "カタログのイベントを記録するイベントストアを起動する",
	Long: "HTTP（POST /api/v1/events）でイベントを受け付ける。\n" +
		"NATS_URL が設定されていれば catalog.events.> も購読して記録する。",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		server, err := eventstore.NewServer(cfg)
		if err != nil {
			return fmt.Errorf("イベントストアの初期化に失敗: %w", err)
		}
		defer func() {
			if err := server.Close(); err != nil {
				log.Printf("[EventStore] 終了処理に失敗: %v", err)
			}
		}()

		if cfg.NATSURL != "" {
			sub, err := event.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				return err
			}
			defer sub.Close()
			unsubscribe, err := sub.Subscribe(server.HandleEvent)
			if err != nil {
				return err
			}
			defer unsubscribe()
			log.Printf("[EventStore] NATSを購読します: %s", cfg.NATSURL)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx)
	},
}
