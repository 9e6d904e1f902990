package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog"
	"github.com/Aravinthpromon/ORM-tasks/internal/config"
	"github.com/Aravinthpromon/ORM-tasks/pkg/event"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTPサーバーを起動する",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		publisher, err := newPublisher(cfg)
		if err != nil {
			return err
		}

		server, err := catalog.NewServer(cfg, publisher)
		if err != nil {
			publisher.Close()
			return fmt.Errorf("カタログサーバーの初期化に失敗: %w", err)
		}
		defer func() {
			if err := server.Close(); err != nil {
				log.Printf("[Catalog] 終了処理に失敗: %v", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("[Catalog] カタログサービスを起動します: %s (user=%s)", cfg.Addr(), cfg.AuthUsername)
		return server.Run(ctx)
	},
}

// newPublisher は設定に応じてイベントの送信先を選ぶ。
// NATS_URL、EVENTSTORE_URLの順に優先し、どちらも無ければ送信しない。
func newPublisher(cfg *config.Config) (event.Publisher, error) {
	switch {
	case cfg.NATSURL != "":
		p, err := event.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("NATSへの接続に失敗: %w", err)
		}
		log.Printf("[Event] NATSにイベントを送信します: %s", cfg.NATSURL)
		return p, nil
	case cfg.EventStoreURL != "":
		log.Printf("[Event] イベントストアにイベントを送信します: %s", cfg.EventStoreURL)
		return event.NewHTTPPublisher(cfg.EventStoreURL), nil
	default:
		log.Printf("[Event] イベント送信は無効です")
		return event.NoopPublisher{}, nil
	}
}
