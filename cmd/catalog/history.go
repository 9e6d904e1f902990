package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Aravinthpromon/ORM-tasks/pkg/httpclient"
)

// historyEntry はイベントストアが返すイベント。
type historyEntry struct {
	EventType string          `json:"event_type"`
	Version   int64           `json:"version"`
	Actor     string          `json:"actor"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
}

var historyCmd = &cobra.Command{
	Use:   "history <aggregate-id>",
	Short: "エンティティの変更履歴をイベントストアから表示する",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.EventStoreURL == "" {
			return fmt.Errorf("EVENTSTORE_URL を指定してください")
		}

		var entries []historyEntry
		client := httpclient.New(cfg.EventStoreURL)
		path := "/api/v1/events/aggregate/" + url.PathEscape(args[0])
		if err := client.GetJSON(cmd.Context(), path, &entries); err != nil {
			return fmt.Errorf("履歴の取得に失敗: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintf(out, "%s の履歴はありません\n", args[0])
			return nil
		}
		for _, e := range entries {
			actor := e.Actor
			if actor == "" {
				actor = "-"
			}
			fmt.Fprintf(out, "v%d\t%s\t%s\t%s\t%s\n", e.Version, e.CreatedAt, e.EventType, actor, e.Data)
		}
		return nil
	},
}
