// カタログサービスのエントリポイント。
// Basic認証で保護されたカテゴリ・商品・注文のCRUD APIを提供する。
// serve / migrate / export / eventstore / history の各サブコマンドを持つ。
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aravinthpromon/ORM-tasks/internal/config"
)

// configPath は --config で指定されたTOMLファイルのパス。
var configPath string

var rootCmd = &cobra.Command{
	Use:           "catalog <command>",
	Short:         "Basic認証付きの商品カタログサービス",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CATALOG_CONFIG"), "TOML設定ファイルのパス")
	rootCmd.AddCommand(serveCmd, migrateCmd, exportCmd, eventstoreCmd, historyCmd)
}

// loadConfig は --config と環境変数から設定を読み込む。
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[Catalog] %v", err)
	}
}
