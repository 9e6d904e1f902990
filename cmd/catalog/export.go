package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog"
	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/db"
	"github.com/Aravinthpromon/ORM-tasks/internal/config"
	"github.com/Aravinthpromon/ORM-tasks/internal/export"
)

// exportOut は --out で指定された出力先ファイル。
var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "カタログをJSONLで書き出す",
	Long: "カタログ全体をJSONLで書き出す。\n" +
		"--out を指定するとファイルへ、EXPORT_S3_BUCKET が設定されていればS3へ書き出す。",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dest, where, err := newDestination(cmd, cfg)
		if err != nil {
			return err
		}

		sqlDB, err := catalog.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		n, err := export.Run(cmd.Context(), db.New(sqlDB), dest)
		if err != nil {
			return fmt.Errorf("エクスポートに失敗: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d bytes to %s\n", n, where)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "出力先ファイルのパス")
}

// newDestination は --out を優先し、無ければS3を出力先にする。
func newDestination(cmd *cobra.Command, cfg *config.Config) (export.Destination, string, error) {
	if exportOut != "" {
		return export.NewFileDestination(exportOut), exportOut, nil
	}
	if cfg.ExportS3Bucket == "" {
		return nil, "", fmt.Errorf("--out か EXPORT_S3_BUCKET のどちらかを指定してください")
	}
	dest, err := export.NewS3Destination(cmd.Context(), cfg.ExportS3Bucket, cfg.ExportS3Key, cfg.ExportS3Region, cfg.ExportS3Endpoint)
	if err != nil {
		return nil, "", err
	}
	return dest, fmt.Sprintf("s3://%s/%s", cfg.ExportS3Bucket, cfg.ExportS3Key), nil
}
