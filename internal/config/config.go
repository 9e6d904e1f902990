// Package config はカタログサービスの設定を読み込む。
//
// 値の優先順位は 環境変数 > TOMLファイル > 既定値。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Aravinthpromon/ORM-tasks/pkg/basicauth"
)

// 既定値。
const (
	DefaultPort           = "8080"
	DefaultDatabasePath   = "/data/catalog.db"
	DefaultAuthUsername   = "admin"
	DefaultAuthPassword   = "123"
	DefaultJWTSecret      = "dev-secret-key"
	DefaultFrontendURL    = "http://localhost:3000"
	DefaultExportS3Key    = "catalog/export.jsonl"
	DefaultExportS3Region = "us-east-1"

	DefaultEventStorePort         = "8084"
	DefaultEventStoreDatabasePath = "/data/eventstore.db"
)

// Config はカタログサービスの設定値。
// 起動時に一度だけ読み込み、以後は変更しない。
type Config struct {
	Port         string `toml:"port"`          // PORT
	DatabasePath string `toml:"database_path"` // DATABASE_PATH
	AuthUsername string `toml:"auth_username"` // AUTH_USERNAME
	AuthPassword string `toml:"auth_password"` // AUTH_PASSWORD
	JWTSecret    string `toml:"jwt_secret"`    // JWT_SECRET
	FrontendURL  string `toml:"frontend_url"`  // FRONTEND_URL（カンマ区切りで複数指定可）

	NATSURL       string `toml:"nats_url"`       // NATS_URL（空ならNATSへ送信しない）
	EventStoreURL string `toml:"eventstore_url"` // EVENTSTORE_URL（空ならHTTPで送信しない）

	EventStorePort         string `toml:"eventstore_port"`          // EVENTSTORE_PORT
	EventStoreDatabasePath string `toml:"eventstore_database_path"` // EVENTSTORE_DATABASE_PATH

	ExportS3Bucket   string `toml:"export_s3_bucket"`   // EXPORT_S3_BUCKET（設定時のみS3へ出力）
	ExportS3Key      string `toml:"export_s3_key"`      // EXPORT_S3_KEY
	ExportS3Region   string `toml:"export_s3_region"`   // EXPORT_S3_REGION
	ExportS3Endpoint string `toml:"export_s3_endpoint"` // EXPORT_S3_ENDPOINT（MinIOなど）
}

// Default は既定値だけで構成した設定を返す。
func Default() *Config {
	return &Config{
		Port:           DefaultPort,
		DatabasePath:   DefaultDatabasePath,
		AuthUsername:   DefaultAuthUsername,
		AuthPassword:   DefaultAuthPassword,
		JWTSecret:      DefaultJWTSecret,
		FrontendURL:    DefaultFrontendURL,
		ExportS3Key:    DefaultExportS3Key,
		ExportS3Region: DefaultExportS3Region,

		EventStorePort:         DefaultEventStorePort,
		EventStoreDatabasePath: DefaultEventStoreDatabasePath,
	}
}

// Load は設定を読み込む。
// pathが空でなければTOMLファイルを読み、その後に環境変数で上書きする。
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("設定ファイルが見つからない: %s: %w", path, err)
			}
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %s: %w", path, err)
		}
	}

	c.Port = envOr("PORT", c.Port)
	c.DatabasePath = envOr("DATABASE_PATH", c.DatabasePath)
	c.AuthUsername = envOr("AUTH_USERNAME", c.AuthUsername)
	c.AuthPassword = envOr("AUTH_PASSWORD", c.AuthPassword)
	c.JWTSecret = envOr("JWT_SECRET", c.JWTSecret)
	c.FrontendURL = envOr("FRONTEND_URL", c.FrontendURL)
	c.NATSURL = envOr("NATS_URL", c.NATSURL)
	c.EventStoreURL = envOr("EVENTSTORE_URL", c.EventStoreURL)
	c.EventStorePort = envOr("EVENTSTORE_PORT", c.EventStorePort)
	c.EventStoreDatabasePath = envOr("EVENTSTORE_DATABASE_PATH", c.EventStoreDatabasePath)
	c.ExportS3Bucket = envOr("EXPORT_S3_BUCKET", c.ExportS3Bucket)
	c.ExportS3Key = envOr("EXPORT_S3_KEY", c.ExportS3Key)
	c.ExportS3Region = envOr("EXPORT_S3_REGION", c.ExportS3Region)
	c.ExportS3Endpoint = envOr("EXPORT_S3_ENDPOINT", c.ExportS3Endpoint)

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Credentials はBasic認証で照合する資格情報を返す。
func (c *Config) Credentials() basicauth.Credentials {
	return basicauth.NewCredentials(c.AuthUsername, c.AuthPassword)
}

// AllowedOrigins はCORSで許可するオリジンの一覧を返す。
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Addr はHTTPサーバーの待ち受けアドレスを返す。
func (c *Config) Addr() string {
	return ":" + c.Port
}

// EventStoreAddr はイベントストアの待ち受けアドレスを返す。
func (c *Config) EventStoreAddr() string {
	return ":" + c.EventStorePort
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("PORTが空")
	}
	if c.DatabasePath == "" {
		return errors.New("DATABASE_PATHが空")
	}
	if c.AuthUsername == "" {
		return errors.New("AUTH_USERNAMEが空")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
