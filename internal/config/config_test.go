package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

var allEnvVars = []string{
	"PORT", "DATABASE_PATH", "AUTH_USERNAME", "AUTH_PASSWORD", "JWT_SECRET", "FRONTEND_URL",
	"NATS_URL", "EVENTSTORE_URL", "EVENTSTORE_PORT", "EVENTSTORE_DATABASE_PATH",
	"EXPORT_S3_BUCKET", "EXPORT_S3_KEY", "EXPORT_S3_REGION", "EXPORT_S3_ENDPOINT",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("設定ファイルの作成に失敗: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("何も指定しなければ既定値になること", func(t *testing.T) {
		clearAllEnv(t)

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if *cfg != *Default() {
			t.Errorf("Load() = %+v, want %+v", *cfg, *Default())
		}
		if cfg.AuthUsername != "admin" || cfg.AuthPassword != "123" {
			t.Errorf("資格情報の既定値 = %q/%q, want admin/123", cfg.AuthUsername, cfg.AuthPassword)
		}
	})

	t.Run("環境変数で上書きできること", func(t *testing.T) {
		clearAllEnv(t)
		t.Setenv("PORT", "9000")
		t.Setenv("AUTH_USERNAME", "alice")
		t.Setenv("AUTH_PASSWORD", "s3cret")
		t.Setenv("NATS_URL", "nats://nats:4222")
		t.Setenv("EXPORT_S3_BUCKET", "backups")
		t.Setenv("EVENTSTORE_PORT", "9084")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if cfg.Port != "9000" {
			t.Errorf("Port = %q, want %q", cfg.Port, "9000")
		}
		if cfg.AuthUsername != "alice" || cfg.AuthPassword != "s3cret" {
			t.Errorf("資格情報 = %q/%q, want alice/s3cret", cfg.AuthUsername, cfg.AuthPassword)
		}
		if cfg.NATSURL != "nats://nats:4222" {
			t.Errorf("NATSURL = %q", cfg.NATSURL)
		}
		if cfg.ExportS3Bucket != "backups" {
			t.Errorf("ExportS3Bucket = %q", cfg.ExportS3Bucket)
		}
		if cfg.ExportS3Region != DefaultExportS3Region {
			t.Errorf("ExportS3Region = %q, want %q", cfg.ExportS3Region, DefaultExportS3Region)
		}
		if cfg.EventStoreAddr() != ":9084" {
			t.Errorf("EventStoreAddr() = %q, want %q", cfg.EventStoreAddr(), ":9084")
		}
		if cfg.EventStoreDatabasePath != DefaultEventStoreDatabasePath {
			t.Errorf("EventStoreDatabasePath = %q", cfg.EventStoreDatabasePath)
		}
	})

	t.Run("TOMLファイルの値が既定値より優先されること", func(t *testing.T) {
		clearAllEnv(t)
		path := writeTOML(t, `
port = "7070"
database_path = "/tmp/catalog.db"
auth_username = "toml-user"
eventstore_url = "http://eventstore:8084"
`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if cfg.Port != "7070" {
			t.Errorf("Port = %q, want %q", cfg.Port, "7070")
		}
		if cfg.DatabasePath != "/tmp/catalog.db" {
			t.Errorf("DatabasePath = %q", cfg.DatabasePath)
		}
		if cfg.AuthUsername != "toml-user" {
			t.Errorf("AuthUsername = %q", cfg.AuthUsername)
		}
		if cfg.AuthPassword != DefaultAuthPassword {
			t.Errorf("AuthPassword = %q, want 既定値", cfg.AuthPassword)
		}
		if cfg.EventStoreURL != "http://eventstore:8084" {
			t.Errorf("EventStoreURL = %q", cfg.EventStoreURL)
		}
	})

	t.Run("環境変数がTOMLファイルより優先されること", func(t *testing.T) {
		clearAllEnv(t)
		t.Setenv("AUTH_USERNAME", "env-user")
		path := writeTOML(t, `auth_username = "toml-user"`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if cfg.AuthUsername != "env-user" {
			t.Errorf("AuthUsername = %q, want %q", cfg.AuthUsername, "env-user")
		}
	})

	t.Run("存在しないファイルでエラーが返ること", func(t *testing.T) {
		clearAllEnv(t)

		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("fs.ErrNotExistが返るべき: got %v", err)
		}
	})

	t.Run("不正なTOMLでエラーが返ること", func(t *testing.T) {
		clearAllEnv(t)
		path := writeTOML(t, `port = `)

		if _, err := Load(path); err == nil {
			t.Fatal("エラーが返るべきだが、nilが返った")
		}
	})

	t.Run("ユーザー名が空になるとエラーが返ること", func(t *testing.T) {
		clearAllEnv(t)
		path := writeTOML(t, `auth_username = ""`)

		if _, err := Load(path); err == nil {
			t.Fatal("エラーが返るべきだが、nilが返った")
		}
	})
}

func TestConfigCredentials(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.AuthUsername = "alice"
	cfg.AuthPassword = "s3cret"

	creds := cfg.Credentials()
	if creds.Username() != "alice" {
		t.Errorf("Username() = %q, want %q", creds.Username(), "alice")
	}
	if !creds.Match("alice", "s3cret") {
		t.Error("設定した資格情報に一致しない")
	}
	if creds.Match("admin", "123") {
		t.Error("既定の資格情報に一致してはならない")
	}
}

func TestConfigAllowedOrigins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		frontendURL string
		want        []string
	}{
		{name: "単一のオリジン", frontendURL: "http://localhost:3000", want: []string{"http://localhost:3000"}},
		{name: "カンマ区切りの複数オリジン", frontendURL: "http://a.example, http://b.example", want: []string{"http://a.example", "http://b.example"}},
		{name: "空要素は無視される", frontendURL: "http://a.example,,", want: []string{"http://a.example"}},
		{name: "空文字列", frontendURL: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{FrontendURL: tt.frontendURL}
			if got := cfg.AllowedOrigins(); !slices.Equal(got, tt.want) {
				t.Errorf("AllowedOrigins() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigAddr(t *testing.T) {
	t.Parallel()

	if got := (&Config{Port: "8080"}).Addr(); got != ":8080" {
		t.Errorf("Addr() = %q, want %q", got, ":8080")
	}
}
