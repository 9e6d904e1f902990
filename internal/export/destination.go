package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Aravinthpromon/ORM-tasks/internal/catalog/db"
)

// contentType はJSONLのMIMEタイプ。
const contentType = "application/x-ndjson"

// Destination はエクスポート結果の書き出し先。
type Destination interface {
	// Write はJSONLのペイロードを書き出す。
	Write(ctx context.Context, data []byte) error
}

// Run はカタログをJSONLにして dest に書き出し、書き出したバイト数を返す。
func Run(ctx context.Context, q *db.Queries, dest Destination) (int, error) {
	var buf bytes.Buffer
	if err := ExportJSONL(ctx, q, &buf); err != nil {
		return 0, err
	}
	if err := dest.Write(ctx, buf.Bytes()); err != nil {
		return 0, err
	}
	log.Printf("[Export] スナップショットを書き出しました: %d bytes", buf.Len())
	return buf.Len(), nil
}

// FileDestination はローカルファイルに書き出す。
type FileDestination struct {
	path string
}

// NewFileDestination はpathに書き出すDestinationを返す。
func NewFileDestination(path string) *FileDestination {
	return &FileDestination{path: path}
}

// Write は一時ファイルに書いてからリネームする。途中で失敗しても既存のファイルは壊れない。
func (d *FileDestination) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力ディレクトリの作成に失敗: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.jsonl")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("一時ファイルへの書き込みに失敗: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("一時ファイルのクローズに失敗: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("出力ファイルの配置に失敗: %w", err)
	}
	return nil
}

// S3Destination はS3互換のバケットに書き出す。
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination はS3Destinationを生成する。
// endpointが空でなければパス形式のアドレッシングを使う（MinIOなど）。
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("AWS設定の読み込みに失敗: %w", err)
	}

	var opts []func(*s3.Options)
	if endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Destination{
		client: s3.NewFromConfig(cfg, opts...),
		bucket: bucket,
		key:    key,
	}, nil
}

// Write はdataを設定されたオブジェクトキーにアップロードする。
func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3://%s/%s へのアップロードに失敗: %w", d.bucket, d.key, err)
	}
	return nil
}
