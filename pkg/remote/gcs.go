package remote

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSReader は gs:// URI を解決する remoteio.InputReader 実装です。
type GCSReader struct {
	client *storage.Client
}

// NewGCSReader はアプリケーションデフォルト認証で GCS リーダーを生成します。
func NewGCSReader(ctx context.Context) (*GCSReader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSクライアントの初期化に失敗しました: %w", err)
	}
	return &GCSReader{client: client}, nil
}

// UnavailableReader は、初期化に失敗した GCS リーダーの代役です。
// すべての操作が初期化時のエラーを返すため、gs:// 参照だけが失敗し、
// 他の工程は通常どおり動作します。
type UnavailableReader struct {
	Err error
}

// Open は常に初期化エラーを返します。
func (r UnavailableReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("GCSリーダーが利用できません (%s): %w", uri, r.Err)
}

// List は常に初期化エラーを返します。
func (r UnavailableReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return fmt.Errorf("GCSリーダーが利用できません (%s): %w", uri, r.Err)
}

// Open は gs://bucket/object の内容を読むリーダーを返します。
func (r *GCSReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, object, err := splitGCSURI(uri)
	if err != nil {
		return nil, err
	}
	if object == "" {
		return nil, fmt.Errorf("オブジェクトパスがありません: %s", uri)
	}

	rc, err := r.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSオブジェクトを開けませんでした (%s): %w", uri, err)
	}
	return rc, nil
}

// List は gs://bucket/prefix 配下のオブジェクト URI を fn に渡します。
// fn がエラーを返した時点で列挙を打ち切ります。
func (r *GCSReader) List(ctx context.Context, uri string, fn func(string) error) error {
	bucket, prefix, err := splitGCSURI(uri)
	if err != nil {
		return err
	}

	it := r.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("GCSオブジェクトの列挙に失敗しました (%s): %w", uri, err)
		}
		if err := fn(fmt.Sprintf("gs://%s/%s", bucket, attrs.Name)); err != nil {
			return err
		}
	}
}

// splitGCSURI は gs://bucket/path を (bucket, path) に分解します。
func splitGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("gs:// 形式ではありません: %s", uri)
	}

	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("バケット名がありません: %s", uri)
	}
	return bucket, object, nil
}
