// Package remote は外部リソース取得の具象実装を提供します。
// HTTP フェッチャーと GCS リーダーはそれぞれ httpkit / remoteio の
// インターフェースを満たし、生成系の参照肖像取得に差し込まれます。
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFetchBytes は 1 回の取得で受け入れる最大バイト数です。
// 参照肖像を想定しているため、これを超えるボディは切り詰めずエラーにします。
const maxFetchBytes = 32 << 20

// HTTPFetcher は net/http ベースの単純なバイト列フェッチャーです。
// httpkit.ClientInterface を満たします。
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher はタイムアウト付きのフェッチャーを生成するのだ。
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchBytes は URL の内容を読み切って返します。2xx 以外はエラーです。
func (f *HTTPFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの構築に失敗しました: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("取得先が異常応答を返しました: %s (%d)", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("ボディの読み取りに失敗しました: %w", err)
	}
	if len(data) > maxFetchBytes {
		return nil, fmt.Errorf("取得サイズが上限を超えています: %s", url)
	}

	return data, nil
}
