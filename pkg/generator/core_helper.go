package generator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shouni/npc-forge-kit/pkg/imgutil"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// prepareReferencePart は参照肖像 URL を genai.Part に変換します。
// File API に留め置き済みなら FileData を、小さな画像はインライン添付を、
// inlineReferenceLimit を超える画像は File API 経由を選びます。
// 失敗時は nil を返し、生成自体はテキストのみで続行できます。
func (c *GeminiPortraitCore) prepareReferencePart(ctx context.Context, rawURL string) *genai.Part {
	// File API キャッシュチェック
	if c.cache != nil {
		if val, ok := c.cache.Get(cacheKeyFileAPIURI + rawURL); ok {
			if uri, ok := val.(string); ok {
				return &genai.Part{FileData: &genai.FileData{FileURI: uri}}
			}
		}
	}

	// 取得と圧縮
	data, err := c.fetchPortraitData(ctx, rawURL)
	if err != nil {
		return nil
	}
	finalData := data
	if UseImageCompression {
		if compressed, err := imgutil.CompressToJPEG(data, ImageCompressionQuality); err == nil {
			finalData = compressed
		}
	}

	// 大きな参照はインラインにせず File API に退避する
	if len(finalData) > inlineReferenceLimit {
		if uri, err := c.UploadFile(ctx, rawURL); err == nil {
			return &genai.Part{FileData: &genai.FileData{FileURI: uri}}
		}
	}

	return c.toPart(finalData)
}

// fetchPortraitData は URL から画像バイト列を取得します。gs:// は reader、それ以外は HTTP 経由です。
func (c *GeminiPortraitCore) fetchPortraitData(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		rc, err := c.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := IsSafeURL(rawURL); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return c.httpClient.FetchBytes(ctx, rawURL)
}

func (c *GeminiPortraitCore) toPart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// parseToResponse は Gemini のレスポンスから画像パーツを抽出します。
// 画像パーツが存在せず、かつ異常終了でもない場合は (nil, nil) を返します。
// 「画像なし」と「エラー」の区別は呼び出し側の劣化判断に必要です。
func (c *GeminiPortraitCore) parseToResponse(resp *gemini.Response, seed int64) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}

	// 現在の仕様では、最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageOutput{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
					UsedSeed: seed,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	// 正常終了だが画像が含まれない＝「画像なし」
	return nil, nil
}
