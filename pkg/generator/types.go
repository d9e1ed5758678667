package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

const (
	UseImageCompression     = true
	ImageCompressionQuality = 75

	// inlineReferenceLimit を超える参照画像はインライン添付ではなく
	// File API 経由で渡します（リクエスト肥大化の回避）。
	inlineReferenceLimit = 1 << 20

	cacheKeyFileAPIURI  = "fileapi_uri:"
	cacheKeyFileAPIName = "fileapi_name:"
)

// ImageOutput は core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}

// portraitCore は肖像生成のコアロジック（参照画像準備とレスポンス解析）です。
type portraitCore interface {
	prepareReferencePart(ctx context.Context, rawURL string) *genai.Part
	toPart(data []byte) *genai.Part
	parseToResponse(resp *gemini.Response, seed int64) (*ImageOutput, error)
}
