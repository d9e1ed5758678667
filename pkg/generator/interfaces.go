package generator

import (
	"context"
	"time"

	"github.com/shouni/npc-forge-kit/pkg/domain"
)

// AssetManager は Gemini File API とのやり取りを担当します。
// 繰り返し参照される肖像を File API 側に留め置くために使います。
// 留め置いたファイルの後始末は自動では行われず、不要になった時点で
// DeleteFile を呼ぶのは利用側の責務です。
type AssetManager interface {
	UploadFile(ctx context.Context, fileURI string) (string, error)
	DeleteFile(ctx context.Context, fileURI string) error
}

// SheetScribe は概念プロンプトからキャラクターシートを書き起こす統合窓口です。
type SheetScribe interface {
	ComposeSheet(ctx context.Context, prompt string) (domain.CharacterSheet, error)
}

// PortraitGenerator は肖像画生成の統合窓口です。
// 画像が得られなかった場合はエラーではなく Empty なレスポンスを返します。
type PortraitGenerator interface {
	GeneratePortrait(ctx context.Context, req domain.PortraitRequest) (*domain.PortraitResponse, error)
}

// ImageCacher は、参照画像と File API URI をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// HTTPClient は、HTTPリクエストを実行し、URLからデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
