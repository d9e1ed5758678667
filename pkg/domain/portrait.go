package domain

// PortraitRequest は単一の肖像画生成要求です。
type PortraitRequest struct {
	Prompt       string
	AspectRatio  string
	ReferenceURL string // 既存肖像の面影を引き継ぐための参照画像 URL（任意）
	Seed         *int64 // nil でランダム、値指定で固定
}

// PortraitResponse は生成された肖像データとそのメタデータです。
type PortraitResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}

// Empty は画像モデルが有効なバイナリを返さなかったことを示します。
// 通信エラーとは区別され、呼び出し側で明示的に確認する必要があります。
func (r *PortraitResponse) Empty() bool {
	return r == nil || len(r.Data) == 0
}
