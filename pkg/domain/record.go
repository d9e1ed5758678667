package domain

import (
	"fmt"
	"strings"
	"time"
)

// 画像生成や保存が失敗した場合に Image_URL へ代入する定置プレースホルダーです。
// 書庫側はこの URL を「画像なし」として扱います。
const (
	// PlaceholderNoImage は画像モデルが何も返さなかった場合の URL です。
	PlaceholderNoImage = "https://via.placeholder.com/500?text=Manifestation+Failed"
	// PlaceholderUploaderMissing はアップロード先が未設定の場合の URL です。
	PlaceholderUploaderMissing = "https://via.placeholder.com/500?text=Cloudinary+Missing"
	// PlaceholderImageError は生成またはアップロードがエラーで終わった場合の URL です。
	PlaceholderImageError = "https://via.placeholder.com/500?text=Error"
	// PlaceholderNoVisage は書庫表示用の「肖像なし」URL です。
	PlaceholderNoVisage = "https://via.placeholder.com/400x500?text=No+Visage"
)

// CharacterSheet は書記（テキスト生成）が返す 5 フィールドの構造体です。
// JSON キーはモデルへの指示と一致している必要があります。
type CharacterSheet struct {
	Name       string `json:"Name"`
	Class      string `json:"Class"`
	VisualDesc string `json:"Visual_Desc"`
	Lore       string `json:"Lore"`
	Greeting   string `json:"Greeting"`
}

// Validate は 5 フィールドすべてが非空であることを確認します。
// 欠落フィールドの黙示的な補完は行わず、明示的なエラーで閉じます。
func (s CharacterSheet) Validate() error {
	missing := make([]string, 0, 5)
	for _, f := range []struct {
		key, val string
	}{
		{"Name", s.Name},
		{"Class", s.Class},
		{"Visual_Desc", s.VisualDesc},
		{"Lore", s.Lore},
		{"Greeting", s.Greeting},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("シートに必須フィールドがありません: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CharacterRecord は保管庫に永続化される 1 レコードです。
// テキスト 5 フィールドは生成成功後に不変、タグ 2 フィールドのみ作成後に編集可能です。
type CharacterRecord struct {
	Name       string    `json:"name"`
	Class      string    `json:"class"`
	Lore       string    `json:"lore"`
	Greeting   string    `json:"greeting"`
	VisualDesc string    `json:"visual_desc"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	Campaign   string    `json:"campaign,omitempty"`
	Faction    string    `json:"faction,omitempty"`
}

// NewRecord はシートと画像 URL から未保存のレコードを組み立てます。
// タイムスタンプは永続化時に Store 側で刻印されるため、ここでは設定しません。
func NewRecord(sheet CharacterSheet, imageURL string) CharacterRecord {
	return CharacterRecord{
		Name:       sheet.Name,
		Class:      sheet.Class,
		Lore:       sheet.Lore,
		Greeting:   sheet.Greeting,
		VisualDesc: sheet.VisualDesc,
		ImageURL:   imageURL,
	}
}

// HasPortrait は ImageURL が実在の肖像（プレースホルダー以外の http URL）かどうかを返します。
func (r CharacterRecord) HasPortrait() bool {
	return strings.HasPrefix(r.ImageURL, "http") && !IsPlaceholderURL(r.ImageURL)
}

// IsPlaceholderURL は URL が定置プレースホルダーかどうかを判定します。
func IsPlaceholderURL(url string) bool {
	return strings.HasPrefix(url, "https://via.placeholder.com/")
}

// DisplayImageURL は書庫表示に使う URL を返します。
// http で始まらない値（空欄や破損セル）は「肖像なし」に置き換えます。
func (r CharacterRecord) DisplayImageURL() string {
	if !strings.HasPrefix(r.ImageURL, "http") {
		return PlaceholderNoVisage
	}
	return r.ImageURL
}
