package vault

import (
	"fmt"
	"time"

	"github.com/shouni/npc-forge-kit/pkg/domain"
)

// timeLayout は台帳に書き込むタイムスタンプの形式です。
const timeLayout = "2006-01-02 15:04:05"

// readLayouts は既存行の読み取りで許容する形式です。
// 手編集やマイクロ秒付きの古い行も受け入れます。
var readLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05.999999",
	time.RFC3339,
}

// recordToRow はレコードを台帳の 9 列（Name, Class, Lore, Greeting,
// Visual_Desc, Image_URL, Timestamp, Campaign, Faction）に変換します。
func recordToRow(rec domain.CharacterRecord) []interface{} {
	return []interface{}{
		rec.Name,
		rec.Class,
		rec.Lore,
		rec.Greeting,
		rec.VisualDesc,
		rec.ImageURL,
		rec.CreatedAt.Format(timeLayout),
		rec.Campaign,
		rec.Faction,
	}
}

// rowToRecord は台帳の 1 行をレコードに復元します。
// 9 列に満たない行は空文字列で埋め、余剰列は無視します。
func rowToRecord(row []interface{}) domain.CharacterRecord {
	cells := make([]string, 9)
	for i := 0; i < len(cells) && i < len(row); i++ {
		cells[i] = fmt.Sprintf("%v", row[i])
	}

	rec := domain.CharacterRecord{
		Name:       cells[0],
		Class:      cells[1],
		Lore:       cells[2],
		Greeting:   cells[3],
		VisualDesc: cells[4],
		ImageURL:   cells[5],
		Campaign:   cells[7],
		Faction:    cells[8],
	}

	for _, layout := range readLayouts {
		if ts, err := time.Parse(layout, cells[6]); err == nil {
			rec.CreatedAt = ts
			break
		}
	}

	return rec
}
