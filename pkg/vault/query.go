package vault

import (
	"sort"
	"strings"

	"github.com/shouni/npc-forge-kit/pkg/domain"
)

// Query はアーカイブの絞り込み条件です。ゼロ値は「全件」を意味します。
type Query struct {
	// Text は Name / Class / Lore に対する大文字小文字を無視した部分一致です。
	Text string
	// Campaign / Faction は完全一致フィルターです。空文字列は絞り込みなし。
	Campaign string
	Faction  string
}

// ArchiveEntry は絞り込み結果の 1 件です。Index は台帳上の元の位置を保持し、
// タグ更新や削除の行参照としてそのまま使えます。
type ArchiveEntry struct {
	Index  int                    `json:"index"`
	Record domain.CharacterRecord `json:"record"`
}

// FilterArchive はレコード一覧を条件で絞り込みます。
// 元のインデックスは維持されるため、結果からの行操作が安全に行えます。
func FilterArchive(records []domain.CharacterRecord, q Query) []ArchiveEntry {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	entries := make([]ArchiveEntry, 0, len(records))
	for i, rec := range records {
		if q.Campaign != "" && rec.Campaign != q.Campaign {
			continue
		}
		if q.Faction != "" && rec.Faction != q.Faction {
			continue
		}
		if needle != "" && !matchesText(rec, needle) {
			continue
		}
		entries = append(entries, ArchiveEntry{Index: i, Record: rec})
	}
	return entries
}

func matchesText(rec domain.CharacterRecord, needle string) bool {
	return strings.Contains(strings.ToLower(rec.Name), needle) ||
		strings.Contains(strings.ToLower(rec.Class), needle) ||
		strings.Contains(strings.ToLower(rec.Lore), needle)
}

// Tags はアーカイブ全体に現れるタグの一覧です。
type Tags struct {
	Campaigns []string `json:"campaigns"`
	Factions  []string `json:"factions"`
}

// DistinctTags は空白を除いたキャンペーン・ファクションの重複なし一覧を
// ソート済みで返します。フィルター UI の選択肢に使います。
func DistinctTags(records []domain.CharacterRecord) Tags {
	return Tags{
		Campaigns: distinct(records, func(r domain.CharacterRecord) string { return r.Campaign }),
		Factions:  distinct(records, func(r domain.CharacterRecord) string { return r.Faction }),
	}
}

func distinct(records []domain.CharacterRecord, key func(domain.CharacterRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range records {
		v := strings.TrimSpace(key(rec))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
