package vault

import (
	"testing"
	"time"

	"github.com/shouni/npc-forge-kit/pkg/domain"

	"github.com/stretchr/testify/assert"
)

func TestRecordRowRoundTrip(t *testing.T) {
	rec := domain.CharacterRecord{
		Name:       "Sigrid Ironveil",
		Class:      "Runesmith",
		Lore:       "She forged the gates of the deep hold.",
		Greeting:   "Speak quickly.",
		VisualDesc: "Scarred dwarven woman, iron-grey braids",
		ImageURL:   "https://res.cloudinary.com/demo/image/upload/v1/npc.jpg",
		CreatedAt:  time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
		Campaign:   "Vargheim",
		Faction:    "Iron Pact",
	}

	row := recordToRow(rec)
	assert.Len(t, row, 9)
	assert.Equal(t, "Sigrid Ironveil", row[0])
	assert.Equal(t, "2026-08-01 12:30:00", row[6])

	back := rowToRecord(row)
	assert.Equal(t, rec, back)
}

func TestRowToRecord_Tolerance(t *testing.T) {
	t.Run("短い行は空文字列で埋めるのだ", func(t *testing.T) {
		rec := rowToRecord([]interface{}{"Olaf", "Skald"})
		assert.Equal(t, "Olaf", rec.Name)
		assert.Equal(t, "Skald", rec.Class)
		assert.Empty(t, rec.Campaign)
		assert.True(t, rec.CreatedAt.IsZero())
	})

	t.Run("マイクロ秒付きの古いタイムスタンプも読めるのだ", func(t *testing.T) {
		rec := rowToRecord([]interface{}{
			"Olaf", "Skald", "", "", "", "", "2024-11-30 08:15:00.123456", "", "",
		})
		assert.Equal(t, 2024, rec.CreatedAt.Year())
	})

	t.Run("解釈できないタイムスタンプはゼロ値のまま進むのだ", func(t *testing.T) {
		rec := rowToRecord([]interface{}{
			"Olaf", "Skald", "", "", "", "", "yesterday", "", "",
		})
		assert.True(t, rec.CreatedAt.IsZero())
	})
}
