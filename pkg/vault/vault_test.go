package vault

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shouni/npc-forge-kit/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake sheetAPI ---

type fakeSheetAPI struct {
	rows [][]interface{}

	appendErr error
	getErr    error
	updateErr error
	deleteErr error

	lastUpdateRange  string
	lastUpdateValues [][]interface{}
	lastDeleteStart  int64
	lastDeleteEnd    int64
}

func (f *fakeSheetAPI) appendRow(ctx context.Context, row []interface{}) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSheetAPI) getRows(ctx context.Context) ([][]interface{}, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rows, nil
}

func (f *fakeSheetAPI) updateRange(ctx context.Context, rangeA1 string, values [][]interface{}) error {
	f.lastUpdateRange = rangeA1
	f.lastUpdateValues = values
	return f.updateErr
}

func (f *fakeSheetAPI) deleteRows(ctx context.Context, startIndex, endIndex int64) error {
	f.lastDeleteStart = startIndex
	f.lastDeleteEnd = endIndex
	return f.deleteErr
}

var headerRow = []interface{}{
	"Name", "Class", "Lore", "Greeting", "Visual_Desc", "Image_URL", "Timestamp", "Campaign", "Faction",
}

func newTestStore(api *fakeSheetAPI) *SheetsStore {
	return &SheetsStore{
		api:       api,
		sheetName: "Sheet1",
		now:       func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
	}
}

// --- Tests ---

func TestSheetsStore_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatedAt が未設定なら現在時刻を刻印するのだ", func(t *testing.T) {
		api := &fakeSheetAPI{rows: [][]interface{}{headerRow}}
		store := newTestStore(api)

		rec := domain.CharacterRecord{Name: "Sigrid", Class: "Runesmith"}
		saved, err := store.Append(ctx, rec)

		require.NoError(t, err)
		assert.False(t, saved.CreatedAt.IsZero())
		require.Len(t, api.rows, 2)
		assert.Equal(t, "Sigrid", api.rows[1][0])
		assert.Equal(t, "2026-08-01 12:00:00", api.rows[1][6])
	})

	t.Run("刻印済みの CreatedAt はそのまま使うのだ", func(t *testing.T) {
		api := &fakeSheetAPI{}
		store := newTestStore(api)

		stamped := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		saved, err := store.Append(ctx, domain.CharacterRecord{Name: "X", CreatedAt: stamped})

		require.NoError(t, err)
		assert.Equal(t, stamped, saved.CreatedAt)
	})

	t.Run("追記失敗はラップされたエラーになるのだ", func(t *testing.T) {
		api := &fakeSheetAPI{appendErr: errors.New("quota exceeded")}
		store := newTestStore(api)

		_, err := store.Append(ctx, domain.CharacterRecord{Name: "X"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "台帳への追記に失敗")
	})
}

func TestSheetsStore_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("ヘッダー行はレコードに含まれないのだ", func(t *testing.T) {
		api := &fakeSheetAPI{rows: [][]interface{}{
			headerRow,
			{"Sigrid", "Runesmith", "lore", "greet", "desc", "https://img/1.png", "2026-08-01 12:00:00", "Vargheim", "Iron Pact"},
			{"Olaf", "Skald", "lore2", "greet2", "desc2", "https://img/2.png", "2026-08-02 12:00:00", "", ""},
		}}
		store := newTestStore(api)

		records, err := store.ListAll(ctx)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Sigrid", records[0].Name)
		assert.Equal(t, "Vargheim", records[0].Campaign)
		assert.Equal(t, "Olaf", records[1].Name)
		assert.Equal(t, 2026, records[0].CreatedAt.Year())
	})

	t.Run("ヘッダーしかない台帳は空スライスを返すのだ", func(t *testing.T) {
		api := &fakeSheetAPI{rows: [][]interface{}{headerRow}}
		store := newTestStore(api)

		records, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("読み取り失敗はエラーになるのだ", func(t *testing.T) {
		api := &fakeSheetAPI{getErr: errors.New("permission denied")}
		store := newTestStore(api)

		_, err := store.ListAll(ctx)
		assert.Error(t, err)
	})
}

func TestSheetsStore_UpdateTags(t *testing.T) {
	ctx := context.Background()

	t.Run("インデックス0はシートの2行目のH:I列を更新するのだ", func(t *testing.T) {
		api := &fakeSheetAPI{}
		store := newTestStore(api)

		err := store.UpdateTags(ctx, 0, "Vargheim", "Iron Pact")

		require.NoError(t, err)
		assert.Equal(t, "Sheet1!H2:I2", api.lastUpdateRange)
		require.Len(t, api.lastUpdateValues, 1)
		assert.Equal(t, []interface{}{"Vargheim", "Iron Pact"}, api.lastUpdateValues[0])
	})

	t.Run("空文字列でタグを消去できるのだ", func(t *testing.T) {
		api := &fakeSheetAPI{}
		store := newTestStore(api)

		err := store.UpdateTags(ctx, 4, "", "")

		require.NoError(t, err)
		assert.Equal(t, "Sheet1!H6:I6", api.lastUpdateRange)
		assert.Equal(t, []interface{}{"", ""}, api.lastUpdateValues[0])
	})

	t.Run("負のインデックスはエラーなのだ", func(t *testing.T) {
		store := newTestStore(&fakeSheetAPI{})
		assert.Error(t, store.UpdateTags(ctx, -1, "a", "b"))
	})
}

func TestSheetsStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("インデックス0はヘッダーを飛ばして行1を削除するのだ", func(t *testing.T) {
		api := &fakeSheetAPI{}
		store := newTestStore(api)

		err := store.Delete(ctx, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(1), api.lastDeleteStart)
		assert.Equal(t, int64(2), api.lastDeleteEnd)
	})

	t.Run("負のインデックスはエラーなのだ", func(t *testing.T) {
		store := newTestStore(&fakeSheetAPI{})
		assert.Error(t, store.Delete(ctx, -2))
	})

	t.Run("API失敗はラップされて返るのだ", func(t *testing.T) {
		api := &fakeSheetAPI{deleteErr: errors.New("backend error")}
		store := newTestStore(api)

		err := store.Delete(ctx, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "行の削除に失敗")
	})
}

func TestSheetNameOf(t *testing.T) {
	assert.Equal(t, "Archive", sheetNameOf("Archive!A:I"))
	assert.Equal(t, "Sheet1", sheetNameOf("A:I"))
}
