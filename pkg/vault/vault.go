// Package vault はキャラクターレコードの台帳（Google スプレッドシート）への
// 永続化と、アーカイブ操作（一覧・タグ更新・削除）を提供します。
package vault

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shouni/npc-forge-kit/pkg/domain"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// RecordStore はレコード台帳への操作を抽象化します。
// 行の参照は ListAll が返すスライスの 0 始まりインデックスです。
// インデックスは位置参照のため、削除の合間に他者が行を消すとずれる点に注意。
type RecordStore interface {
	Append(ctx context.Context, rec domain.CharacterRecord) (domain.CharacterRecord, error)
	ListAll(ctx context.Context) ([]domain.CharacterRecord, error)
	UpdateTags(ctx context.Context, index int, campaign, faction string) error
	Delete(ctx context.Context, index int) error
}

// sheetAPI は Sheets API のうち台帳が使う操作だけを切り出した内部シームです。
type sheetAPI interface {
	appendRow(ctx context.Context, row []interface{}) error
	getRows(ctx context.Context) ([][]interface{}, error)
	updateRange(ctx context.Context, rangeA1 string, values [][]interface{}) error
	deleteRows(ctx context.Context, startIndex, endIndex int64) error
}

// SheetsStore は Google スプレッドシートを台帳とする RecordStore 実装です。
type SheetsStore struct {
	api       sheetAPI
	sheetName string
	now       func() time.Time
}

// NewSheetsStore はサービスアカウント認証でスプレッドシート台帳を初期化するのだ。
// readRange は "Sheet1!A:I" のようなヘッダー込みの全列レンジを想定しています。
func NewSheetsStore(ctx context.Context, serviceAccountFile, spreadsheetID, readRange string, sheetGID int64) (*SheetsStore, error) {
	if serviceAccountFile == "" {
		return nil, fmt.Errorf("service account file is required")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(serviceAccountFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("Sheetsサービスの初期化に失敗しました: %w", err)
	}

	api := &googleSheetAPI{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		sheetGID:      sheetGID,
	}

	return &SheetsStore{
		api:       api,
		sheetName: sheetNameOf(readRange),
		now:       time.Now,
	}, nil
}

// Append はレコードを台帳の末尾に追記します。CreatedAt が未設定なら現在時刻を刻印し、
// 刻印済みのレコードを返します。リトライは行いません。
func (s *SheetsStore) Append(ctx context.Context, rec domain.CharacterRecord) (domain.CharacterRecord, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}

	if err := s.api.appendRow(ctx, recordToRow(rec)); err != nil {
		return rec, fmt.Errorf("台帳への追記に失敗しました: %w", err)
	}
	return rec, nil
}

// ListAll は台帳の全レコードをヘッダー行を除いて返します。
func (s *SheetsStore) ListAll(ctx context.Context) ([]domain.CharacterRecord, error) {
	rows, err := s.api.getRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("台帳の読み取りに失敗しました: %w", err)
	}

	if len(rows) <= 1 {
		return []domain.CharacterRecord{}, nil
	}

	records := make([]domain.CharacterRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(row))
	}
	return records, nil
}

// UpdateTags は指定インデックスの行の Campaign / Faction 列（H:I）を書き換えます。
// 空文字列はタグの消去を意味します。
func (s *SheetsStore) UpdateTags(ctx context.Context, index int, campaign, faction string) error {
	if index < 0 {
		return fmt.Errorf("invalid record index: %d", index)
	}

	// ヘッダー行の分だけ 1 行ずれる（A1 表記は 1 始まり）
	sheetRow := index + 2
	rangeA1 := fmt.Sprintf("%s!H%d:I%d", s.sheetName, sheetRow, sheetRow)

	err := s.api.updateRange(ctx, rangeA1, [][]interface{}{{campaign, faction}})
	if err != nil {
		return fmt.Errorf("タグの更新に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定インデックスの行を台帳から取り除きます。
func (s *SheetsStore) Delete(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("invalid record index: %d", index)
	}

	// DeleteDimension は 0 始まり・終端排他。+1 はヘッダー行の分。
	start := int64(index + 1)
	if err := s.api.deleteRows(ctx, start, start+1); err != nil {
		return fmt.Errorf("行の削除に失敗しました: %w", err)
	}
	return nil
}

// sheetNameOf は "Sheet1!A:I" からシート名部分を取り出します。
func sheetNameOf(readRange string) string {
	if i := strings.Index(readRange, "!"); i > 0 {
		return readRange[:i]
	}
	return "Sheet1"
}

// googleSheetAPI は sheetAPI の Sheets v4 実装です。
type googleSheetAPI struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
	sheetGID      int64
}

func (g *googleSheetAPI) appendRow(ctx context.Context, row []interface{}) error {
	body := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, g.readRange, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (g *googleSheetAPI) getRows(ctx context.Context) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleSheetAPI) updateRange(ctx context.Context, rangeA1 string, values [][]interface{}) error {
	body := &sheets.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rangeA1, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (g *googleSheetAPI) deleteRows(ctx context.Context, startIndex, endIndex int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    g.sheetGID,
					Dimension:  "ROWS",
					StartIndex: startIndex,
					EndIndex:   endIndex,
				},
			},
		}},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	return err
}
