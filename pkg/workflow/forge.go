// Package workflow は「鍛造」1 回分の工程（書記 → 肖像 → アップロード → 保管）を
// 順に実行し、途中の失敗を定められた劣化規則で吸収します。
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/npc-forge-kit/pkg/domain"
	"github.com/shouni/npc-forge-kit/pkg/generator"
	"github.com/shouni/npc-forge-kit/pkg/prompts"
	"github.com/shouni/npc-forge-kit/pkg/uploader"
	"github.com/shouni/npc-forge-kit/pkg/vault"

	"golang.org/x/time/rate"
)

// ステップの結果区分です。
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// ErrRateLimited は、レート制限の待機が完了できなかったことを示します。
// 入力不備と区別して、呼び出し側が応答コードを選ぶために使います。
var ErrRateLimited = errors.New("レート制限の待機が完了できませんでした")

// StepStatus は 1 工程の結果と補足メッセージです。
type StepStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ForgeRequest は鍛造 1 回分の入力です。
type ForgeRequest struct {
	// Concept は NPC の概念（必須）。例: "a disgraced dwarven runesmith"
	Concept string `json:"concept"`
	// Tone はトーン名（閉じた集合、必須）。
	Tone string `json:"tone"`
	// ReferenceURL は前回の肖像 URL。面影を保った再鍛造に使います（任意）。
	ReferenceURL string `json:"reference_url,omitempty"`
	// Seed は肖像生成の乱数シード（任意）。
	Seed *int64 `json:"seed,omitempty"`
}

// ForgeResult は鍛造の成果物と各工程の結果です。
// 書記が成功していれば、後続工程の失敗にかかわらず Record は常に有効です。
type ForgeResult struct {
	Record  domain.CharacterRecord `json:"record"`
	Scribe  StepStatus             `json:"scribe"`
	Image   StepStatus             `json:"image"`
	Persist StepStatus             `json:"persist"`
}

// Forge は鍛造工程のオーケストレーターです。
// media と store は nil を許容し、欠けた工程は劣化動作になります。
type Forge struct {
	scribe    generator.SheetScribe
	portraits generator.PortraitGenerator
	prompts   *prompts.Builder
	media     uploader.MediaUploader
	store     vault.RecordStore
	limiter   *rate.Limiter
}

// NewForge はオーケストレーターを初期化するのだ。
func NewForge(
	scribe generator.SheetScribe,
	portraits generator.PortraitGenerator,
	promptBuilder *prompts.Builder,
	media uploader.MediaUploader,
	store vault.RecordStore,
	limiter *rate.Limiter,
) (*Forge, error) {
	if scribe == nil {
		return nil, fmt.Errorf("scribe は必須です")
	}
	if portraits == nil {
		return nil, fmt.Errorf("portraits は必須です")
	}
	if promptBuilder == nil {
		return nil, fmt.Errorf("promptBuilder は必須です")
	}

	return &Forge{
		scribe:    scribe,
		portraits: portraits,
		prompts:   promptBuilder,
		media:     media,
		store:     store,
		limiter:   limiter,
	}, nil
}

// Run は鍛造を 1 回実行します。
//
// 書記（テキスト生成）の失敗は致命的で、肖像生成も保管も行いません。
// 肖像・アップロードの失敗はプレースホルダー URL への劣化、
// 保管の失敗は警告扱いで、いずれもレコード自体は返します。
// どの工程にもリトライはありません。
// 入力の検証はレート制限の待機より先に行われ、不正なリクエストは
// トークンを消費しません。
func (f *Forge) Run(ctx context.Context, req ForgeRequest) (ForgeResult, error) {
	if req.Concept == "" {
		return ForgeResult{}, fmt.Errorf("concept は必須です")
	}
	tone, err := domain.ParseTone(req.Tone)
	if err != nil {
		return ForgeResult{}, err
	}
	mods := tone.Modifiers()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return ForgeResult{}, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}

	// 1. 書記（致命的工程）
	sheetPrompt := f.prompts.BuildSheetPrompt(req.Concept, mods)
	sheet, err := f.scribe.ComposeSheet(ctx, sheetPrompt)
	if err != nil {
		slog.ErrorContext(ctx, "書記工程が失敗しました", "error", err)
		return ForgeResult{Scribe: StepStatus{Status: StatusFailed, Message: err.Error()}}, err
	}

	result := ForgeResult{Scribe: StepStatus{Status: StatusOK}}

	// 2. 肖像とアップロード（劣化工程）
	imageURL := f.manifestPortrait(ctx, sheet, req, mods, &result)
	result.Record = domain.NewRecord(sheet, imageURL)

	// 3. 保管（警告工程）
	f.persist(ctx, &result)

	return result, nil
}

// manifestPortrait は肖像の生成とアップロードを行い、Image_URL に入れる値を返します。
// 失敗はすべて対応するプレースホルダーに縮退し、エラーは返しません。
func (f *Forge) manifestPortrait(ctx context.Context, sheet domain.CharacterSheet, req ForgeRequest, mods domain.ToneModifiers, result *ForgeResult) string {
	prompt := f.prompts.BuildPortraitPrompt(sheet.VisualDesc, mods)

	portrait, err := f.portraits.GeneratePortrait(ctx, domain.PortraitRequest{
		Prompt:       prompt,
		ReferenceURL: req.ReferenceURL,
		Seed:         req.Seed,
	})
	if err != nil {
		slog.WarnContext(ctx, "肖像生成が失敗しました", "error", err)
		result.Image = StepStatus{Status: StatusFailed, Message: err.Error()}
		return domain.PlaceholderImageError
	}
	if portrait.Empty() {
		slog.WarnContext(ctx, "肖像モデルが画像を返しませんでした")
		result.Image = StepStatus{Status: StatusFailed, Message: "肖像モデルが画像を返しませんでした"}
		return domain.PlaceholderNoImage
	}

	if f.media == nil {
		slog.WarnContext(ctx, "アップロード先が未設定のため肖像を保存できません")
		result.Image = StepStatus{Status: StatusFailed, Message: "アップロード先が未設定です"}
		return domain.PlaceholderUploaderMissing
	}

	url, err := f.media.UploadPortrait(ctx, portrait.Data)
	if err != nil {
		slog.WarnContext(ctx, "肖像のアップロードが失敗しました", "error", err)
		result.Image = StepStatus{Status: StatusFailed, Message: err.Error()}
		return domain.PlaceholderImageError
	}

	result.Image = StepStatus{Status: StatusOK}
	return url
}

// persist はレコードを保管庫に追記します。保管庫未設定はスキップ、
// 追記失敗は警告で、レコードはどちらの場合も呼び出し側に返ります。
func (f *Forge) persist(ctx context.Context, result *ForgeResult) {
	if f.store == nil {
		slog.WarnContext(ctx, "保管庫が未設定のためレコードは保存されません", "name", result.Record.Name)
		result.Persist = StepStatus{Status: StatusSkipped, Message: "保管庫が未設定です"}
		return
	}

	saved, err := f.store.Append(ctx, result.Record)
	if err != nil {
		slog.WarnContext(ctx, "保管庫への追記が失敗しました", "name", result.Record.Name, "error", err)
		result.Persist = StepStatus{Status: StatusFailed, Message: err.Error()}
		return
	}

	result.Record = saved
	result.Persist = StepStatus{Status: StatusOK}
}
