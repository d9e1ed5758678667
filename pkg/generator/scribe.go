package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/npc-forge-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiScribe は書記プロンプトをテキストモデルに送り、
// 応答から厳密にキャラクターシートを復号する SheetScribe 実装です。
type GeminiScribe struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiScribe は GeminiScribe を初期化するのだ。
func NewGeminiScribe(aiClient gemini.GenerativeModel, model string) (*GeminiScribe, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &GeminiScribe{
		aiClient: aiClient,
		model:    model,
	}, nil
}

// ComposeSheet はプロンプトを送信し、応答 JSON を 5 フィールドのシートに復号します。
// 復号できない応答は修復もリトライもせず、そのままエラーとして返します。
func (s *GeminiScribe) ComposeSheet(ctx context.Context, prompt string) (domain.CharacterSheet, error) {
	resp, err := s.aiClient.GenerateContent(ctx, s.model, prompt)
	if err != nil {
		return domain.CharacterSheet{}, fmt.Errorf("書記モデルへの問い合わせに失敗しました: %w", err)
	}

	raw, err := extractText(resp)
	if err != nil {
		return domain.CharacterSheet{}, err
	}

	sheet, err := DecodeSheet(raw)
	if err != nil {
		return domain.CharacterSheet{}, fmt.Errorf("書記応答の復号に失敗しました: %w", err)
	}
	return sheet, nil
}

// extractText はレスポンスの最初の候補からテキストパーツを連結して返します。
func extractText(resp *gemini.Response) (string, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return "", fmt.Errorf("書記モデルからの有効な応答がありませんでした")
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("書記応答にコンテンツが含まれていません")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("書記応答にテキストパーツがありません")
	}
	return b.String(), nil
}

// DecodeSheet は生テキストからシートを復号します。モデルが JSON を
// ``` フェンスで包むことがあるため、復号前に取り除きます。
// 5 フィールドのいずれかが欠けていれば明示的なエラーで閉じます。
func DecodeSheet(raw string) (domain.CharacterSheet, error) {
	clean := stripFences(raw)

	var sheet domain.CharacterSheet
	if err := json.Unmarshal([]byte(clean), &sheet); err != nil {
		return domain.CharacterSheet{}, fmt.Errorf("JSONとして解釈できません: %w", err)
	}
	if err := sheet.Validate(); err != nil {
		return domain.CharacterSheet{}, err
	}
	return sheet, nil
}

// stripFences は ```json ... ``` / ``` ... ``` の区切りを剥がします。
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}
