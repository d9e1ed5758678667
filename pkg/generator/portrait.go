package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/npc-forge-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GeminiPortraitGenerator は肖像画生成を担当する PortraitGenerator 実装です。
type GeminiPortraitGenerator struct {
	imgCore  portraitCore
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiPortraitGenerator は GeminiPortraitGenerator を初期化するのだ。
func NewGeminiPortraitGenerator(
	core portraitCore,
	aiClient gemini.GenerativeModel,
	model string,
) (*GeminiPortraitGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (portraitCore) is required")
	}
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}

	return &GeminiPortraitGenerator{
		imgCore:  core,
		aiClient: aiClient,
		model:    model,
	}, nil
}

// GeneratePortrait は肖像プロンプト（と任意の参照肖像）から 1 枚の肖像を生成します。
// モデルが画像を返さなかった場合はエラーではなく Empty なレスポンスを返し、
// 通信・解析エラーのみが error になります。劣化判断は呼び出し側が行います。
func (g *GeminiPortraitGenerator) GeneratePortrait(ctx context.Context, req domain.PortraitRequest) (*domain.PortraitResponse, error) {
	parts := []*genai.Part{{Text: req.Prompt}}

	if req.ReferenceURL != "" {
		if imgPart := g.imgCore.prepareReferencePart(ctx, req.ReferenceURL); imgPart != nil {
			parts = append(parts, imgPart)
		} else {
			// 参照が読めなくても生成自体は続行する
			slog.WarnContext(ctx, "参照肖像の読み込みに失敗しました。テキストのみで続行します", "url", req.ReferenceURL)
		}
	}

	opts := gemini.GenerateOptions{
		AspectRatio: req.AspectRatio,
		Seed:        req.Seed,
	}

	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Gemini肖像生成エラー: %w", err)
	}

	out, err := g.imgCore.parseToResponse(resp, dereferenceSeed(req.Seed))
	if err != nil {
		return nil, err
	}
	if out == nil {
		// 正常終了・画像なし
		return &domain.PortraitResponse{UsedSeed: dereferenceSeed(req.Seed)}, nil
	}

	return &domain.PortraitResponse{
		Data:     out.Data,
		MimeType: out.MimeType,
		UsedSeed: out.UsedSeed,
	}, nil
}
