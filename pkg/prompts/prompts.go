// Package prompts は概念とトーン修飾文から AI プロンプトを構築します。
package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/npc-forge-kit/pkg/domain"
)

// DefaultStyleSuffix は肖像プロンプト末尾に付ける共通の画風サフィックスです。
const DefaultStyleSuffix = ", Norse aesthetic, 8k, cinematic lighting."

// sheetPromptTemplate は書記への指示文です。スキーマ要件（5 キーの JSON）と
// 制約（発音しやすい創作名・数値ステータス禁止）はここで固定されます。
const sheetPromptTemplate = `Role: Fantasy DM Creative Archivist.
Task: Create a vivid, fully realized description in a fantasy style of an NPC based on: %q.
Rules: Norse-inspired name (EASY to pronounce). %s No Stats.
Format: JSON with keys: Name, Class, Visual_Desc, Lore, Greeting.`

// Builder は、トーンを考慮して書記用・肖像用のプロンプトを構築します。
type Builder struct {
	styleSuffix string // "anime style, high quality" 等の共通サフィックス
}

// NewBuilder は新しい Builder を生成します。suffix が空なら既定値を使います。
func NewBuilder(suffix string) *Builder {
	if suffix == "" {
		suffix = DefaultStyleSuffix
	}
	return &Builder{styleSuffix: suffix}
}

// BuildSheetPrompt は概念とトーンの物語修飾文を埋め込んだ書記プロンプトを返します。
func (b *Builder) BuildSheetPrompt(concept string, mods domain.ToneModifiers) string {
	return fmt.Sprintf(sheetPromptTemplate, concept, mods.Narrative)
}

// BuildPortraitPrompt はトーンの画風修飾文と外見描写を連結した肖像プロンプトを返します。
// 外見描写は書記の出力をそのまま使い、ここでは書き換えません。
func (b *Builder) BuildPortraitPrompt(visualDesc string, mods domain.ToneModifiers) string {
	return mods.Visual + ", " + strings.TrimSpace(visualDesc) + b.styleSuffix
}
