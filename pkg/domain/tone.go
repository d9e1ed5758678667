package domain

import "fmt"

// Tone は生成の方向性を決める閉集合のスタイルセレクターです。
// 各値は物語用と視覚用、一対の修飾文に対応します。
type Tone string

const (
	ToneGrim   Tone = "Grim & Shadow"
	ToneNoble  Tone = "Noble & Bright"
	ToneMystic Tone = "Mystic & Strange"
)

// ToneModifiers は Tone が展開される修飾文のペアです。
type ToneModifiers struct {
	Narrative string // 書記プロンプトに注入する文体指定
	Visual    string // 肖像プロンプトの先頭に置く画風指定
}

var toneModifiers = map[Tone]ToneModifiers{
	ToneGrim: {
		Narrative: "Dark fantasy, gritty, morally ambiguous, dangerous tone.",
		Visual:    "photo realistic, dark fantasy, gritty, low key lighting, shadow heavy, ominous",
	},
	ToneNoble: {
		Narrative: "High fantasy, heroic, hopeful, noble, clean and elegant tone.",
		Visual:    "photo realistic, high fantasy, vibrant, golden hour lighting, majestic, clean, ethereal",
	},
	ToneMystic: {
		Narrative: "Eldritch, strange, dreamlike, mysterious, folklore-heavy tone.",
		Visual:    "photo realistic, surreal, mist-filled, cinematic, strange colors, folklore aesthetic",
	},
}

// Tones は定義済みのすべての Tone を返します。順序は固定です。
func Tones() []Tone {
	return []Tone{ToneGrim, ToneNoble, ToneMystic}
}

// ParseTone は外部入力の文字列を Tone に解決します。
// 閉集合の外はエラーであり、既定値への黙示的なフォールバックは行いません。
func ParseTone(s string) (Tone, error) {
	t := Tone(s)
	if _, ok := toneModifiers[t]; !ok {
		return "", fmt.Errorf("未知のトーンです: %q", s)
	}
	return t, nil
}

// Modifiers は Tone に対応する修飾文ペアを返します。
// 未検証の入力は先に ParseTone を通すこと。閉集合の外はゼロ値になります。
func (t Tone) Modifiers() ToneModifiers {
	return toneModifiers[t]
}
