// Package imgutil は肖像データの転送前圧縮を提供します。
package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// DefaultQuality はアップロード前圧縮で使う JPEG 品質です。
const DefaultQuality = 75

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// image.Decodeがサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ShrinkForTransfer は JPEG 圧縮の結果が元より小さい場合のみ置き換えます。
// 小さな肖像は再圧縮でかえって膨らむことがあるため、サイズで判定します。
// 圧縮できない形式は元のバイト列をそのまま返します。
func ShrinkForTransfer(data []byte, quality int) []byte {
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data
	}
	return compressed
}
