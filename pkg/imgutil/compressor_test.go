package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// テスト用のダミー肖像（単色の正方形）を作成するヘルパー
func createDummyPortraitData(t *testing.T, format string, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{180, 40, 40, 255})
		}
	}

	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	default:
		t.Fatalf("unsupported format: %s", format)
	}

	if err != nil {
		t.Fatalf("failed to encode dummy portrait: %v", err)
	}
	return buf.Bytes()
}

func TestCompressToJPEG(t *testing.T) {
	t.Run("正常なPNG画像をJPEGに圧縮できること", func(t *testing.T) {
		pngData := createDummyPortraitData(t, "png", 10)

		got, err := CompressToJPEG(pngData, DefaultQuality)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(got) == 0 {
			t.Error("expected output data, but got empty")
		}

		// 出力がJPEGとしてデコード可能か確認
		_, format, err := image.Decode(bytes.NewReader(got))
		if err != nil {
			t.Errorf("failed to decode output image: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("expected format jpeg, got %s", format)
		}
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		invalidData := []byte("this is not an image")
		_, err := CompressToJPEG(invalidData, DefaultQuality)
		if err == nil {
			t.Error("expected error for invalid data, but got nil")
		}
	})

	t.Run("Quality設定によってサイズが変化すること", func(t *testing.T) {
		input := createDummyPortraitData(t, "png", 64)

		highQuality, _ := CompressToJPEG(input, 100)
		lowQuality, _ := CompressToJPEG(input, 10)

		if len(lowQuality) >= len(highQuality) {
			t.Errorf("low quality size (%d) should be smaller than high quality size (%d)", len(lowQuality), len(highQuality))
		}
	})
}

func TestShrinkForTransfer(t *testing.T) {
	t.Run("圧縮で膨らむ場合は元のデータを返すこと", func(t *testing.T) {
		// 極小のJPEGは再圧縮でヘッダ分だけ膨らみやすい
		tiny := createDummyPortraitData(t, "jpeg", 2)

		got := ShrinkForTransfer(tiny, DefaultQuality)
		if len(got) > len(tiny) {
			t.Errorf("output (%d bytes) should never exceed input (%d bytes)", len(got), len(tiny))
		}
	})

	t.Run("圧縮できない形式は元のデータをそのまま返すこと", func(t *testing.T) {
		raw := []byte("not an image at all")
		got := ShrinkForTransfer(raw, DefaultQuality)
		if !bytes.Equal(got, raw) {
			t.Error("non-image input should pass through unchanged")
		}
	})
}
