// Package uploader は生成された肖像バイト列を外部メディアストレージ
// （Cloudinary）に保存し、公開 URL を得る責務を担います。
package uploader

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/shouni/npc-forge-kit/pkg/imgutil"

	"github.com/cloudinary/cloudinary-go/v2"
	cldupload "github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// thumbnailTransform は一覧表示用のトリミング指定です（顔中心・800x600）。
const thumbnailTransform = "c_fill,g_face,w_800,h_600"

// MediaUploader は肖像バイト列を保存し、公開 URL を返します。
type MediaUploader interface {
	UploadPortrait(ctx context.Context, data []byte) (string, error)
}

// CloudinaryUploader は Cloudinary SDK を使う MediaUploader 実装です。
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader は認証情報からアップローダーを初期化するのだ。
// 認証情報が欠けている場合はエラーを返し、劣化判断は呼び出し側に委ねます。
func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are required")
	}
	if folder == "" {
		return nil, fmt.Errorf("upload folder is required")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("Cloudinaryクライアントの初期化に失敗しました: %w", err)
	}

	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

// UploadPortrait は肖像を JPEG 圧縮してからアップロードし、HTTPS の公開 URL を返します。
// 圧縮できない形式の場合は元のバイト列をそのまま送ります。リトライは行いません。
func (u *CloudinaryUploader) UploadPortrait(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no portrait data to upload")
	}

	finalData := imgutil.ShrinkForTransfer(data, imgutil.DefaultQuality)

	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(finalData), cldupload.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %w", err)
	}
	if resp == nil || resp.SecureURL == "" {
		return "", fmt.Errorf("Cloudinaryが公開URLを返しませんでした")
	}

	return resp.SecureURL, nil
}

// ThumbnailURL は Cloudinary の配信 URL に一覧表示用の変換を差し込みます。
// Cloudinary 以外の URL（プレースホルダー等）はそのまま返します。
func ThumbnailURL(rawURL string) string {
	if !strings.Contains(rawURL, "cloudinary") || !strings.Contains(rawURL, "/upload/") {
		return rawURL
	}
	return strings.Replace(rawURL, "/upload/", "/upload/"+thumbnailTransform+"/", 1)
}
