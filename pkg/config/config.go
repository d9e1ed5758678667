// Package config は環境変数から資格情報と動作設定を読み込みます。
// 必須の資格情報が欠けている操作は開始前にブロックされ、
// 任意の資格情報（アップロード先・保管庫）は欠けていても劣化動作で続行します。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config はプロセス起動時に一度だけ解決され、以後は読み取り専用です。
type Config struct {
	// Gemini
	GeminiAPIKey string  `env:"GEMINI_API_KEY"`
	TextModel    string  `env:"FORGE_TEXT_MODEL" envDefault:"models/gemini-3-pro-preview"`
	ImageModel   string  `env:"FORGE_IMAGE_MODEL" envDefault:"models/gemini-3-pro-image-preview"`
	Temperature  float32 `env:"FORGE_TEMPERATURE" envDefault:"0.8"`

	// Cloudinary（任意。欠落時はプレースホルダー URL で劣化動作）
	CloudinaryCloud  string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinarySecret string `env:"CLOUDINARY_API_SECRET"`
	UploadFolder     string `env:"FORGE_UPLOAD_FOLDER" envDefault:"masters_vault_npcs"`

	// 保管庫（任意。欠落時は保存をスキップして警告）
	SheetID            string `env:"VAULT_SHEET_ID"`
	SheetRange         string `env:"VAULT_SHEET_RANGE" envDefault:"Sheet1!A:I"`
	SheetGID           int64  `env:"VAULT_SHEET_GID" envDefault:"0"`
	ServiceAccountFile string `env:"VAULT_SERVICE_ACCOUNT_FILE" envDefault:"service_account.json"`

	// サーバーと生成ペース
	ListenAddr   string        `env:"FORGE_LISTEN_ADDR" envDefault:":8080"`
	RateInterval time.Duration `env:"FORGE_RATE_INTERVAL" envDefault:"2s"`
	FetchTimeout time.Duration `env:"FORGE_FETCH_TIMEOUT" envDefault:"30s"`
}

// Load は .env（存在すれば）と環境変数から Config を構築します。
// .env の不在はエラーではありません。
func Load() (Config, error) {
	// godotenv.Load は既存の環境変数を上書きしない
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}
	return cfg, nil
}

// RequireGeneration は生成操作に必須の資格情報を検証します。
// 欠落はその操作にとって致命的な設定エラーです。
func (c Config) RequireGeneration() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	return nil
}

// UploaderConfigured はアップロード先の資格情報が揃っているかを返します。
func (c Config) UploaderConfigured() bool {
	return c.CloudinaryCloud != "" && c.CloudinaryKey != "" && c.CloudinarySecret != ""
}

// VaultConfigured は保管庫への永続化が可能かを返します。
func (c Config) VaultConfigured() bool {
	return c.SheetID != ""
}
