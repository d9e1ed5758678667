package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "models/gemini-3-pro-preview", cfg.TextModel)
	assert.Equal(t, "models/gemini-3-pro-image-preview", cfg.ImageModel)
	assert.Equal(t, "masters_vault_npcs", cfg.UploadFolder)
	assert.Equal(t, "Sheet1!A:I", cfg.SheetRange)
	assert.Equal(t, int64(0), cfg.SheetGID)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestConfig_RequireGeneration(t *testing.T) {
	t.Run("APIキーがあれば生成を許可する", func(t *testing.T) {
		cfg := Config{GeminiAPIKey: "k"}
		assert.NoError(t, cfg.RequireGeneration())
	})

	t.Run("APIキーの欠落は致命的な設定エラー", func(t *testing.T) {
		cfg := Config{}
		assert.Error(t, cfg.RequireGeneration())
	})
}

func TestConfig_OptionalCollaborators(t *testing.T) {
	cfg := Config{}
	assert.False(t, cfg.UploaderConfigured(), "資格情報なしではアップロード不可")
	assert.False(t, cfg.VaultConfigured(), "シートIDなしでは永続化不可")

	cfg.CloudinaryCloud = "demo"
	cfg.CloudinaryKey = "key"
	assert.False(t, cfg.UploaderConfigured(), "3点セットが揃うまでは不可")
	cfg.CloudinarySecret = "secret"
	assert.True(t, cfg.UploaderConfigured())

	cfg.SheetID = "sheet-id"
	assert.True(t, cfg.VaultConfigured())
}
