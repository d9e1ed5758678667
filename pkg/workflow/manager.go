package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/npc-forge-kit/pkg/config"
	"github.com/shouni/npc-forge-kit/pkg/generator"
	"github.com/shouni/npc-forge-kit/pkg/prompts"
	"github.com/shouni/npc-forge-kit/pkg/remote"
	"github.com/shouni/npc-forge-kit/pkg/uploader"
	"github.com/shouni/npc-forge-kit/pkg/vault"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 10 * time.Minute
	defaultFileAPITTL      = time.Hour
	defaultRateBurst       = 2
)

// Manager は、鍛造工程を担う依存一式を構築・保持します。
// 必須なのは Gemini の資格情報だけです。アップロード先と保管庫は欠けていても
// nil のまま組み立て、GCS リーダーは失敗時に代役へ差し替えて、
// それぞれ対応する工程だけを劣化動作させます。
type Manager struct {
	cfg      config.Config
	aiClient gemini.GenerativeModel
	forge    *Forge
	store    vault.RecordStore
}

// New は、設定を基に新しい Manager を初期化します。
func New(ctx context.Context, cfg config.Config) (*Manager, error) {
	if err := cfg.RequireGeneration(); err != nil {
		return nil, err
	}

	aiClient, err := initializeAIClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	scribe, err := generator.NewGeminiScribe(aiClient, cfg.TextModel)
	if err != nil {
		return nil, fmt.Errorf("書記の初期化に失敗しました: %w", err)
	}

	portraits, err := initializePortraitGenerator(ctx, cfg, aiClient)
	if err != nil {
		return nil, fmt.Errorf("肖像生成エンジンの初期化に失敗しました: %w", err)
	}

	media := initializeUploader(cfg)
	store := initializeStore(ctx, cfg)

	forge, err := NewForge(
		scribe,
		portraits,
		prompts.NewBuilder(""),
		media,
		store,
		rate.NewLimiter(rate.Every(cfg.RateInterval), defaultRateBurst),
	)
	if err != nil {
		return nil, err
	}

	return &Manager{
		cfg:      cfg,
		aiClient: aiClient,
		forge:    forge,
		store:    store,
	}, nil
}

// Forge は鍛造オーケストレーターを返します。
func (m *Manager) Forge() *Forge { return m.forge }

// Store は保管庫を返します。未設定の場合は nil です。
func (m *Manager) Store() vault.RecordStore { return m.store }

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, cfg config.Config) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      cfg.GeminiAPIKey,
		Temperature: genai.Ptr(cfg.Temperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// initializePortraitGenerator は、画像キャッシュを含む PortraitGenerator を初期化します。
// GCS リーダーの初期化失敗は致命的ではなく、gs:// 参照肖像だけが使えなくなります。
func initializePortraitGenerator(ctx context.Context, cfg config.Config, aiClient gemini.GenerativeModel) (generator.PortraitGenerator, error) {
	var reader remoteio.InputReader
	if gcs, err := remote.NewGCSReader(ctx); err != nil {
		slog.Warn("GCSリーダーの初期化に失敗しました。gs:// の参照肖像は取得できません", "error", err)
		reader = remote.UnavailableReader{Err: err}
	} else {
		reader = gcs
	}

	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := generator.NewGeminiPortraitCore(
		aiClient,
		reader,
		remote.NewHTTPFetcher(cfg.FetchTimeout),
		imgCache,
		defaultFileAPITTL,
	)
	if err != nil {
		return nil, err
	}

	return generator.NewGeminiPortraitGenerator(core, aiClient, cfg.ImageModel)
}

// initializeUploader は Cloudinary アップローダーを初期化します。
// 資格情報が欠けている場合は nil を返し、肖像工程はプレースホルダーに縮退します。
func initializeUploader(cfg config.Config) uploader.MediaUploader {
	if !cfg.UploaderConfigured() {
		slog.Warn("Cloudinaryの資格情報が未設定です。肖像はプレースホルダーになります")
		return nil
	}

	media, err := uploader.NewCloudinaryUploader(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret, cfg.UploadFolder)
	if err != nil {
		slog.Warn("Cloudinaryの初期化に失敗しました。肖像はプレースホルダーになります", "error", err)
		return nil
	}
	return media
}

// initializeStore はスプレッドシート保管庫を初期化します。
// 未設定・初期化失敗のどちらも nil を返し、保管工程はスキップに縮退します。
func initializeStore(ctx context.Context, cfg config.Config) vault.RecordStore {
	if !cfg.VaultConfigured() {
		slog.Warn("保管庫が未設定です。レコードは保存されません")
		return nil
	}

	store, err := vault.NewSheetsStore(ctx, cfg.ServiceAccountFile, cfg.SheetID, cfg.SheetRange, cfg.SheetGID)
	if err != nil {
		slog.Warn("保管庫の初期化に失敗しました。レコードは保存されません", "error", err)
		return nil
	}
	return store
}
