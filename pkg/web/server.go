// Package web は鍛造とアーカイブ操作を JSON API として公開します。
package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shouni/npc-forge-kit/pkg/domain"
	"github.com/shouni/npc-forge-kit/pkg/uploader"
	"github.com/shouni/npc-forge-kit/pkg/utils"
	"github.com/shouni/npc-forge-kit/pkg/vault"
	"github.com/shouni/npc-forge-kit/pkg/workflow"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TagsRequest はタグ書き換えのリクエストボディです。空文字列は消去を意味します。
type TagsRequest struct {
	Campaign string `json:"campaign"`
	Faction  string `json:"faction"`
}

// ArchiveRow はアーカイブ一覧の 1 行です。Index は後続のタグ更新・削除に使う行参照です。
type ArchiveRow struct {
	Index        int                    `json:"index"`
	ThumbnailURL string                 `json:"thumbnail_url"`
	Record       domain.CharacterRecord `json:"record"`
}

// Server は鍛造と保管庫を REST で公開する HTTP サーバーです。
type Server struct {
	echo  *echo.Echo
	forge *workflow.Forge
	store vault.RecordStore
}

// NewServer はルーティング済みのサーバーを組み立てるのだ。
// store が nil の場合、アーカイブ系エンドポイントは 503 を返します。
func NewServer(forge *workflow.Forge, store vault.RecordStore) (*Server, error) {
	if forge == nil {
		return nil, fmt.Errorf("forge は必須です")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover(), middleware.CORS())

	s := &Server{
		echo:  e,
		forge: forge,
		store: store,
	}

	s.setupRoutes()
	return s, nil
}

// Start はサーバーを起動し、終了までブロックします。
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	api.POST("/forge", s.handleForge)

	api.GET("/archive", s.handleArchiveList)
	api.GET("/archive/tags", s.handleArchiveTags)
	api.PUT("/archive/:row/tags", s.handleUpdateTags)
	api.DELETE("/archive/:row", s.handleDelete)
}

// handleForge は鍛造を 1 回実行し、レコードと各工程の結果を返します。
// 書記の失敗は 502、レート制限の待機不能は 429、入力不備は 400 です。
func (s *Server) handleForge(c echo.Context) error {
	req := new(workflow.ForgeRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := s.forge.Run(c.Request().Context(), *req)
	if err != nil {
		if result.Scribe.Status == workflow.StatusFailed {
			return c.JSON(http.StatusBadGateway, result)
		}
		if errors.Is(err, workflow.ErrRateLimited) {
			return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

// handleArchiveList は保管庫のスナップショットを検索条件で絞り込んで返します。
func (s *Server) handleArchiveList(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "保管庫が未設定です")
	}

	records, err := s.store.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	entries := vault.FilterArchive(records, vault.Query{
		Text:     c.QueryParam("q"),
		Campaign: c.QueryParam("campaign"),
		Faction:  c.QueryParam("faction"),
	})

	rows := make([]ArchiveRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ArchiveRow{
			Index:        entry.Index,
			ThumbnailURL: uploader.ThumbnailURL(entry.Record.DisplayImageURL()),
			Record:       entry.Record,
		})
	}

	return c.JSON(http.StatusOK, rows)
}

// handleArchiveTags はフィルター候補となるタグ一覧を返します。
func (s *Server) handleArchiveTags(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "保管庫が未設定です")
	}

	records, err := s.store.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, vault.DistinctTags(records))
}

// handleUpdateTags は指定行のタグ 2 列だけを書き換えます。
func (s *Server) handleUpdateTags(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "保管庫が未設定です")
	}

	index, err := rowParam(c)
	if err != nil {
		return err
	}

	req := new(TagsRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign := utils.NormalizeTag(req.Campaign)
	faction := utils.NormalizeTag(req.Faction)
	if err := s.store.UpdateTags(c.Request().Context(), index, campaign, faction); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// handleDelete は指定行を保管庫から完全に削除します。
func (s *Server) handleDelete(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "保管庫が未設定です")
	}

	index, err := rowParam(c)
	if err != nil {
		return err
	}

	if err := s.store.Delete(c.Request().Context(), index); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// rowParam は :row パラメータを 0 以上の行参照として解釈します。
func rowParam(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("row"))
	if err != nil || index < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "row は 0 以上の整数で指定してください")
	}
	return index, nil
}
