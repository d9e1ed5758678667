package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/npc-forge-kit/pkg/config"
	"github.com/shouni/npc-forge-kit/pkg/web"
	"github.com/shouni/npc-forge-kit/pkg/workflow"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "鍛造とアーカイブの JSON API サーバーを起動します",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		manager, err := workflow.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
		}

		srv, err := web.NewServer(manager.Forge(), manager.Store())
		if err != nil {
			return err
		}

		slog.Info("サーバーを起動します", "addr", cfg.ListenAddr)
		return srv.Start(cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
