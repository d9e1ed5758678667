// Package cmd は npc-forge の CLI エントリポイントです。
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "npc-forge",
	Short: "NPC の鍛造と保管庫アーカイブを扱う CLI です",
	Long: `npc-forge は、概念とトーンから NPC のキャラクターシートと肖像を生成し、
保管庫（Google スプレッドシート）に記録するツールキットです。`,
	SilenceUsage: true,
}

// Execute はルートコマンドを実行します。
func Execute() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
