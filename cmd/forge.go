package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shouni/npc-forge-kit/pkg/config"
	"github.com/shouni/npc-forge-kit/pkg/workflow"

	"github.com/spf13/cobra"
)

var (
	forgeConcept   string
	forgeTone      string
	forgeReference string
	forgeSeed      int64
)

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "NPC を 1 体鍛造し、結果のレコードを JSON で出力します",
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

		req := workflow.ForgeRequest{
			Concept:      forgeConcept,
			Tone:         forgeTone,
			ReferenceURL: forgeReference,
		}
		if cmd.Flags().Changed("seed") {
			req.Seed = &forgeSeed
		}

		result, err := manager.Forge().Run(ctx, req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	forgeCmd.Flags().StringVar(&forgeConcept, "concept", "", "NPC の概念（必須）")
	forgeCmd.Flags().StringVar(&forgeTone, "tone", "", "トーン名（必須）")
	forgeCmd.Flags().StringVar(&forgeReference, "reference", "", "面影を引き継ぐ前回の肖像 URL")
	forgeCmd.Flags().Int64Var(&forgeSeed, "seed", 0, "肖像生成の乱数シード")
	_ = forgeCmd.MarkFlagRequired("concept")
	_ = forgeCmd.MarkFlagRequired("tone")

	rootCmd.AddCommand(forgeCmd)
}
