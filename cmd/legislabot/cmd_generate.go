package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DanieelRC/LegislaBot/internal/application/bill"
	"github.com/DanieelRC/LegislaBot/internal/application/seed"
	"github.com/DanieelRC/LegislaBot/internal/wire"
)

var (
	generateTopic string
	generateSave  bool
	generateOut   string
)

// generateCmd 运行三阶段生成
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a bill for a topic",
	Long: `Run research, drafting and refinement for a topic and print the bill.

With --save the result is also stored as a draft.`,
	RunE: runGenerate,
}

// seedCmd 写入示例法案与默认设置
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert example bills and default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCore(cmd, func(ctx context.Context, core *wire.Core) error {
			data, err := seed.Default()
			if err != nil {
				return err
			}
			res, err := core.Seeder.Run(ctx, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "examples: %d, settings: %d\n", res.Examples, res.Settings)
			return nil
		})
	},
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return withCore(cmd, func(ctx context.Context, core *wire.Core) error {
		out, err := core.Generator.Generate(ctx, generateTopic, generateSave)
		if err != nil && out == nil {
			return bill.ToAppError(err)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: bill generated but the draft could not be saved: %v\n", err)
		}

		if generateOut != "" {
			if err := os.WriteFile(generateOut, []byte(out.Content), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", generateOut)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), out.Content)
		}
		if out.DraftID != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "saved draft %d: %s\n", *out.DraftID, out.Title)
		}
		return nil
	})
}
