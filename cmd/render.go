package main

import (
	"context"
	"os"
	"pagesmith/internal/config"
	"pagesmith/pkg/logger"
	"pagesmith/pkg/sitegen"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// renderCommand constructs the 'render' subcommand that generates the site
// files for a brief and writes them to a local directory, without publishing.
func renderCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generates site files for a brief into a local directory",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			task, _ := cmd.Flags().GetString("task")
			brief, _ := cmd.Flags().GetString("brief")
			outDir, _ := cmd.Flags().GetString("output")

			site, err := getGenerator(ctx, cfg).Generate(ctx, sitegen.Request{
				Task:  task,
				Round: 1,
				Brief: brief,
			})
			if err != nil {
				logger.Fatal(ctx, "could not generate site", zap.Error(err))
			}

			for path, content := range site.Files {
				target := filepath.Join(outDir, path)
				if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
					logger.Fatal(ctx, "could not create output directory", zap.Error(err))
				}
				if err := os.WriteFile(target, content, 0o600); err != nil {
					logger.Fatal(ctx, "could not write site file", zap.Error(err))
				}
			}

			logger.Info(ctx, "site rendered",
				zap.String("dir", outDir),
				zap.Int("files", len(site.Files)))
		},
	}

	cmd.Flags().String("task", "captcha-solver", "Task slug")
	cmd.Flags().String("brief", "", "Task brief")
	cmd.Flags().StringP("output", "o", "site", "Output directory")

	return cmd
}
