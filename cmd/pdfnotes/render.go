package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-notes/internal/annotate"
	"github.com/thywilljoshua/pdf-notes/internal/export"
)

func renderCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "render <pdf> <summary.json>",
		Short: "Draw an existing JSON summary onto a PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			summary, err := export.ReadJSON(args[1])
			if err != nil {
				return err
			}
			res, err := annotate.New(cfg, newLogger(cfg)).RenderSummary(cmd.Context(), args[0], summary)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&s.configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&s.envFile, "env-file", ".env", "dotenv file with PDFNOTES_* settings")
	cmd.Flags().StringVar(&s.cfg.LogLevel, "log-level", "info", "log level: debug|info|warn|error")
	bindRenderFlags(cmd, &s)
	return cmd
}
