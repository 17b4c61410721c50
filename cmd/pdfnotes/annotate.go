package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-notes/internal/annotate"
	"github.com/thywilljoshua/pdf-notes/internal/config"
)

func annotateCmd() *cobra.Command {
	var s settings
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "annotate <pdf>",
		Short: "Write a summary and a copy of the PDF with a note on every page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			res, err := annotate.Run(cmd.Context(), args[0], cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	bindSummaryFlags(cmd, &s)
	bindRenderFlags(cmd, &s)
	cmd.Flags().StringVar(&s.cfg.SummaryMarkdown, "summary", d.SummaryMarkdown, "Markdown summary to write (empty to skip)")
	cmd.Flags().StringVar(&s.cfg.SummaryJSON, "summary-json", "", "JSON summary to write")
	cmd.Flags().StringVar(&s.cfg.SummaryYAML, "summary-yaml", "", "YAML summary to write")
	return cmd
}
