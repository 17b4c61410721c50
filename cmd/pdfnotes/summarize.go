package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-notes/internal/annotate"
	"github.com/thywilljoshua/pdf-notes/internal/export"
)

func summarizeCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "summarize <pdf>",
		Short: "Print the JSON summary of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			p := annotate.New(cfg, newLogger(cfg))
			_, summary, err := p.Summarize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := export.JSON(summary)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	bindSummaryFlags(cmd, &s)
	return cmd
}
