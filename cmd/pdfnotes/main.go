package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "pdfnotes",
		Short:         "Summarize a PDF and annotate its pages with notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(annotateCmd(), summarizeCmd(), renderCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
