package commands

import (
	"github.com/spf13/cobra"

	"cafe-scraper/storage"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints field coverage and per-city counts of the output CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)

		records, err := storage.ReadRecords(a.cfg.OutputFile)
		if err != nil {
			a.logger.Error("Cannot read %s: %v", a.cfg.OutputFile, err)
			return err
		}

		svc := a.reporter()
		svc.Print(cmd.OutOrStdout(), svc.Generate(records))
		return nil
	},
}
