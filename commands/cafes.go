package commands

import (
	"github.com/spf13/cobra"

	"cafe-scraper/storage"
)

func init() {
	rootCmd.AddCommand(cafesCmd)
}

var cafesCmd = &cobra.Command{
	Use:   "cafes",
	Short: "Extracts the cafes listed in an existing link file, resuming after the last written row.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)

		links, err := storage.ReadLinks(a.cfg.LinksFile)
		if err != nil {
			a.logger.Error("Cannot read links: %v", err)
			return err
		}

		sum, err := a.pipeline().ExtractAll(cmd.Context(), links)
		a.reporter().PrintSummary(cmd.OutOrStdout(), sum)
		if err != nil {
			a.logger.Error("Extraction stopped: %v", err)
			return err
		}
		return nil
	},
}
