package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collects the cafe links (unless already saved) and extracts every cafe not yet in the output.",
	RunE:  runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	a.logger.Info("=== Cafe scraper starting ===")
	a.logger.Info("Config: site: %s | links: %s | output: %s | delay: %v",
		a.cfg.SiteURL, a.cfg.LinksFile, a.cfg.OutputFile, a.cfg.RecordDelay)

	sum, err := a.pipeline().Run(cmd.Context(), a.linkSource)
	a.reporter().PrintSummary(cmd.OutOrStdout(), sum)
	if err != nil {
		a.logger.Error("Run stopped: %v", err)
		return err
	}

	a.logger.Info("Done. Cafe data -> %s", a.cfg.OutputFile)
	return nil
}
