package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Collects the cafe links into the link file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)

		path, links, err := a.pipeline().EnsureLinks(cmd.Context(), a.linkSource)
		if err != nil {
			a.logger.Error("Link collection failed: %v", err)
			return err
		}

		a.logger.Info("%d cafe links in %s", len(links), path)
		return nil
	},
}
