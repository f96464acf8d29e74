package commands

import (
	"context"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	linksFile string
	output    string
	verbose   bool
	yes       bool
	no        bool
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "cafe-scraper",
	Short: "cafe-scraper collects cafe pages from a directory site and extracts them into a resumable CSV.",
	Long: "cafe-scraper collects the cafe page links from the directory's landing page, then visits each\n" +
		"link and appends one CSV row per cafe. Interrupted runs resume after the last written row.",
	SilenceUsage: true,
	RunE:         runPipeline,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.linksFile, "links-file", "", "Link list file (overrides LINKS_FILE).")
	pf.StringVar(&flags.output, "output", "", "Output CSV file (overrides OUTPUT_FILE).")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Print every extracted field.")
	pf.BoolVarP(&flags.yes, "yes", "y", false, "Answer yes to every prompt (redo links, restart extraction).")
	pf.BoolVar(&flags.no, "no", false, "Answer no to every prompt (reuse links, resume extraction).")
	rootCmd.MarkFlagsMutuallyExclusive("yes", "no")
}

// ExecuteContext runs the command line with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
