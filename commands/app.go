package commands

import (
	"context"

	"github.com/spf13/cobra"

	"cafe-scraper/config"
	"cafe-scraper/pipeline"
	"cafe-scraper/prompt"
	"cafe-scraper/scraper/cafes"
	"cafe-scraper/services"
	"cafe-scraper/utils"
)

// app wires the components for one command invocation.
type app struct {
	cfg     *config.Config
	logger  *utils.Logger
	decider pipeline.Decider
	pacer   *utils.Pacer
}

func newApp(cmd *cobra.Command) *app {
	cfg := config.Load()
	if flags.linksFile != "" {
		cfg.LinksFile = flags.linksFile
	}
	if flags.output != "" {
		cfg.OutputFile = flags.output
	}

	var decider pipeline.Decider
	verbose := cfg.Verbose || flags.verbose
	switch {
	case flags.yes:
		decider = prompt.Fixed{Answer: true}
	case flags.no:
		decider = prompt.Fixed{Answer: false}
	default:
		console := prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
		if !verbose && cmd.Name() != "links" && cmd.Name() != "report" {
			verbose = console.AskVerbose()
		}
		decider = console
	}

	logger := utils.NewLogger(verbose)
	return &app{
		cfg:     cfg,
		logger:  logger,
		decider: decider,
		pacer:   utils.NewPacer(logger, nil),
	}
}

func (a *app) pipeline() *pipeline.Pipeline {
	geocoder := services.NewGeocoder(a.cfg, a.logger, a.pacer)
	extractor := services.NewExtractor(a.cfg, a.logger, geocoder)
	return pipeline.New(a.cfg, a.logger, a.decider, services.NewPageFetcher(), extractor, a.pacer, nil)
}

// linkSource starts Chrome and returns a collector driving it.
func (a *app) linkSource(ctx context.Context) (pipeline.LinkSource, func(), error) {
	browser, err := cafes.NewChromeBrowser(a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return cafes.NewCollector(a.cfg, a.logger, browser, a.pacer), browser.Close, nil
}

func (a *app) reporter() *services.ReportService {
	return services.NewReportService(a.logger)
}
