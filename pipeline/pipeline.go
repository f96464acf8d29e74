package pipeline

import (
	"context"
	"errors"
	"fmt"

	"cafe-scraper/config"
	"cafe-scraper/models"
	"cafe-scraper/services"
	"cafe-scraper/storage"
	"cafe-scraper/utils"
)

// Decider answers the operator questions the pipeline asks.
type Decider interface {
	// RedoLinks is asked when a link file already exists.
	RedoLinks(path string) bool
	// ChooseFilename may replace the name the link file is saved under.
	ChooseFilename(current string) string
	// ConfirmRestart is asked when earlier output exists and extraction
	// would resume at resumeIndex.
	ConfirmRestart(resumeIndex int) bool
	// ConfirmRedoAll is asked when every link has already been extracted.
	ConfirmRedoAll(total int) bool
}

// LinkSource produces the ordered cafe links.
type LinkSource interface {
	Collect(ctx context.Context) ([]string, error)
}

// LinkSourceFactory starts a link source and returns a function releasing it.
// It is only called when links actually have to be collected.
type LinkSourceFactory func(ctx context.Context) (LinkSource, func(), error)

// RecordExtractor builds a record from one cafe page.
type RecordExtractor interface {
	Extract(ctx context.Context, page string, ordinal int, link string) (*models.CafeRecord, error)
}

// WriterOpener opens the output table for appending.
type WriterOpener func(path string) (storage.RecordWriter, error)

// Pipeline sequences link collection and record extraction. It runs strictly
// one link at a time.
type Pipeline struct {
	cfg        *config.Config
	logger     *utils.Logger
	decider    Decider
	pages      services.PageSource
	extractor  RecordExtractor
	pacer      *utils.Pacer
	openWriter WriterOpener
}

// New creates a Pipeline.
func New(cfg *config.Config, logger *utils.Logger, decider Decider, pages services.PageSource,
	extractor RecordExtractor, pacer *utils.Pacer, openWriter WriterOpener) *Pipeline {
	if openWriter == nil {
		openWriter = func(path string) (storage.RecordWriter, error) {
			return storage.OpenCSVWriter(path)
		}
	}
	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		decider:    decider,
		pages:      pages,
		extractor:  extractor,
		pacer:      pacer,
		openWriter: openWriter,
	}
}

// Run collects links if needed, then extracts every link not yet recorded.
func (p *Pipeline) Run(ctx context.Context, newSource LinkSourceFactory) (models.RunSummary, error) {
	_, links, err := p.EnsureLinks(ctx, newSource)
	if err != nil {
		return models.RunSummary{}, err
	}
	return p.ExtractAll(ctx, links)
}

// EnsureLinks returns the link list, reusing the link file when it exists and
// the operator does not ask to redo it. The returned path is where the links
// are stored.
func (p *Pipeline) EnsureLinks(ctx context.Context, newSource LinkSourceFactory) (string, []string, error) {
	path := p.cfg.LinksFile

	if storage.Exists(path) {
		p.logger.Info("[pipeline] File %q with cafe links already created", path)
		if !p.decider.RedoLinks(path) {
			links, err := storage.ReadLinks(path)
			if err != nil {
				return "", nil, err
			}
			p.logger.Info("[pipeline] Reusing %d links from %s", len(links), path)
			return path, links, nil
		}
		if err := storage.Remove(path); err != nil {
			return "", nil, err
		}
		p.logger.Info("[pipeline] Previous cafe links file deleted")
	}

	source, release, err := newSource(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("pipeline: start link collection: %w", err)
	}
	defer release()

	links, err := source.Collect(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(links) == 0 {
		return "", nil, fmt.Errorf("pipeline: collection: %w", storage.ErrNoLinks)
	}

	path = p.decider.ChooseFilename(path)
	if err := storage.WriteLinks(path, links); err != nil {
		return "", nil, err
	}
	p.logger.Info("[pipeline] Cafe links saved to file: %s", path)
	return path, links, nil
}

// ResumePoint works out where extraction starts. done is true when there is
// nothing left to extract and the operator declined to start over.
func (p *Pipeline) ResumePoint(total int) (start int, done bool, err error) {
	out := p.cfg.OutputFile
	if !storage.Exists(out) {
		return 0, false, nil
	}

	start, err = storage.ResumeIndex(out)
	if err != nil {
		return 0, false, err
	}
	p.logger.Info("[pipeline] Cafe CSV data previously exists")

	if start >= total {
		p.logger.Info("[pipeline] All cafe information already extracted")
		if !p.decider.ConfirmRedoAll(total) {
			return start, true, nil
		}
		if err := storage.Remove(out); err != nil {
			return 0, false, err
		}
		return 0, false, nil
	}

	p.logger.Info("[pipeline] Information extraction will continue from link number: %d", start)
	if p.decider.ConfirmRestart(start) {
		if err := storage.Remove(out); err != nil {
			return 0, false, err
		}
		p.logger.Info("[pipeline] Saved CSV data deleted, restarting from the first link")
		return 0, false, nil
	}
	return start, false, nil
}

// ExtractAll resolves the resume point and extracts the remaining links.
func (p *Pipeline) ExtractAll(ctx context.Context, links []string) (models.RunSummary, error) {
	start, done, err := p.ResumePoint(len(links))
	if err != nil {
		return models.RunSummary{}, err
	}
	if done {
		return models.RunSummary{StartIndex: start, EndIndex: start, TotalLinks: len(links)}, nil
	}
	return p.Extract(ctx, links, start)
}

// Extract processes links[start:] in order. The record for links[i] gets ID
// i+1. A link whose page cannot produce a record is logged and skipped; the
// index still advances. Any other failure stops the run, and the next run
// resumes after the last written record.
func (p *Pipeline) Extract(ctx context.Context, links []string, start int) (models.RunSummary, error) {
	summary := models.RunSummary{StartIndex: start, EndIndex: start, TotalLinks: len(links)}

	writer, err := p.openWriter(p.cfg.OutputFile)
	if err != nil {
		return summary, err
	}
	defer writer.Close()

	for i := start; i < len(links); i++ {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("pipeline: stopped at link %d: %w", i, err)
		}

		ordinal := i + 1
		record, err := p.process(ctx, links[i], ordinal)
		switch {
		case errors.Is(err, services.ErrRecordUnavailable):
			p.logger.Warn("[pipeline] Cafe %d unavailable: %v", ordinal, err)
			summary.Skipped++
		case err != nil:
			return summary, err
		default:
			if err := writer.Append(record); err != nil {
				return summary, err
			}
			summary.Written++
		}
		summary.EndIndex = ordinal

		p.logger.Info("[pipeline] %d/%d links processed", ordinal, len(links))
		p.pacer.Wait("between records", p.cfg.RecordDelay)
	}

	return summary, nil
}

func (p *Pipeline) process(ctx context.Context, link string, ordinal int) (*models.CafeRecord, error) {
	page, err := p.pages.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	return p.extractor.Extract(ctx, page, ordinal, link)
}
