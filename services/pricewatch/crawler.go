package pricewatch

import (
	"context"
	"log/slog"
	"time"

	"beerwatch-backend/lib/pricing"
	"beerwatch-backend/lib/scrapers/skaupat"
	"beerwatch-backend/lib/timezone"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Source yields one page worth of raw candidates at a time. pages are
// 1-based; offset-paginated sources translate internally.
type Source interface {
	Fetch(ctx context.Context, page int) (skaupat.Batch, error)
}

type StopReason string

const (
	StopEmptyPage    StopReason = "empty page"
	StopNoNewRecords StopReason = "no new records"
	StopNoNextPage   StopReason = "no next page"
	StopPageLimit    StopReason = "page limit"
)

type CrawlerOptions struct {
	// snapshot date in ISO form, defaults to today in the store's timezone.
	// several runs under the same date collapse into one logical snapshot.
	Date string
	// hard ceiling on fetched pages, defaults to 25. a misbehaving
	// pagination signal must never turn the crawl into an endless loop.
	MaxPages int
	// mandatory pause between page fetches, defaults to 3100ms. this is
	// the rate limit the upstream tolerates, do not lower it.
	Delay time.Duration
	// ends the crawl when a page past the first inserts nothing new.
	// markup pagination keeps serving the final page for any larger page
	// number, which otherwise reads as endless duplicates.
	StopOnStalePage bool
}

type CrawlResult struct {
	Date       string
	Pages      int
	Inserted   int
	Duplicates int
	Skipped    int
	Reason     StopReason
}

// Crawler drives one sequential pass over a source: fetch a page, validate
// and ingest every candidate on it, then decide whether to advance. item
// failures are skipped, only transport and structural failures abort.
type Crawler struct {
	store  Store
	source Source
	opts   CrawlerOptions
}

func NewCrawler(store Store, source Source, opts CrawlerOptions) *Crawler {
	if opts.Date == "" {
		opts.Date = timezone.Now().Format("2006-01-02")
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 25
	}
	if opts.Delay <= 0 {
		opts.Delay = 3100 * time.Millisecond
	}
	return &Crawler{
		store:  store,
		source: source,
		opts:   opts,
	}
}

func (c *Crawler) Run(ctx context.Context) (CrawlResult, error) {
	ctx, span := tracer.Start(ctx, "Crawl")
	defer span.End()
	span.SetAttributes(attribute.String("date", c.opts.Date))

	result := CrawlResult{Date: c.opts.Date}

	for page := 1; ; page++ {
		if page > c.opts.MaxPages {
			result.Reason = StopPageLimit
			slog.WarnContext(ctx, "crawl hit the page ceiling", "max_pages", c.opts.MaxPages)
			break
		}
		if page > 1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(c.opts.Delay):
			}
		}

		batch, err := c.source.Fetch(ctx, page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "crawl aborted")
			return result, err
		}
		result.Pages++

		if len(batch.Candidates) == 0 {
			result.Reason = StopEmptyPage
			break
		}

		newCount := c.ingest(ctx, batch, &result)
		slog.InfoContext(
			ctx, "page ingested",
			"page", page,
			"candidates", len(batch.Candidates),
			"new", newCount,
		)

		if c.opts.StopOnStalePage && page > 1 && newCount == 0 {
			result.Reason = StopNoNewRecords
			break
		}
		if !batch.HasNext {
			result.Reason = StopNoNextPage
			break
		}
	}

	span.SetAttributes(
		attribute.Int("pages", result.Pages),
		attribute.Int("inserted", result.Inserted),
		attribute.Int("duplicates", result.Duplicates),
		attribute.Int("skipped", result.Skipped),
		attribute.String("reason", string(result.Reason)),
	)
	slog.InfoContext(
		ctx, "crawl finished",
		"date", result.Date,
		"pages", result.Pages,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"skipped", result.Skipped,
		"reason", result.Reason,
	)
	return result, nil
}

func (c *Crawler) ingest(ctx context.Context, batch skaupat.Batch, result *CrawlResult) int {
	newCount := 0
	for _, candidate := range batch.Candidates {
		if candidate.Name == "" {
			result.Skipped++
			continue
		}
		price, ok := pricing.Parse(candidate.PriceText)
		if !ok {
			slog.DebugContext(
				ctx, "unparseable price",
				"name", candidate.Name,
				"price_text", candidate.PriceText,
			)
			result.Skipped++
			continue
		}

		outcome, err := c.store.Insert(ctx, Observation{
			Date:  c.opts.Date,
			Name:  candidate.Name,
			Price: price,
		})
		if err != nil {
			// a broken store write is an item failure from the crawl's point
			// of view, the rest of the page is still worth ingesting
			slog.ErrorContext(ctx, "insert failed", "name", candidate.Name, "err", err)
			result.Skipped++
			continue
		}
		switch outcome {
		case OutcomeInserted:
			result.Inserted++
			newCount++
		case OutcomeDuplicate:
			result.Duplicates++
		}
	}
	return newCount
}
