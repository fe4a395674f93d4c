package skaupat

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"beerwatch-backend/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/scrapers/skaupat")

// the storefront serves a bot wall to clients that do not look like a
// browser, so the crawl presents ordinary desktop headers.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "fi-FI,fi;q=0.9,en;q=0.8",
	"Referer":         "https://www.s-kaupat.fi/",
}

// CatalogueSource scrapes the paged HTML catalogue listing.
type CatalogueSource struct {
	client  *resty.Client
	baseURL *url.URL
}

func NewCatalogueSource(baseURL string) (*CatalogueSource, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetHeaders(browserHeaders).
		SetTimeout(time.Second * 12)
	restyutil.InstrumentClient(client, tracer)

	return &CatalogueSource{
		client:  client,
		baseURL: parsed,
	}, nil
}

func (s *CatalogueSource) pageURL(page int) string {
	if page <= 1 {
		return s.baseURL.String()
	}
	link := *s.baseURL
	query := link.Query()
	query.Set("page", strconv.Itoa(page))
	link.RawQuery = query.Encode()
	return link.String()
}

func (s *CatalogueSource) Fetch(ctx context.Context, page int) (Batch, error) {
	ctx, span := tracer.Start(ctx, "catalogue:Fetch")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	res, err := s.client.R().
		SetContext(ctx).
		Get(s.pageURL(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch catalogue page")
		return Batch{}, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch page %d: status %s", page, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "non-success status")
		return Batch{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Batch{}, err
	}

	candidates, err := ExtractCandidates(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "structural drift")
		return Batch{}, err
	}

	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return Batch{
		Page:       page,
		Candidates: candidates,
		HasNext:    HasNextPage(doc),
	}, nil
}
