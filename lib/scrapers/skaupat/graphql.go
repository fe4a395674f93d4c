package skaupat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"beerwatch-backend/lib/pricing"
	"beerwatch-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const productsOperation = "RemoteFilteredProducts"

type remoteProductsVariables struct {
	From        int    `json:"from"`
	Limit       int    `json:"limit"`
	QueryString string `json:"queryString"`
	Slug        string `json:"slug"`
}

type remoteProductsResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Data struct {
		Store struct {
			Products struct {
				Total int `json:"total"`
				Items []struct {
					Name  string `json:"name"`
					Price struct {
						Current float64 `json:"current"`
					} `json:"price"`
				} `json:"items"`
			} `json:"products"`
		} `json:"store"`
	} `json:"data"`
}

// APISource reads the same catalogue through the storefront's GraphQL
// endpoint. the query itself lives server-side, requests only reference it
// by its persisted-query hash, so a deploy that rotates the hash shows up
// as an errors payload rather than bad data.
type APISource struct {
	client    *resty.Client
	endpoint  string
	slug      string
	queryHash string
	limit     int
}

type APIConfig struct {
	Endpoint  string `json:"endpoint"`
	Slug      string `json:"slug"`
	QueryHash string `json:"query_hash"`
	// page size for the from/limit offset pagination, defaults to 24
	Limit int `json:"limit"`
}

func NewAPISource(config APIConfig) *APISource {
	limit := config.Limit
	if limit <= 0 {
		limit = 24
	}

	client := resty.New().
		SetHeaders(browserHeaders).
		SetTimeout(time.Second * 12)
	restyutil.InstrumentClient(client, tracer)

	return &APISource{
		client:    client,
		endpoint:  config.Endpoint,
		slug:      config.Slug,
		queryHash: config.QueryHash,
		limit:     limit,
	}
}

func (s *APISource) Fetch(ctx context.Context, page int) (Batch, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", productsOperation))
	defer span.End()

	from := (page - 1) * s.limit
	span.SetAttributes(
		attribute.Int("from", from),
		attribute.Int("limit", s.limit),
	)

	variables, err := json.Marshal(remoteProductsVariables{
		From:        from,
		Limit:       s.limit,
		QueryString: "",
		Slug:        s.slug,
	})
	if err != nil {
		return Batch{}, err
	}
	extensions := fmt.Sprintf(
		`{"persistedQuery":{"version":1,"sha256Hash":"%s"}}`,
		s.queryHash,
	)

	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("operationName", productsOperation).
		SetQueryParam("variables", string(variables)).
		SetQueryParam("extensions", extensions).
		Get(s.endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Batch{}, err
	}
	if res.IsError() {
		err := fmt.Errorf("query products from=%d: status %s", from, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "non-success status")
		return Batch{}, err
	}

	var decoded remoteProductsResponse
	err = json.Unmarshal(res.Body(), &decoded)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return Batch{}, fmt.Errorf("%w: %v", ErrUpstreamProtocol, err)
	}
	if len(decoded.Errors) > 0 {
		err := fmt.Errorf("%w: %s", ErrUpstreamProtocol, decoded.Errors[0].Message)
		span.RecordError(err)
		span.SetStatus(codes.Error, "graphql errors payload")
		return Batch{}, err
	}

	items := decoded.Data.Store.Products.Items
	candidates := make([]Candidate, len(items))
	for i, item := range items {
		candidates[i] = Candidate{
			Name:      item.Name,
			PriceText: pricing.Format(item.Price.Current),
		}
	}

	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return Batch{
		Page:       page,
		Candidates: candidates,
		HasNext:    len(items) == s.limit,
	}, nil
}
