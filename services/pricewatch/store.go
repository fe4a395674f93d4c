package pricewatch

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/pricewatch")

type InsertOutcome int

const (
	OutcomeInserted InsertOutcome = iota
	// the identity token already exists in the store. routine on re-runs,
	// never an error for the caller.
	OutcomeDuplicate
)

// Store is the append-only table of price observations, keyed by the
// identity hash.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Insert writes one observation, relying on the unique constraint on the
// hash column as the single check-and-insert point. concurrent crawls need
// no further locking.
func (s Store) Insert(ctx context.Context, obs Observation) (InsertOutcome, error) {
	ctx, span := tracer.Start(ctx, "Insert")
	defer span.End()

	if obs.Hash == "" {
		obs.Hash = Identity(obs.Date, obs.Name, obs.Price)
	}
	span.SetAttributes(
		attribute.String("hash", obs.Hash),
		attribute.String("name", obs.Name),
	)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO prisma (hash, date, name, price) VALUES (?, ?, ?, ?)`,
		obs.Hash, obs.Date, obs.Name, obs.Price,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			span.AddEvent("duplicate")
			return OutcomeDuplicate, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return OutcomeInserted, nil
}

func (s Store) QueryAll(ctx context.Context) ([]Observation, error) {
	ctx, span := tracer.Start(ctx, "QueryAll")
	defer span.End()

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT hash, date, name, price FROM prisma ORDER BY date, name, id`,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var obs Observation
		err := rows.Scan(&obs.Hash, &obs.Date, &obs.Name, &obs.Price)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}

// RecentDates returns up to n distinct snapshot dates, ascending.
func (s Store) RecentDates(ctx context.Context, n int) ([]string, error) {
	ctx, span := tracer.Start(ctx, "RecentDates")
	defer span.End()

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT DISTINCT date FROM prisma ORDER BY date DESC LIMIT ?`,
		n,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		err := rows.Scan(&date)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	slices.Reverse(dates)
	return dates, rows.Err()
}
