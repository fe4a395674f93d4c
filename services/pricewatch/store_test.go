package pricewatch

import (
	"context"
	"testing"
	"time"

	"beerwatch-backend/lib/testutil"
	"beerwatch-backend/services/pricewatch/db"

	"github.com/stretchr/testify/require"
)

func TestStoreIdempotence(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/pricewatch",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	obs := Observation{Date: "2026-01-01", Name: "Lager A", Price: 3.49}

	outcome, err := store.Insert(ctx, obs)
	require.NoError(t, err)
	require.Equal(t, OutcomeInserted, outcome)

	outcome, err = store.Insert(ctx, obs)
	require.NoError(t, err)
	require.Equal(t, OutcomeDuplicate, outcome)

	all, err := store.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Lager A", all[0].Name)
	require.Equal(t, 3.49, all[0].Price)
	require.Equal(t, Identity("2026-01-01", "Lager A", 3.49), all[0].Hash)
}

func TestStoreRecentDates(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/pricewatch",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	for _, date := range []string{"2026-01-03", "2026-01-01", "2026-01-02"} {
		_, err := store.Insert(ctx, Observation{Date: date, Name: "Lager A", Price: 3.49})
		require.NoError(t, err)
	}

	dates, err := store.RecentDates(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"2026-01-02", "2026-01-03"}, dates)
}
