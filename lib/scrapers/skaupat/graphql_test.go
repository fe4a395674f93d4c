package skaupat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testQueryHash = "71a23e3c0d64c35d4d2a212d60e4176232ba2b132b2116d0544f4d0ea38ba1b1"

func newAPITestServer(t *testing.T, handler func(from, limit int) string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, productsOperation, r.URL.Query().Get("operationName"))
		require.Contains(t, r.URL.Query().Get("extensions"), testQueryHash)

		var variables remoteProductsVariables
		err := json.Unmarshal([]byte(r.URL.Query().Get("variables")), &variables)
		require.NoError(t, err)
		require.Equal(t, "oluet", variables.Slug)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, handler(variables.From, variables.Limit))
	}))
}

func testAPISource(endpoint string, limit int) *APISource {
	return NewAPISource(APIConfig{
		Endpoint:  endpoint,
		Slug:      "oluet",
		QueryHash: testQueryHash,
		Limit:     limit,
	})
}

func TestAPISourceFetch(t *testing.T) {
	server := newAPITestServer(t, func(from, limit int) string {
		require.Equal(t, 2, from)
		require.Equal(t, 2, limit)
		return `{"data":{"store":{"products":{"total":3,"items":[
			{"name":"Karhu Lager","price":{"current":3.49}},
			{"name":"Sandels","price":{"current":4.2}}
		]}}}}`
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	batch, err := testAPISource(server.URL, 2).Fetch(ctx, 2)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 2)
	require.Equal(t, "Karhu Lager", batch.Candidates[0].Name)
	require.Equal(t, "3.49", batch.Candidates[0].PriceText)
	require.Equal(t, "4.20", batch.Candidates[1].PriceText)
	// a full page implies there may be more
	require.True(t, batch.HasNext)
}

func TestAPISourceExhaustion(t *testing.T) {
	server := newAPITestServer(t, func(from, limit int) string {
		return `{"data":{"store":{"products":{"total":0,"items":[]}}}}`
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	batch, err := testAPISource(server.URL, 24).Fetch(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, batch.Candidates)
	require.False(t, batch.HasNext)
}

func TestAPISourceErrorsPayload(t *testing.T) {
	server := newAPITestServer(t, func(from, limit int) string {
		return `{"errors":[{"message":"PersistedQueryNotFound"}]}`
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := testAPISource(server.URL, 24).Fetch(ctx, 1)
	require.ErrorIs(t, err, ErrUpstreamProtocol)
	require.Contains(t, err.Error(), "PersistedQueryNotFound")
}

func TestAPISourceMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>bot wall</html>")
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := testAPISource(server.URL, 24).Fetch(ctx, 1)
	require.ErrorIs(t, err, ErrUpstreamProtocol)
}
