package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchQuotes_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"ccy":"USD","base_ccy":"UAH","buy":"41.00"},
			{"ccy":"EUR","base_ccy":"UAH","buy":"47.00"}
		]`))
	}))
	defer server.Close()

	sut := NewClient(server.URL, time.Second)
	quotes, err := sut.FetchQuotes(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "USD", quotes[0].Ccy)
	assert.Equal(t, "UAH", quotes[0].BaseCcy)
	assert.Equal(t, 41.0, quotes[0].Buy)
}

func TestFetchQuotes_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sut := NewClient(server.URL, time.Second)
	_, err := sut.FetchQuotes(context.Background())
	require.ErrorContains(t, err, "status 500")
}

func TestFetchQuotes_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	sut := NewClient(server.URL, time.Second)
	_, err := sut.FetchQuotes(context.Background())
	require.ErrorContains(t, err, "decode rates payload")
}

func TestFetchQuotes_BreakerOpensOnRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sut := NewClient(server.URL, time.Second)

	// gobreaker trips after more than five consecutive failures.
	for i := 0; i < 6; i++ {
		_, err := sut.FetchQuotes(context.Background())
		require.Error(t, err)
	}

	before := hits.Load()
	_, err := sut.FetchQuotes(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, hits.Load(), "open breaker must not reach the feed")
}
