package rates

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"golang.org/x/sync/singleflight"
)

// RefreshInterval is how often the live feed is polled. Not user
// controlled.
const RefreshInterval = 6 * time.Hour

// Cache holds the last good rate table. Readers always get an immediate
// answer: the fallback table before the first successful refresh, the
// previous table after a failed one. The table is replaced wholesale
// under the lock, never mutated per key.
type Cache struct {
	source Source

	mu    sync.RWMutex
	table domain.RateTable

	sfg singleflight.Group // collapses concurrent refreshes
}

func NewCache(source Source) *Cache {
	return &Cache{
		source: source,
		table:  domain.FallbackRates(),
	}
}

// Current returns a copy of the present rate table. It never fails.
func (c *Cache) Current() domain.RateTable {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table := make(domain.RateTable, len(c.table))
	for ccy, rate := range c.table {
		table[ccy] = rate
	}
	return table
}

// Refresh fetches the feed and swaps in a new table. Failures are soft:
// they are logged, the previous table stays, and nil is returned so that
// no caller ever fails because the feed was down.
func (c *Cache) Refresh(ctx context.Context) error {
	_, _, _ = c.sfg.Do("refresh", func() (interface{}, error) {
		table, err := c.buildTable(ctx)
		if err != nil {
			log.Printf("rates refresh failed, keeping previous table: %v", err)
			return nil, nil
		}

		c.mu.Lock()
		c.table = table
		c.mu.Unlock()
		log.Printf("rates refreshed: %v", table)
		return nil, nil
	})
	return nil
}

// Run refreshes once at start and then on every tick until ctx is done.
func (c *Cache) Run(ctx context.Context) {
	_ = c.Refresh(ctx)

	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = c.Refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// buildTable turns feed quotes into a complete rate table. The feed
// quotes base units per foreign unit, the table stores the inverse, so
// base * table[ccy] yields the display amount. A table missing any
// supported currency is rejected as a whole.
func (c *Cache) buildTable(ctx context.Context) (domain.RateTable, error) {
	quotes, err := c.source.FetchQuotes(ctx)
	if err != nil {
		return nil, err
	}

	quoted := make(map[string]float64, len(quotes))
	for _, q := range quotes {
		if q.BaseCcy != domain.BaseCurrency {
			continue
		}
		quoted[q.Ccy] = q.Buy
	}

	table := domain.RateTable{domain.BaseCurrency: 1}
	for _, ccy := range domain.SupportedCurrencies {
		if ccy == domain.BaseCurrency {
			continue
		}
		buy, ok := quoted[ccy]
		if !ok {
			return nil, fmt.Errorf("feed is missing currency %s", ccy)
		}
		if buy <= 0 {
			return nil, fmt.Errorf("feed quotes non-positive rate %v for %s", buy, ccy)
		}
		table[ccy] = 1 / buy
	}

	return table, nil
}

// ToBase converts a display-currency amount into the base currency using
// the given table. The second return is false when the currency is not in
// the table or has an invalid rate; the caller decides how to degrade.
func ToBase(table domain.RateTable, amount float64, ccy string) (float64, bool) {
	rate, ok := table[ccy]
	if !ok || rate <= 0 {
		return 0, false
	}
	return amount / rate, true
}

// FromBase converts a base-currency amount into the display currency,
// falling back to the identity rate for unknown currencies.
func FromBase(table domain.RateTable, amount float64, ccy string) float64 {
	rate, ok := table[ccy]
	if !ok || rate <= 0 {
		return amount
	}
	return amount * rate
}
