package salesdash

import "sync"

type cacheKey struct {
	rows int
	seed int64
}

// Cache memoises generated datasets by row count and seed.
type Cache struct {
	mu       sync.Mutex
	datasets map[cacheKey][]SalesRecord
}

func NewCache() *Cache {
	return &Cache{datasets: make(map[cacheKey][]SalesRecord)}
}

// Dataset returns a copy of the dataset for rowCount and seed, generating it
// on first use. Errors are not cached.
func (c *Cache) Dataset(rowCount int, seed int64) ([]SalesRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := cacheKey{rows: rowCount, seed: seed}
	records, ok := c.datasets[k]
	if !ok {
		var err error
		records, err = Generate(rowCount, seed)
		if err != nil {
			return nil, err
		}
		c.datasets[k] = records
	}
	return append([]SalesRecord(nil), records...), nil
}

// Len reports how many datasets are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.datasets)
}
