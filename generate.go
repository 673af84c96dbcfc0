package salesdash

import (
	"fmt"
	"math/rand"
)

// Generate builds rowCount synthetic records from a generator seeded with seed.
// The same rowCount and seed always produce the same records.
func Generate(rowCount int, seed int64) ([]SalesRecord, error) {
	return GenerateRand(rowCount, rand.New(rand.NewSource(seed)))
}

// GenerateRand is Generate with a caller-supplied generator. Regions are drawn
// for every row first, then products, then amounts.
func GenerateRand(rowCount int, rng *rand.Rand) ([]SalesRecord, error) {
	if rowCount < MinRows || rowCount > MaxRows {
		return nil, fmt.Errorf("row count %d outside [%d, %d]: %w", rowCount, MinRows, MaxRows, ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidParameter)
	}

	records := make([]SalesRecord, rowCount)
	for i := range records {
		records[i].InvoiceDate = StartDate.AddDate(0, 0, i)
	}
	for i := range records {
		records[i].Region = regions[rng.Intn(len(regions))]
	}
	for i := range records {
		records[i].Product = products[rng.Intn(len(products))]
	}
	for i := range records {
		records[i].SalesAmount = MinAmount + rng.Int63n(MaxAmount-MinAmount)
	}
	return records, nil
}
