package salesdash

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRowCountAndDates(t *testing.T) {
	for _, n := range []int{MinRows, 51, DefaultRows, 999, MaxRows} {
		records, err := Generate(n, DefaultSeed)
		require.NoError(t, err)
		require.Len(t, records, n)
		assert.Equal(t, StartDate, records[0].InvoiceDate)
		for i := 1; i < len(records); i++ {
			assert.Equal(t, records[i-1].InvoiceDate.AddDate(0, 0, 1), records[i].InvoiceDate, "row %d", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(DefaultRows, DefaultSeed)
	require.NoError(t, err)
	b, err := Generate(DefaultRows, DefaultSeed)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GenerateRand(DefaultRows, rand.New(rand.NewSource(DefaultSeed)))
	require.NoError(t, err)
	assert.Equal(t, a, c)

	other, err := Generate(DefaultRows, DefaultSeed+1)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestGenerateValueDomains(t *testing.T) {
	records, err := Generate(MaxRows, 7)
	require.NoError(t, err)
	for _, r := range records {
		assert.Contains(t, regions, r.Region)
		assert.Contains(t, products, r.Product)
		assert.GreaterOrEqual(t, r.SalesAmount, int64(MinAmount))
		assert.Less(t, r.SalesAmount, int64(MaxAmount))
	}
	// 1000 uniform draws over four values hit all of them
	uregions, err := Unique(records, ByRegion)
	require.NoError(t, err)
	assert.ElementsMatch(t, regions, uregions)
	uproducts, err := Unique(records, ByProduct)
	require.NoError(t, err)
	assert.ElementsMatch(t, products, uproducts)
}

func TestGenerateInvalidRowCount(t *testing.T) {
	for _, n := range []int{-1, 0, MinRows - 1, MaxRows + 1} {
		records, err := Generate(n, DefaultSeed)
		assert.Nil(t, records)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "rows=%d err=%v", n, err)
	}
	_, err := GenerateRand(DefaultRows, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCacheDataset(t *testing.T) {
	c := NewCache()
	a, err := c.Dataset(100, DefaultSeed)
	require.NoError(t, err)
	a[0].Region = "Mars"

	b, err := c.Dataset(100, DefaultSeed)
	require.NoError(t, err)
	want, _ := Generate(100, DefaultSeed)
	assert.Equal(t, want, b)
	assert.Equal(t, 1, c.Len())

	_, err = c.Dataset(100, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = c.Dataset(10, DefaultSeed)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, 2, c.Len())
}
