package salesdash

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillberg/alog"
)

var duckDBWithData *DuckDB
var duckDBRecords []SalesRecord
var duckDBWithDataOnce sync.Once

func getDuckDBWithData() (*DuckDB, []SalesRecord) {
	duckDBWithDataOnce.Do(func() {
		records, err := Generate(MaxRows, DefaultSeed)
		alog.BailIf(err)
		d, err := OpenDuckDB(context.Background(), records)
		alog.BailIf(err)
		duckDBWithData = d
		duckDBRecords = records
	})
	return duckDBWithData, duckDBRecords
}

var duckSelections = []struct {
	name              string
	regions, products Selection
}{
	{"all", nil, nil},
	{"explicit all", AllRegions(), AllProducts()},
	{"north laptop", NewSelection("North"), NewSelection("Laptop")},
	{"two regions", NewSelection("East", "West"), nil},
	{"two products", nil, NewSelection("Mobile", "Camera")},
	{"empty", NewSelection(), NewSelection()},
	{"empty regions", NewSelection(), nil},
}

func TestDuckDBMatchesGo(t *testing.T) {
	ctx := context.Background()
	d, records := getDuckDBWithData()

	for _, sel := range duckSelections {
		t.Run(sel.name, func(t *testing.T) {
			want := Filter(records, sel.regions, sel.products)

			got, err := d.Filter(ctx, sel.regions, sel.products)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			trend, err := d.AggregateByDate(ctx, sel.regions, sel.products)
			require.NoError(t, err)
			assert.Equal(t, AggregateByDate(want), trend)

			for _, key := range []Key{ByRegion, ByProduct} {
				groups, err := d.AggregateByKey(ctx, sel.regions, sel.products, key)
				require.NoError(t, err)
				wantGroups, err := AggregateByKey(want, key)
				require.NoError(t, err)
				assert.Equal(t, wantGroups, groups)
			}

			summary, err := d.Summarize(ctx, sel.regions, sel.products)
			require.NoError(t, err)
			wantSummary := Summarize(want)
			assert.Equal(t, wantSummary.Rows, summary.Rows)
			assert.Equal(t, wantSummary.Total, summary.Total)
			assert.InDelta(t, wantSummary.Mean, summary.Mean, 0.001)
		})
	}
}

func TestDuckDBInvalidKey(t *testing.T) {
	d, _ := getDuckDBWithData()
	_, err := d.AggregateByKey(context.Background(), nil, nil, Key(5))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDuckDBEmptyLoad(t *testing.T) {
	ctx := context.Background()
	d, err := OpenDuckDB(ctx, nil)
	require.NoError(t, err)
	defer d.Close()

	summary, err := d.Summarize(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestParquetReadableByDuckDB(t *testing.T) {
	records := sampleRecords(t, DefaultRows)
	path := filepath.Join(t.TempDir(), "sales.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteParquet(f, records))
	require.NoError(t, f.Close())

	db, err := sql.Open("duckdb", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var rows, total int64
	var first string
	err = db.QueryRow(fmt.Sprintf(
		"SELECT COUNT(*), CAST(SUM(sales_amount) AS BIGINT), CAST(MIN(invoice_date) AS VARCHAR) FROM '%s'", path,
	)).Scan(&rows, &total, &first)
	require.NoError(t, err)
	assert.EqualValues(t, len(records), rows)
	assert.Equal(t, totalSales(records), total)
	assert.Equal(t, "2024-01-01", first)
}

func BenchmarkGoAggregation(b *testing.B) {
	records := sampleRecords(b, MaxRows)
	regions, products := NewSelection("North", "East"), NewSelection("Laptop")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		filtered := Filter(records, regions, products)
		_ = AggregateByDate(filtered)
		_, err := AggregateByKey(filtered, ByRegion)
		alog.BailIf(err)
	}
}

func BenchmarkDuckDBAggregation(b *testing.B) {
	ctx := context.Background()
	d, _ := getDuckDBWithData()
	regions, products := NewSelection("North", "East"), NewSelection("Laptop")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := d.AggregateByDate(ctx, regions, products)
		alog.BailIf(err)
		_, err = d.AggregateByKey(ctx, regions, products, ByRegion)
		alog.BailIf(err)
	}
}
