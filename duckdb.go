package salesdash

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/tillberg/alog"
)

// DuckDB runs the filter and aggregations as SQL over an in-memory table.
type DuckDB struct {
	db *sql.DB
}

// OpenDuckDB opens an in-memory database and loads records into the sales table.
func OpenDuckDB(ctx context.Context, records []SalesRecord) (*DuckDB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	d := &DuckDB{db: db}
	if err := d.setup(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.insert(ctx, records); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DuckDB) Close() error {
	return d.db.Close()
}

func (d *DuckDB) setup(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
		CREATE TABLE sales (
			seq BIGINT,
			invoice_date DATE,
			region VARCHAR,
			product VARCHAR,
			sales_amount BIGINT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sales table: %w", err)
	}
	_, err = d.db.ExecContext(ctx, "SET threads TO 1;")
	if err != nil {
		return fmt.Errorf("failed to set threads: %w", err)
	}
	return nil
}

func (d *DuckDB) insert(ctx context.Context, records []SalesRecord) error {
	if len(records) == 0 {
		return nil
	}
	timer := alog.NewTimer()

	file, err := os.CreateTemp("", "salesdash-*.parquet")
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	tempFile := file.Name()
	defer os.Remove(tempFile)

	record := buildRecord(records, memory.DefaultAllocator, true)
	defer record.Release()
	if err := writeParquetRecord(file, record); err != nil {
		file.Close()
		return err
	}
	file.Close()

	query := fmt.Sprintf("INSERT INTO sales SELECT * FROM '%s'", strings.ReplaceAll(tempFile, "'", "''"))
	_, err = d.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to execute INSERT FROM parquet: %w", err)
	}

	alog.Log("duckdb loaded %d rows in %s", len(records), timer.Elapsed())
	return nil
}

// where builds the WHERE clause for a pair of selections.
func where(regions, products Selection) (string, []any) {
	var conds []string
	var args []any
	add := func(col string, s Selection) {
		if s == nil {
			return
		}
		if len(s) == 0 {
			conds = append(conds, "FALSE")
			return
		}
		marks := make([]string, 0, len(s))
		for _, v := range s.Values() {
			marks = append(marks, "?")
			args = append(args, v)
		}
		conds = append(conds, fmt.Sprintf("%s IN (%s)", col, strings.Join(marks, ", ")))
	}
	add("region", regions)
	add("product", products)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Filter returns the matching rows in load order.
func (d *DuckDB) Filter(ctx context.Context, regions, products Selection) ([]SalesRecord, error) {
	clause, args := where(regions, products)
	rows, err := d.db.QueryContext(ctx,
		"SELECT invoice_date, region, product, sales_amount FROM sales"+clause+" ORDER BY seq", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	out := []SalesRecord{}
	for rows.Next() {
		var r SalesRecord
		if err := rows.Scan(&r.InvoiceDate, &r.Region, &r.Product, &r.SalesAmount); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		r.InvoiceDate = day(r.InvoiceDate)
		out = append(out, r)
	}
	return out, rows.Err()
}

// AggregateByDate is the SQL counterpart of the package level AggregateByDate.
func (d *DuckDB) AggregateByDate(ctx context.Context, regions, products Selection) ([]DailyTotal, error) {
	clause, args := where(regions, products)
	rows, err := d.db.QueryContext(ctx, `
		SELECT invoice_date, CAST(SUM(sales_amount) AS BIGINT)
		FROM sales`+clause+`
		GROUP BY invoice_date
		ORDER BY invoice_date`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by date: %w", err)
	}
	defer rows.Close()

	out := []DailyTotal{}
	for rows.Next() {
		var date time.Time
		var total int64
		if err := rows.Scan(&date, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		out = append(out, DailyTotal{Date: day(date), Total: total})
	}
	return out, rows.Err()
}

// AggregateByKey is the SQL counterpart of the package level AggregateByKey.
func (d *DuckDB) AggregateByKey(ctx context.Context, regions, products Selection, key Key) (map[string]int64, error) {
	if !key.valid() {
		return nil, fmt.Errorf("key %d: %w", int(key), ErrInvalidParameter)
	}
	col := key.String()
	clause, args := where(regions, products)
	rows, err := d.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s, CAST(SUM(sales_amount) AS BIGINT)
		FROM sales%s
		GROUP BY %s`, col, clause, col), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by %s: %w", col, err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var k string
		var total int64
		if err := rows.Scan(&k, &total); err != nil {
			return nil, fmt.Errorf("failed to scan %s total: %w", col, err)
		}
		out[k] = total
	}
	return out, rows.Err()
}

// Summarize counts and totals the matching rows.
func (d *DuckDB) Summarize(ctx context.Context, regions, products Selection) (Summary, error) {
	clause, args := where(regions, products)
	var s Summary
	var rowCount int64
	err := d.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			CAST(COALESCE(SUM(sales_amount), 0) AS BIGINT),
			COALESCE(AVG(sales_amount), 0)
		FROM sales`+clause, args...).Scan(&rowCount, &s.Total, &s.Mean)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to summarize sales: %w", err)
	}
	s.Rows = int(rowCount)
	return s, nil
}
