package main

import (
	"context"
	"os"

	"github.com/tillberg/alog"
	"github.com/tillberg/salesdash"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	alog.BailIf(err)
	alog.BailIf(run(context.Background(), cfg))
}

func run(ctx context.Context, cfg config) error {
	timer := alog.NewTimer()

	dataset, err := salesdash.Generate(cfg.Rows, cfg.Seed)
	if err != nil {
		return err
	}
	regions, err := salesdash.ParseSelection(salesdash.ByRegion, cfg.Regions)
	if err != nil {
		return err
	}
	products, err := salesdash.ParseSelection(salesdash.ByProduct, cfg.Products)
	if err != nil {
		return err
	}
	alog.Log("generated %d rows starting %s (seed %d)", len(dataset), salesdash.StartDate.Format("2006-01-02"), cfg.Seed)
	if salesdash.IsEmptySelection(regions, products) {
		alog.Log("empty selection, nothing to chart")
	}

	var rep salesdash.Report
	switch cfg.Engine {
	case "duckdb":
		rep, err = duckReport(ctx, dataset, regions, products)
	default:
		rep, err = salesdash.BuildReport(dataset, regions, products)
	}
	if err != nil {
		return err
	}

	sum := salesdash.Summarize(rep.Filtered)
	alog.Log("Total Rows after filter: %d (sales %d, mean %.2f)", sum.Rows, sum.Total, sum.Mean)
	for _, k := range salesdash.SortedKeys(rep.ByRegion) {
		alog.Log("region %-10s %d", k, rep.ByRegion[k])
	}
	for _, k := range salesdash.SortedKeys(rep.ByProduct) {
		alog.Log("product %-10s %d", k, rep.ByProduct[k])
	}
	alog.Log("sales trend has %d points", len(rep.Trend))

	if cfg.Parquet != "" {
		if err := writeFile(cfg.Parquet, func(f *os.File) error { return salesdash.WriteParquet(f, dataset) }); err != nil {
			return err
		}
		alog.Log("wrote %s", cfg.Parquet)
	}
	if cfg.Xlsx != "" {
		if err := writeFile(cfg.Xlsx, func(f *os.File) error { return salesdash.WriteExcel(f, rep) }); err != nil {
			return err
		}
		alog.Log("wrote %s", cfg.Xlsx)
	}

	alog.Log("%s engine took %s", cfg.Engine, timer.Elapsed())
	return nil
}

func duckReport(ctx context.Context, dataset []salesdash.SalesRecord, regions, products salesdash.Selection) (salesdash.Report, error) {
	d, err := salesdash.OpenDuckDB(ctx, dataset)
	if err != nil {
		return salesdash.Report{}, err
	}
	defer d.Close()

	rep := salesdash.Report{Dataset: dataset}
	if rep.Filtered, err = d.Filter(ctx, regions, products); err != nil {
		return rep, err
	}
	if rep.Trend, err = d.AggregateByDate(ctx, regions, products); err != nil {
		return rep, err
	}
	if rep.ByRegion, err = d.AggregateByKey(ctx, regions, products, salesdash.ByRegion); err != nil {
		return rep, err
	}
	if rep.ByProduct, err = d.AggregateByKey(ctx, regions, products, salesdash.ByProduct); err != nil {
		return rep, err
	}
	return rep, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
