package salesdash

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Report holds every table the dashboard renders.
type Report struct {
	Dataset   []SalesRecord
	Filtered  []SalesRecord
	Trend     []DailyTotal
	ByRegion  map[string]int64
	ByProduct map[string]int64
}

// BuildReport filters dataset and computes the three aggregations.
func BuildReport(dataset []SalesRecord, regions, products Selection) (Report, error) {
	filtered := Filter(dataset, regions, products)
	byRegion, err := AggregateByKey(filtered, ByRegion)
	if err != nil {
		return Report{}, err
	}
	byProduct, err := AggregateByKey(filtered, ByProduct)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Dataset:   dataset,
		Filtered:  filtered,
		Trend:     AggregateByDate(filtered),
		ByRegion:  byRegion,
		ByProduct: byProduct,
	}, nil
}

const dateLayout = "2006-01-02"

var recordHeader = []interface{}{"InvoiceDate", "Region", "Product", "Sales"}

// WriteExcel writes the report as an xlsx workbook with one sheet per table.
func WriteExcel(w io.Writer, rep Report) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), "Dataset"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRecords(xl, "Dataset", rep.Dataset); err != nil {
		return err
	}

	for _, name := range []string{"Filtered", "SalesTrend", "ByRegion", "ByProduct"} {
		if _, err := xl.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}
	if err := writeRecords(xl, "Filtered", rep.Filtered); err != nil {
		return err
	}

	trend := make([][]interface{}, 0, len(rep.Trend))
	for _, t := range rep.Trend {
		trend = append(trend, []interface{}{t.Date.Format(dateLayout), t.Total})
	}
	if err := writeRows(xl, "SalesTrend", []interface{}{"InvoiceDate", "Sales"}, trend); err != nil {
		return err
	}
	if err := writeTotals(xl, "ByRegion", "Region", rep.ByRegion); err != nil {
		return err
	}
	if err := writeTotals(xl, "ByProduct", "Product", rep.ByProduct); err != nil {
		return err
	}

	if err := xl.Write(w); err != nil {
		return fmt.Errorf("failed to write excel file: %w", err)
	}
	return nil
}

func writeRecords(xl *excelize.File, sheet string, records []SalesRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.InvoiceDate.Format(dateLayout), r.Region, r.Product, r.SalesAmount})
	}
	return writeRows(xl, sheet, recordHeader, rows)
}

func writeTotals(xl *excelize.File, sheet, label string, totals map[string]int64) error {
	rows := make([][]interface{}, 0, len(totals))
	for _, k := range SortedKeys(totals) {
		rows = append(rows, []interface{}{k, totals[k]})
	}
	return writeRows(xl, sheet, []interface{}{label, "Total Sales"}, rows)
}

func writeRows(xl *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}
