package salesdash

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

var salesFields = []arrow.Field{
	{Name: "invoice_date", Type: arrow.FixedWidthTypes.Date32},
	{Name: "region", Type: arrow.BinaryTypes.String},
	{Name: "product", Type: arrow.BinaryTypes.String},
	{Name: "sales_amount", Type: arrow.PrimitiveTypes.Int64},
}

// seqField carries the original record position so loaders can restore order.
var seqField = arrow.Field{Name: "seq", Type: arrow.PrimitiveTypes.Int64}

// Schema is the Arrow schema used for columnar exports.
func Schema() *arrow.Schema {
	return arrow.NewSchema(salesFields, nil)
}

// ToArrow builds a single Arrow record from records. The caller must Release it.
func ToArrow(records []SalesRecord, alloc memory.Allocator) arrow.Record {
	return buildRecord(records, alloc, false)
}

func buildRecord(records []SalesRecord, alloc memory.Allocator, withSeq bool) arrow.Record {
	if alloc == nil {
		alloc = memory.DefaultAllocator
	}
	fields := salesFields
	if withSeq {
		fields = append([]arrow.Field{seqField}, salesFields...)
	}
	rb := array.NewRecordBuilder(alloc, arrow.NewSchema(fields, nil))
	defer rb.Release()

	off := 0
	var seqBuilder *array.Int64Builder
	if withSeq {
		seqBuilder = rb.Field(0).(*array.Int64Builder)
		off = 1
	}
	dateBuilder := rb.Field(off).(*array.Date32Builder)
	regionBuilder := rb.Field(off + 1).(*array.StringBuilder)
	productBuilder := rb.Field(off + 2).(*array.StringBuilder)
	amountBuilder := rb.Field(off + 3).(*array.Int64Builder)

	for i, r := range records {
		if seqBuilder != nil {
			seqBuilder.Append(int64(i))
		}
		dateBuilder.Append(arrow.Date32FromTime(day(r.InvoiceDate)))
		regionBuilder.Append(r.Region)
		productBuilder.Append(r.Product)
		amountBuilder.Append(r.SalesAmount)
	}

	return rb.NewRecord()
}

// WriteParquet writes records to w as a single Parquet file.
func WriteParquet(w io.Writer, records []SalesRecord) error {
	record := ToArrow(records, memory.DefaultAllocator)
	defer record.Release()
	return writeParquetRecord(w, record)
}

// writeParquetRecord leaves w open; the parquet writer closes sinks that
// implement io.Closer, so w is wrapped to hide Close.
func writeParquetRecord(w io.Writer, record arrow.Record) error {
	sink := struct{ io.Writer }{w}
	writer, err := pqarrow.NewFileWriter(record.Schema(), sink, nil, pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	err = writer.WriteBuffered(record)
	if err != nil {
		writer.Close()
		return fmt.Errorf("failed to write record to parquet: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
