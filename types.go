package salesdash

import (
	"errors"
	"time"
)

// SalesRecord is one synthetic transaction
type SalesRecord struct {
	InvoiceDate time.Time
	Region      string
	Product     string
	SalesAmount int64
}

// DailyTotal is one point of the sales trend line
type DailyTotal struct {
	Date  time.Time
	Total int64
}

// Summary is the row count, total and mean of SalesAmount over a set of records
type Summary struct {
	Rows  int
	Total int64
	Mean  float64
}

// Key selects the categorical column used for grouping
type Key int

const (
	ByRegion Key = iota
	ByProduct
)

func (k Key) String() string {
	switch k {
	case ByRegion:
		return "region"
	case ByProduct:
		return "product"
	}
	return "unknown"
}

const (
	MinRows     = 50
	MaxRows     = 1000
	DefaultRows = 300
	DefaultSeed = int64(42)

	// SalesAmount is drawn from [MinAmount, MaxAmount)
	MinAmount = 2000
	MaxAmount = 50000
)

// StartDate is the InvoiceDate of the first generated record
var StartDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var regions = []string{"North", "South", "East", "West"}
var products = []string{"Laptop", "Headphones", "Mobile", "Camera"}

// ErrInvalidParameter is returned for out-of-range row counts, unknown
// category values and unknown key selectors.
var ErrInvalidParameter = errors.New("invalid parameter")

// Regions returns the region enumeration in generation order.
func Regions() []string {
	return append([]string(nil), regions...)
}

// Products returns the product enumeration in generation order.
func Products() []string {
	return append([]string(nil), products...)
}

func (k Key) values() []string {
	if k == ByProduct {
		return products
	}
	return regions
}

func (k Key) field(r *SalesRecord) string {
	if k == ByProduct {
		return r.Product
	}
	return r.Region
}

func (k Key) valid() bool {
	return k == ByRegion || k == ByProduct
}
