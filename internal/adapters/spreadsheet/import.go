// internal/adapters/spreadsheet/import.go
package spreadsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/picking-be/internal/core/domain"
)

// ErrNoSheet is returned for workbooks without any worksheet
var ErrNoSheet = errors.New("workbook has no sheets")

// Column layout of an incoming purchase order sheet
const (
	colDate = iota
	colTime
	colClient
	colJAN
	colBrand
	colProduct
	colPrice
	colLot
	colQty
	colPriceType
	colClientRemark
	colRemark
)

// ParseOrders reads the first sheet of an xlsx workbook. The header row and
// rows with an empty first column are skipped. Lines come back pending,
// with group counts assigned; ids and timestamps are left for the service.
func ParseOrders(data []byte) ([]domain.Order, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrNoSheet
	}

	var orders []domain.Order
	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		idx := r.GetCoordinate()
		if idx == 0 {
			return nil
		}
		if o, ok := parseRow(r, idx); ok {
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	domain.AssignGroupCounts(orders)
	return orders, nil
}

func parseRow(r *xlsx.Row, idx int) (domain.Order, bool) {
	get := func(i int) string {
		c := r.GetCell(i)
		if c == nil {
			return ""
		}
		return strings.TrimSpace(c.String())
	}

	date := get(colDate)
	if date == "" {
		return domain.Order{}, false
	}

	lot := get(colLot)
	if lot == "" {
		lot = "1"
	}

	return domain.Order{
		OrderID:          domain.BuildOrderID(date, get(colTime), get(colClient)),
		JANCode:          get(colJAN),
		Brand:            get(colBrand),
		ProductName:      get(colProduct),
		Price:            parseDecimal(get(colPrice)),
		LotQty:           lot,
		OrderedQty:       parseQty(get(colQty)),
		PriceType:        get(colPriceType),
		ClientRemark:     get(colClientRemark),
		Remark:           get(colRemark),
		Status:           domain.StatusPending,
		OriginalRowIndex: idx,
	}, true
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseQty(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return int(parseDecimal(s).IntPart())
}
